package http

import (
	"github.com/bookhive/bookhive/internal/auth"
	"github.com/bookhive/bookhive/internal/database"
)

// RouterConfig holds all dependencies needed by NewRouter.
// Grouping them in a struct keeps the constructor signature stable
// as endpoints are added.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Resource stores
	BookStore     BookStore
	AuthorStore   AuthorStore
	CategoryStore CategoryStore
	CommentStore  CommentStore
	NoteStore     NoteStore
	UserStore     UserLister

	// Nested book listings, all implemented by the books repository
	AuthorBooks   AuthorBookLister
	CategoryBooks CategoryBookLister
	BookGetter    BookGetter

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	// Application info
	Version string
}
