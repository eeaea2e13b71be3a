package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	docs := NewDocsController(cfg.Version)
	usersController := NewUsersController(cfg.AuthService, cfg.UserStore)
	booksController := NewBooksController(cfg.BookStore)
	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.AuthorBooks)
	categoriesController := NewCategoriesController(cfg.CategoryStore, cfg.CategoryBooks)
	commentsController := NewCommentsController(cfg.CommentStore, cfg.BookGetter)
	notesController := NewNotesController(cfg.NoteStore, cfg.BookGetter)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API schema
	router.GET("/api-docs", docs.Schema)

	// Public endpoints: account creation, login, and browsing the catalog
	router.POST("/api/register", usersController.Register)
	router.POST("/api/login", usersController.Login)
	router.GET("/api/books", booksController.ListBooks)

	// Everything else requires a bearer token
	api := router.Group("/api", cfg.AuthMiddleware.RequireAuth())

	api.GET("/books/:id", booksController.GetBook)
	api.POST("/books", booksController.CreateBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	api.GET("/books/:id/comments", commentsController.ListComments)
	api.POST("/books/:id/comments", commentsController.CreateComment)
	api.GET("/books/:id/notes", notesController.ListNotes)
	api.POST("/books/:id/notes", notesController.CreateNote)

	api.GET("/authors", authorsController.ListAuthors)
	api.POST("/authors", authorsController.CreateAuthor)
	api.GET("/authors/:id", authorsController.GetAuthor)
	api.PUT("/authors/:id", authorsController.UpdateAuthor)
	api.DELETE("/authors/:id", authorsController.DeleteAuthor)
	api.GET("/authors/:id/books", authorsController.ListAuthorBooks)

	api.GET("/categories", categoriesController.ListCategories)
	api.POST("/categories", categoriesController.CreateCategory)
	api.GET("/categories/:id", categoriesController.GetCategory)
	api.DELETE("/categories/:id", categoriesController.DeleteCategory)
	api.GET("/categories/:id/books", categoriesController.ListCategoryBooks)

	api.GET("/users", usersController.ListUsers)
	api.GET("/users/:id", usersController.GetUser)

	return router
}
