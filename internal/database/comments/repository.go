// Package comments provides database operations for book comments.
//
// This package implements the CommentStore interface defined in internal/http/comments.go.
//
// # Interface Implementation
//
//	var _ http.CommentStore = (*Repository)(nil)
package comments

import (
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// Repository handles all comment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCommentsForBook retrieves all comments on a book, oldest first.
func (r *Repository) GetCommentsForBook(bookID uint) ([]entities.Comment, error) {
	var comments []entities.Comment
	err := r.db.Where("book_id = ?", bookID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// CreateComment creates a comment and increments the author's posted-comment
// counter in the same transaction. The caller is responsible for checking
// that the book exists; the user is resolved from the bearer token so it
// always references a live row.
func (r *Repository) CreateComment(comment *entities.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&entities.User{}).
			Where("id = ?", comment.UserID).
			UpdateColumn("number_of_comments", gorm.Expr("number_of_comments + 1")).Error
	})
}
