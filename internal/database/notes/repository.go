// Package notes provides database operations for book review notes.
//
// This package implements the NoteStore interface defined in internal/http/notes.go.
//
// # Interface Implementation
//
//	var _ http.NoteStore = (*Repository)(nil)
package notes

import (
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetNotesForBook retrieves all review notes on a book, oldest first.
func (r *Repository) GetNotesForBook(bookID uint) ([]entities.Note, error) {
	var notes []entities.Note
	err := r.db.Where("book_id = ?", bookID).
		Order("created_at ASC").Find(&notes).Error
	return notes, err
}

// CreateNote creates a review note and, in the same transaction, recomputes
// the book's average review score and credits the book owner with a received
// review.
func (r *Repository) CreateNote(note *entities.Note) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, note.BookID).Error; err != nil {
			return err
		}

		if err := tx.Create(note).Error; err != nil {
			return err
		}

		var average float64
		err := tx.Model(&entities.Note{}).
			Where("book_id = ?", note.BookID).
			Select("AVG(value)").Scan(&average).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&entities.Book{}).
			Where("id = ?", note.BookID).
			UpdateColumn("average_of_reviews", average).Error; err != nil {
			return err
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", book.UserID).
			UpdateColumn("number_of_reviews", gorm.Expr("number_of_reviews + 1")).Error
	})
}
