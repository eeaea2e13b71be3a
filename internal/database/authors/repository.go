// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in internal/http/authors.go.
//
// # Interface Implementation
//
//	var _ http.AuthorStore = (*Repository)(nil)
package authors

import (
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllAuthors retrieves all authors ordered by ID.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id ASC").Find(&authors).Error
	return authors, err
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// CreateAuthor creates a new author.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// UpdateAuthor applies the given field values to an existing author.
func (r *Repository) UpdateAuthor(id uint, updates *entities.Author) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	updates.ID = author.ID
	if err := r.db.Model(&author).Omit("CreatedAt").Updates(updates).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// DeleteAuthor removes an author, returning the prior representation.
// Books referencing the author keep it in place: the delete is rejected
// by the caller when HasBooks reports true.
func (r *Repository) DeleteAuthor(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&entities.Author{}, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// HasBooks reports whether any book references the author.
func (r *Repository) HasBooks(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("author_id = ?", id).Count(&count).Error
	return count > 0, err
}
