// Package categories provides database operations for category management.
//
// This package implements the CategoryStore interface defined in internal/http/categories.go.
//
// # Interface Implementation
//
//	var _ http.CategoryStore = (*Repository)(nil)
package categories

import (
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllCategories retrieves all categories ordered by ID.
func (r *Repository) GetAllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

// GetCategoryByID retrieves a category by ID.
func (r *Repository) GetCategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category.
func (r *Repository) CreateCategory(category *entities.Category) error {
	return r.db.Create(category).Error
}

// DeleteCategory removes a category, returning the prior representation.
func (r *Repository) DeleteCategory(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&entities.Category{}, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// HasBooks reports whether any book references the category.
func (r *Repository) HasBooks(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("category_id = ?", id).Count(&count).Error
	return count > 0, err
}
