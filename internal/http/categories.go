package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// CategoryStore defines the persistence operations the categories controller needs.
type CategoryStore interface {
	GetAllCategories() ([]entities.Category, error)
	GetCategoryByID(id uint) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	DeleteCategory(id uint) (*entities.Category, error)
	HasBooks(id uint) (bool, error)
}

// CategoryBookLister lists the books in a category.
// Implemented by the books repository.
type CategoryBookLister interface {
	GetBooksByCategory(categoryID uint) ([]entities.Book, error)
}

// CategoriesController handles the /api/categories routes.
type CategoriesController struct {
	store CategoryStore
	books CategoryBookLister
}

// NewCategoriesController creates a new CategoriesController.
func NewCategoriesController(store CategoryStore, books CategoryBookLister) *CategoriesController {
	return &CategoriesController{store: store, books: books}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories returns all categories.
// GET /api/categories
func (cc *CategoriesController) ListCategories(c *gin.Context) {
	categories, err := cc.store.GetAllCategories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	respondOK(c, "The list of categories has been retrieved.", categories)
}

// GetCategory returns a single category by ID.
// GET /api/categories/:id
func (cc *CategoriesController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested category does not exist.")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	respondOK(c, fmt.Sprintf("The category %s has been retrieved.", category.Name), category)
}

// CreateCategory creates a new category.
// POST /api/categories
func (cc *CategoriesController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The category could not be created: "+err.Error())
		return
	}

	category := &entities.Category{Name: req.Name}
	if err := cc.store.CreateCategory(category); err != nil {
		respondInternalError(c, err, "create category")
		return
	}

	respondCreated(c, fmt.Sprintf("The category %s has been created.", category.Name), category)
}

// DeleteCategory removes a category that no book references.
// DELETE /api/categories/:id
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	referenced, err := cc.store.HasBooks(id)
	if err != nil {
		respondInternalError(c, err, "check category books")
		return
	}
	if referenced {
		respondBadRequest(c, "The category still has books and cannot be deleted.")
		return
	}

	category, err := cc.store.DeleteCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested category does not exist.")
			return
		}
		respondInternalError(c, err, "delete category")
		return
	}

	respondOK(c, fmt.Sprintf("The category %s has been deleted.", category.Name), category)
}

// ListCategoryBooks returns the books in a category. A category with no
// books yields an empty list, not an error.
// GET /api/categories/:id/books
func (cc *CategoriesController) ListCategoryBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested category does not exist.")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	categoryBooks, err := cc.books.GetBooksByCategory(id)
	if err != nil {
		respondInternalError(c, err, "list category books")
		return
	}
	if categoryBooks == nil {
		categoryBooks = []entities.Book{}
	}

	message := fmt.Sprintf("The list of books in the category %s has been retrieved.", category.Name)
	respondOK(c, message, categoryBooks)
}
