package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// AuthorStore defines the persistence operations the authors controller needs.
type AuthorStore interface {
	GetAllAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	CreateAuthor(author *entities.Author) error
	UpdateAuthor(id uint, updates *entities.Author) (*entities.Author, error)
	DeleteAuthor(id uint) (*entities.Author, error)
	HasBooks(id uint) (bool, error)
}

// AuthorBookLister lists the books written by an author.
// Implemented by the books repository.
type AuthorBookLister interface {
	GetBooksByAuthor(authorID uint) ([]entities.Book, error)
}

// AuthorsController handles the /api/authors routes.
type AuthorsController struct {
	store AuthorStore
	books AuthorBookLister
}

// NewAuthorsController creates a new AuthorsController.
func NewAuthorsController(store AuthorStore, books AuthorBookLister) *AuthorsController {
	return &AuthorsController{store: store, books: books}
}

type authorRequest struct {
	Name      string `json:"name" binding:"required"`
	Firstname string `json:"firstname" binding:"required"`
}

// ListAuthors returns all authors.
// GET /api/authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	respondOK(c, "The list of authors has been retrieved.", authors)
}

// GetAuthor returns a single author by ID.
// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested author does not exist.")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	respondOK(c, fmt.Sprintf("The author %s has been retrieved.", author.Name), author)
}

// CreateAuthor creates a new author.
// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The author could not be created: "+err.Error())
		return
	}

	author := &entities.Author{Name: req.Name, Firstname: req.Firstname}
	if err := ac.store.CreateAuthor(author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	respondCreated(c, fmt.Sprintf("The author %s has been created.", author.Name), author)
}

// UpdateAuthor updates an existing author.
// PUT /api/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The author could not be updated: "+err.Error())
		return
	}

	author, err := ac.store.UpdateAuthor(id, &entities.Author{Name: req.Name, Firstname: req.Firstname})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested author does not exist.")
			return
		}
		respondInternalError(c, err, "update author")
		return
	}

	respondOK(c, fmt.Sprintf("The author %s has been updated.", author.Name), author)
}

// DeleteAuthor removes an author that no book references.
// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	referenced, err := ac.store.HasBooks(id)
	if err != nil {
		respondInternalError(c, err, "check author books")
		return
	}
	if referenced {
		respondBadRequest(c, "The author still has books and cannot be deleted.")
		return
	}

	author, err := ac.store.DeleteAuthor(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested author does not exist.")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}

	respondOK(c, fmt.Sprintf("The author %s has been deleted.", author.Name), author)
}

// ListAuthorBooks returns the books written by an author. An author with no
// books yields an empty list, not an error.
// GET /api/authors/:id/books
func (ac *AuthorsController) ListAuthorBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested author does not exist.")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	authorBooks, err := ac.books.GetBooksByAuthor(id)
	if err != nil {
		respondInternalError(c, err, "list author books")
		return
	}
	if authorBooks == nil {
		authorBooks = []entities.Book{}
	}

	message := fmt.Sprintf("The list of books by %s has been retrieved.", author.Name)
	respondOK(c, message, authorBooks)
}
