package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/database/books"
	"github.com/bookhive/bookhive/internal/entities"
)

// defaultSearchLimit caps title searches unless the client asks for more.
const defaultSearchLimit = 3

// BookStore defines the persistence operations the books controller needs.
type BookStore interface {
	GetAllBooks() ([]entities.Book, error)
	SearchBooksByTitle(title string, limit int) ([]entities.Book, int64, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(id uint, updates *entities.Book) (*entities.Book, error)
	DeleteBook(id uint) (*entities.Book, error)
}

// BooksController handles the /api/books routes.
type BooksController struct {
	store BookStore
}

// NewBooksController creates a new BooksController.
func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// bookRequest is the payload for creating and updating books.
type bookRequest struct {
	Title             string `json:"title" binding:"required"`
	NumberOfPages     int    `json:"number_of_pages" binding:"required,gt=0"`
	Extract           string `json:"extract"`
	Summary           string `json:"summary"`
	NameEditor        string `json:"name_editor"`
	CoverImage        string `json:"cover_image"`
	YearOfPublication int    `json:"year_of_publication"`
	CategoryID        uint   `json:"category_id" binding:"required"`
	AuthorID          uint   `json:"author_id" binding:"required"`
}

func (r *bookRequest) toEntity() *entities.Book {
	return &entities.Book{
		Title:             r.Title,
		NumberOfPages:     r.NumberOfPages,
		Extract:           r.Extract,
		Summary:           r.Summary,
		NameEditor:        r.NameEditor,
		CoverImage:        r.CoverImage,
		YearOfPublication: r.YearOfPublication,
		CategoryID:        r.CategoryID,
		AuthorID:          r.AuthorID,
	}
}

// ListBooks returns all books, or a capped substring search when a title
// filter is present.
// GET /api/books?title=xy&limit=10
func (bc *BooksController) ListBooks(c *gin.Context) {
	title := c.Query("title")
	if title != "" {
		if len(title) < 2 {
			respondBadRequest(c, "The search term must contain at least 2 characters.")
			return
		}

		limit := defaultSearchLimit
		if rawLimit := c.Query("limit"); rawLimit != "" {
			parsed, err := parsePositiveInt(rawLimit)
			if err != nil {
				respondBadRequest(c, "The limit must be a positive integer.")
				return
			}
			limit = parsed
		}

		rows, count, err := bc.store.SearchBooksByTitle(title, limit)
		if err != nil {
			respondInternalError(c, err, "search books")
			return
		}
		message := fmt.Sprintf("%d books match the search term.", count)
		respondOK(c, message, ListResponse{Count: count, Rows: rows})
		return
	}

	allBooks, err := bc.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	respondOK(c, "The list of books has been retrieved.", allBooks)
}

// GetBook returns a single book by ID.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	respondOK(c, fmt.Sprintf("The book with id %d has been retrieved.", book.ID), book)
}

// CreateBook creates a book owned by the authenticated user and credits
// their proposed-book counter.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The book could not be created: "+err.Error())
		return
	}

	book := req.toEntity()
	book.UserID = GetUserID(c)

	if err := bc.store.CreateBook(book); err != nil {
		switch {
		case errors.Is(err, books.ErrCategoryNotFound):
			respondNotFound(c, "The referenced category does not exist.")
		case errors.Is(err, books.ErrAuthorNotFound):
			respondNotFound(c, "The referenced author does not exist.")
		case errors.Is(err, books.ErrUserNotFound):
			respondNotFound(c, "The requested user does not exist.")
		default:
			respondInternalError(c, err, "create book")
		}
		return
	}

	respondCreated(c, fmt.Sprintf("The book %s has been created.", book.Title), book)
}

// UpdateBook updates an existing book.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The book could not be updated: "+err.Error())
		return
	}

	book, err := bc.store.UpdateBook(id, req.toEntity())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "The requested book does not exist.")
		case errors.Is(err, books.ErrCategoryNotFound):
			respondNotFound(c, "The referenced category does not exist.")
		case errors.Is(err, books.ErrAuthorNotFound):
			respondNotFound(c, "The referenced author does not exist.")
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	respondOK(c, fmt.Sprintf("The book %s has been updated.", book.Title), book)
}

// DeleteBook removes a book and its comments and notes, returning the prior
// representation.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.DeleteBook(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	respondOK(c, fmt.Sprintf("The book %s has been deleted.", book.Title), book)
}
