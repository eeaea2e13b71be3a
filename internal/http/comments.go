package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// CommentStore defines the persistence operations the comments controller needs.
type CommentStore interface {
	GetCommentsForBook(bookID uint) ([]entities.Comment, error)
	CreateComment(comment *entities.Comment) error
}

// BookGetter resolves a book by ID. Implemented by the books repository.
type BookGetter interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// CommentsController handles the /api/books/:id/comments routes.
type CommentsController struct {
	store CommentStore
	books BookGetter
}

// NewCommentsController creates a new CommentsController.
func NewCommentsController(store CommentStore, books BookGetter) *CommentsController {
	return &CommentsController{store: store, books: books}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments returns all comments on a book.
// GET /api/books/:id/comments
func (cc *CommentsController) ListComments(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := cc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	comments, err := cc.store.GetCommentsForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list comments")
		return
	}
	if comments == nil {
		comments = []entities.Comment{}
	}

	message := fmt.Sprintf("The list of comments for book %d has been retrieved.", bookID)
	respondOK(c, message, comments)
}

// CreateComment posts a comment on a book as the authenticated user and
// credits their posted-comment counter.
// POST /api/books/:id/comments
func (cc *CommentsController) CreateComment(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The comment could not be created: "+err.Error())
		return
	}

	if _, err := cc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	comment := &entities.Comment{
		Content: req.Content,
		BookID:  bookID,
		UserID:  GetUserID(c),
	}
	if err := cc.store.CreateComment(comment); err != nil {
		respondInternalError(c, err, "create comment")
		return
	}

	respondCreated(c, "The comment has been created.", comment)
}
