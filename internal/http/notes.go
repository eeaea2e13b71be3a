package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

// NoteStore defines the persistence operations the notes controller needs.
type NoteStore interface {
	GetNotesForBook(bookID uint) ([]entities.Note, error)
	CreateNote(note *entities.Note) error
}

// NotesController handles the /api/books/:id/notes routes.
type NotesController struct {
	store NoteStore
	books BookGetter
}

// NewNotesController creates a new NotesController.
func NewNotesController(store NoteStore, books BookGetter) *NotesController {
	return &NotesController{store: store, books: books}
}

type noteRequest struct {
	Value *float64 `json:"value" binding:"required,gte=0,lte=5"`
}

// ListNotes returns all review notes on a book.
// GET /api/books/:id/notes
func (nc *NotesController) ListNotes(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := nc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	notes, err := nc.store.GetNotesForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}
	if notes == nil {
		notes = []entities.Note{}
	}

	message := fmt.Sprintf("The list of notes for book %d has been retrieved.", bookID)
	respondOK(c, message, notes)
}

// CreateNote posts a review score on a book as the authenticated user. The
// book's average score and its owner's received-review counter are updated
// in the same transaction.
// POST /api/books/:id/notes
func (nc *NotesController) CreateNote(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The note could not be created: "+err.Error())
		return
	}

	note := &entities.Note{
		Value:  *req.Value,
		BookID: bookID,
		UserID: GetUserID(c),
	}
	if err := nc.store.CreateNote(note); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "The requested book does not exist.")
			return
		}
		respondInternalError(c, err, "create note")
		return
	}

	respondCreated(c, fmt.Sprintf("The note %g has been created.", note.Value), note)
}
