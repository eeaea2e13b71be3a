package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive/internal/auth"
	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/database/books"
	"github.com/bookhive/bookhive/internal/database/comments"
	"github.com/bookhive/bookhive/internal/database/notes"
	"github.com/bookhive/bookhive/internal/entities"
)

func setupNestedRoutesTest(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_nested_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.DB.Create(&entities.User{Username: "owner", PasswordHash: "x"}).Error)
	require.NoError(t, db.DB.Create(&entities.User{Username: "reviewer", PasswordHash: "x"}).Error)
	require.NoError(t, db.DB.Create(&entities.Category{Name: "Fiction"}).Error)
	require.NoError(t, db.DB.Create(&entities.Author{Name: "Herbert", Firstname: "Frank"}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{Title: "Dune", UserID: 1, CategoryID: 1, AuthorID: 1}).Error)

	booksRepo := books.NewRepository(db.DB)
	commentsController := NewCommentsController(comments.NewRepository(db.DB), booksRepo)
	notesController := NewNotesController(notes.NewRepository(db.DB), booksRepo)

	router := gin.New()
	// Tests bypass token verification and authenticate as user 2 directly.
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, uint(2))
	})
	router.GET("/api/books/:id/comments", commentsController.ListComments)
	router.POST("/api/books/:id/comments", commentsController.CreateComment)
	router.GET("/api/books/:id/notes", notesController.ListNotes)
	router.POST("/api/books/:id/notes", notesController.CreateNote)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func TestCommentsController(t *testing.T) {
	t.Run("creates a comment as the caller", func(t *testing.T) {
		router, db, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/1/comments", `{"content": "A classic."}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var reviewer entities.User
		require.NoError(t, db.DB.First(&reviewer, 2).Error)
		assert.Equal(t, 1, reviewer.NumberOfComments)
	})

	t.Run("lists comments oldest first", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		require.Equal(t, http.StatusCreated, postJSON(router, "/api/books/1/comments", `{"content": "First"}`).Code)
		require.Equal(t, http.StatusCreated, postJSON(router, "/api/books/1/comments", `{"content": "Second"}`).Code)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/comments", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "First"), strings.Index(body, "Second"))
	})

	t.Run("returns 404 for a missing book", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/99/comments", `{"content": "Ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w2 := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/99/comments", nil)
		router.ServeHTTP(w2, req)
		assert.Equal(t, http.StatusNotFound, w2.Code)
	})

	t.Run("rejects an empty payload", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/1/comments", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotesController(t *testing.T) {
	t.Run("creates a note and updates the average", func(t *testing.T) {
		router, db, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		require.Equal(t, http.StatusCreated, postJSON(router, "/api/books/1/notes", `{"value": 5}`).Code)
		require.Equal(t, http.StatusCreated, postJSON(router, "/api/books/1/notes", `{"value": 2}`).Code)

		var book entities.Book
		require.NoError(t, db.DB.First(&book, 1).Error)
		assert.InDelta(t, 3.5, book.AverageOfReviews, 0.001)
	})

	t.Run("accepts a zero score", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/1/notes", `{"value": 0}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects a score above five", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/1/notes", `{"value": 6}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a missing value", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/1/notes", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for a missing book", func(t *testing.T) {
		router, _, cleanup := setupNestedRoutesTest(t)
		defer cleanup()

		w := postJSON(router, "/api/books/99/notes", `{"value": 4}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
