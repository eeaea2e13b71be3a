package http

import (
	"encoding/json"
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
	"github.com/bookhive/bookhive/internal/entities"
)

func setupBooksTest(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.DB.Create(&entities.User{Username: "owner", PasswordHash: "x"}).Error)
	require.NoError(t, db.DB.Create(&entities.Category{Name: "Fiction"}).Error)
	require.NoError(t, db.DB.Create(&entities.Author{Name: "Herbert", Firstname: "Frank"}).Error)

	controller := NewBooksController(books.NewRepository(db.DB))

	router := gin.New()
	// Tests bypass token verification and authenticate as user 1 directly.
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, uint(1))
	})
	router.GET("/api/books", controller.ListBooks)
	router.GET("/api/books/:id", controller.GetBook)
	router.POST("/api/books", controller.CreateBook)
	router.PUT("/api/books/:id", controller.UpdateBook)
	router.DELETE("/api/books/:id", controller.DeleteBook)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func createTestBook(t *testing.T, router *gin.Engine, title string) entities.Book {
	t.Helper()
	payload := `{"title": "` + title + `", "number_of_pages": 100, "category_id": 1, "author_id": 1}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Data entities.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data
}

func TestBooksController_ListBooks(t *testing.T) {
	t.Run("returns empty list when no books", func(t *testing.T) {
		router, _, cleanup := setupBooksTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "The list of books has been retrieved.", response["message"])
	})

	t.Run("returns books alphabetically", func(t *testing.T) {
		router, _, cleanup := setupBooksTest(t)
		defer cleanup()

		createTestBook(t, router, "Zebra")
		createTestBook(t, router, "Aardvark")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []entities.Book `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "Aardvark", response.Data[0].Title)
	})
}

func TestBooksController_Search(t *testing.T) {
	router, _, cleanup := setupBooksTest(t)
	defer cleanup()

	for _, title := range []string{"Dune", "Dune Messiah", "Children of Dune", "God Emperor of Dune"} {
		createTestBook(t, router, title)
	}

	t.Run("rejects a one-character term", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?title=d", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at least 2 characters")
	})

	t.Run("caps results at three by default", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?title=dune", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Message string `json:"message"`
			Data    struct {
				Count int64           `json:"count"`
				Rows  []entities.Book `json:"rows"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(4), response.Data.Count)
		assert.Len(t, response.Data.Rows, 3)
		assert.Equal(t, "4 books match the search term.", response.Message)
	})

	t.Run("honours an explicit limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?title=dune&limit=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data struct {
				Rows []entities.Book `json:"rows"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data.Rows, 4)
	})

	t.Run("rejects a bad limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?title=dune&limit=zero", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book owned by the caller", func(t *testing.T) {
		router, db, cleanup := setupBooksTest(t)
		defer cleanup()

		book := createTestBook(t, router, "Dune")
		assert.Equal(t, uint(1), book.UserID)

		var user entities.User
		require.NoError(t, db.DB.First(&user, 1).Error)
		assert.Equal(t, 1, user.NumberOfBooks)
	})

	t.Run("rejects a payload without a title", func(t *testing.T) {
		router, _, cleanup := setupBooksTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		payload := `{"number_of_pages": 100, "category_id": 1, "author_id": 1}`
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown category", func(t *testing.T) {
		router, _, cleanup := setupBooksTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		payload := `{"title": "Orphan", "number_of_pages": 100, "category_id": 99, "author_id": 1}`
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "category")
	})
}

func TestBooksController_GetBook(t *testing.T) {
	router, _, cleanup := setupBooksTest(t)
	defer cleanup()

	book := createTestBook(t, router, "Dune")

	t.Run("returns the book", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), book.Title)
	})

	t.Run("returns 404 for a missing book", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/99", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a malformed ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	router, _, cleanup := setupBooksTest(t)
	defer cleanup()

	createTestBook(t, router, "Dune")

	t.Run("returns the prior representation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/books/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("returns 404 the second time", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/books/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
