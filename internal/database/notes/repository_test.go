package notes

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_notes_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.DB.Create(&entities.User{Username: "owner", PasswordHash: "x"}).Error)
	require.NoError(t, db.DB.Create(&entities.User{Username: "reviewer", PasswordHash: "x"}).Error)
	require.NoError(t, db.DB.Create(&entities.Category{Name: "Fiction"}).Error)
	require.NoError(t, db.DB.Create(&entities.Author{Name: "Herbert", Firstname: "Frank"}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{Title: "Dune", UserID: 1, CategoryID: 1, AuthorID: 1}).Error)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db.DB, cleanup
}

func TestRepository_CreateNote(t *testing.T) {
	t.Run("recomputes the book average", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.CreateNote(&entities.Note{Value: 5, BookID: 1, UserID: 2}))
		require.NoError(t, repo.CreateNote(&entities.Note{Value: 2, BookID: 1, UserID: 2}))

		var book entities.Book
		require.NoError(t, db.First(&book, 1).Error)
		assert.InDelta(t, 3.5, book.AverageOfReviews, 0.001)
	})

	t.Run("credits the book owner, not the reviewer", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.CreateNote(&entities.Note{Value: 4, BookID: 1, UserID: 2}))

		var owner, reviewer entities.User
		require.NoError(t, db.First(&owner, 1).Error)
		require.NoError(t, db.First(&reviewer, 2).Error)
		assert.Equal(t, 1, owner.NumberOfReviews)
		assert.Equal(t, 0, reviewer.NumberOfReviews)
	})

	t.Run("rejects a missing book", func(t *testing.T) {
		repo, _, cleanup := setupTestRepo(t)
		defer cleanup()

		err := repo.CreateNote(&entities.Note{Value: 4, BookID: 99, UserID: 2})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_GetNotesForBook(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateNote(&entities.Note{Value: 5, BookID: 1, UserID: 2}))
	require.NoError(t, repo.CreateNote(&entities.Note{Value: 3, BookID: 1, UserID: 1}))

	notes, err := repo.GetNotesForBook(1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, float64(5), notes[0].Value)
	assert.Equal(t, float64(3), notes[1].Value)
}
