package categories

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
	dbPath := "./test_categories_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db.DB, cleanup
}

func TestRepository_CategoryCRUD(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	category := &entities.Category{Name: "Fiction"}
	require.NoError(t, repo.CreateCategory(category))
	require.NotZero(t, category.ID)

	// The unique index rejects a duplicate name.
	assert.Error(t, repo.CreateCategory(&entities.Category{Name: "Fiction"}))

	fetched, err := repo.GetCategoryByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", fetched.Name)

	all, err := repo.GetAllCategories()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := repo.DeleteCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", deleted.Name)

	_, err = repo.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_HasBooks(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	category := &entities.Category{Name: "Fiction"}
	require.NoError(t, repo.CreateCategory(category))

	hasBooks, err := repo.HasBooks(category.ID)
	require.NoError(t, err)
	assert.False(t, hasBooks)

	require.NoError(t, db.Create(&entities.User{Username: "owner", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&entities.Author{Name: "Herbert", Firstname: "Frank"}).Error)
	require.NoError(t, db.Create(&entities.Book{Title: "Dune", UserID: 1, CategoryID: category.ID, AuthorID: 1}).Error)

	hasBooks, err = repo.HasBooks(category.ID)
	require.NoError(t, err)
	assert.True(t, hasBooks)
}
