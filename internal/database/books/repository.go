// Package books provides database operations for the book catalog.
//
// This package implements the BookStore interface defined in internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(id)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/entities"
)

var (
	ErrUserNotFound     = errors.New("referenced user does not exist")
	ErrCategoryNotFound = errors.New("referenced category does not exist")
	ErrAuthorNotFound   = errors.New("referenced author does not exist")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks retrieves all books ordered alphabetically by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Category").Preload("Author").
		Order("title ASC").Find(&books).Error
	return books, err
}

// SearchBooksByTitle returns books whose title contains the substring,
// ordered alphabetically and capped at limit, together with the match count.
func (r *Repository) SearchBooksByTitle(title string, limit int) ([]entities.Book, int64, error) {
	searchPattern := "%" + title + "%"

	var total int64
	err := r.db.Model(&entities.Book{}).
		Where("LOWER(title) LIKE LOWER(?)", searchPattern).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	query := r.db.Preload("Category").Preload("Author").
		Where("LOWER(title) LIKE LOWER(?)", searchPattern).
		Order("title ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err = query.Find(&books).Error
	return books, total, err
}

// GetBookByID retrieves a book by ID with its category and author.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Category").Preload("Author").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook creates a book and increments the creator's proposed-book
// counter in the same transaction. Referenced rows are checked first so a
// dangling foreign key never reaches the table.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkReference(tx, &entities.User{}, book.UserID, ErrUserNotFound); err != nil {
			return err
		}
		if err := checkReference(tx, &entities.Category{}, book.CategoryID, ErrCategoryNotFound); err != nil {
			return err
		}
		if err := checkReference(tx, &entities.Author{}, book.AuthorID, ErrAuthorNotFound); err != nil {
			return err
		}

		if err := tx.Create(book).Error; err != nil {
			return err
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", book.UserID).
			UpdateColumn("number_of_books", gorm.Expr("number_of_books + 1")).Error
	})
}

// UpdateBook applies the given field values to an existing book and returns
// the updated row. Returns gorm.ErrRecordNotFound when the ID is absent.
func (r *Repository) UpdateBook(id uint, updates *entities.Book) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if updates.CategoryID != 0 && updates.CategoryID != book.CategoryID {
			if err := checkReference(tx, &entities.Category{}, updates.CategoryID, ErrCategoryNotFound); err != nil {
				return err
			}
		}
		if updates.AuthorID != 0 && updates.AuthorID != book.AuthorID {
			if err := checkReference(tx, &entities.Author{}, updates.AuthorID, ErrAuthorNotFound); err != nil {
				return err
			}
		}
		// Ownership never changes on update.
		updates.ID = book.ID
		updates.UserID = book.UserID
		if err := tx.Model(&book).Omit("CreatedAt").Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Category").Preload("Author").First(&book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book together with its comments and notes in one
// transaction, returning the prior representation. All affected user
// counters are settled in the same transaction.
func (r *Repository) DeleteBook(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Category").Preload("Author").First(&book, id).Error; err != nil {
			return err
		}

		// Debit each commenter before their comments disappear.
		err := tx.Exec(
			"UPDATE users SET number_of_comments = number_of_comments - "+
				"(SELECT COUNT(*) FROM comments WHERE comments.user_id = users.id AND comments.book_id = ?) "+
				"WHERE id IN (SELECT user_id FROM comments WHERE book_id = ?)",
			id, id).Error
		if err != nil {
			return err
		}

		var noteCount int64
		if err := tx.Model(&entities.Note{}).Where("book_id = ?", id).Count(&noteCount).Error; err != nil {
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", book.UserID).
			UpdateColumns(map[string]any{
				"number_of_books":   gorm.Expr("number_of_books - 1"),
				"number_of_reviews": gorm.Expr("number_of_reviews - ?", noteCount),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBooksByAuthor retrieves all books written by the given author.
func (r *Repository) GetBooksByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Category").
		Where("author_id = ?", authorID).
		Order("title ASC").Find(&books).Error
	return books, err
}

// GetBooksByCategory retrieves all books in the given category.
func (r *Repository) GetBooksByCategory(categoryID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").
		Where("category_id = ?", categoryID).
		Order("title ASC").Find(&books).Error
	return books, err
}

func checkReference(tx *gorm.DB, model any, id uint, missing error) error {
	if id == 0 {
		return missing
	}
	err := tx.First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	if err != nil {
		return fmt.Errorf("failed to check reference: %w", err)
	}
	return nil
}
