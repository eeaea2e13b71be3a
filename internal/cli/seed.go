// Package cli implements the subcommands of the bookhive binary.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookhive/bookhive/internal/auth"
	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/database/authors"
	"github.com/bookhive/bookhive/internal/database/books"
	"github.com/bookhive/bookhive/internal/database/categories"
	"github.com/bookhive/bookhive/internal/database/comments"
	"github.com/bookhive/bookhive/internal/database/notes"
	"github.com/bookhive/bookhive/internal/database/users"
	"github.com/bookhive/bookhive/internal/entities"
)

// SeedCommand populates a database with demo fixtures: a couple of
// users, a small catalog, and some activity on it.
type SeedCommand struct {
	DatabasePath string
	Password     string
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to seed")
	fs.StringVar(&cmd.Password, "password", "bookhive-demo", "Password assigned to the demo accounts")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate a database with demo users, books, comments, and review notes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Seed the default database:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Seed a throwaway database for local testing:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -db /tmp/bookhive-demo.db -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(cmd.Password) < auth.MinPasswordLength {
		return fmt.Errorf("demo password must be at least %d characters", auth.MinPasswordLength)
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("BookHive Seed")
	fmt.Println("=============")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	authorsRepo := authors.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)
	commentsRepo := comments.NewRepository(db.DB)
	notesRepo := notes.NewRepository(db.DB)

	if count, err := usersRepo.CountUsers(); err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	} else if count > 0 {
		return fmt.Errorf("database already has %d users, refusing to seed", count)
	}

	cfg := config.NewConfig()
	hash, err := auth.HashPassword(cmd.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	admin, err := usersRepo.CreateUser("admin", hash, true)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	reader, err := usersRepo.CreateUser("demo_reader", hash, false)
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	cmd.logf("Created users: %s, %s", admin.Username, reader.Username)

	categoryNames := []string{"Science Fiction", "History", "Programming"}
	categoryIDs := make(map[string]uint, len(categoryNames))
	for _, name := range categoryNames {
		category := entities.Category{Name: name}
		if err := categoriesRepo.CreateCategory(&category); err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		categoryIDs[name] = category.ID
		cmd.logf("Created category: %s", name)
	}

	seedAuthors := []entities.Author{
		{Name: "Herbert", Firstname: "Frank"},
		{Name: "Tuchman", Firstname: "Barbara"},
		{Name: "Kernighan", Firstname: "Brian"},
	}
	for i := range seedAuthors {
		if err := authorsRepo.CreateAuthor(&seedAuthors[i]); err != nil {
			return fmt.Errorf("failed to create author %q: %w", seedAuthors[i].Name, err)
		}
		cmd.logf("Created author: %s %s", seedAuthors[i].Firstname, seedAuthors[i].Name)
	}

	seedBooks := []entities.Book{
		{
			Title:             "Dune",
			NumberOfPages:     412,
			Summary:           "A noble family takes stewardship of the desert planet Arrakis.",
			YearOfPublication: 1965,
			UserID:            admin.ID,
			CategoryID:        categoryIDs["Science Fiction"],
			AuthorID:          seedAuthors[0].ID,
		},
		{
			Title:             "The Guns of August",
			NumberOfPages:     511,
			Summary:           "The outbreak and first month of the First World War.",
			YearOfPublication: 1962,
			UserID:            admin.ID,
			CategoryID:        categoryIDs["History"],
			AuthorID:          seedAuthors[1].ID,
		},
		{
			Title:             "The Practice of Programming",
			NumberOfPages:     267,
			Summary:           "Style, debugging, testing, and performance in everyday programming.",
			YearOfPublication: 1999,
			UserID:            reader.ID,
			CategoryID:        categoryIDs["Programming"],
			AuthorID:          seedAuthors[2].ID,
		},
	}
	for i := range seedBooks {
		if err := booksRepo.CreateBook(&seedBooks[i]); err != nil {
			return fmt.Errorf("failed to create book %q: %w", seedBooks[i].Title, err)
		}
		cmd.logf("Created book: %s", seedBooks[i].Title)
	}

	seedComments := []entities.Comment{
		{Content: "The world-building alone is worth the read.", BookID: seedBooks[0].ID, UserID: reader.ID},
		{Content: "Dense but rewarding.", BookID: seedBooks[1].ID, UserID: reader.ID},
	}
	for i := range seedComments {
		if err := commentsRepo.CreateComment(&seedComments[i]); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}
	cmd.logf("Created %d comments", len(seedComments))

	seedNotes := []entities.Note{
		{Value: 5, BookID: seedBooks[0].ID, UserID: reader.ID},
		{Value: 4, BookID: seedBooks[1].ID, UserID: reader.ID},
		{Value: 4.5, BookID: seedBooks[2].ID, UserID: admin.ID},
	}
	for i := range seedNotes {
		if err := notesRepo.CreateNote(&seedNotes[i]); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
	}
	cmd.logf("Created %d review notes", len(seedNotes))

	fmt.Println("\n=== Seed Summary ===")
	fmt.Printf("Users: 2 (password: %s)\n", cmd.Password)
	fmt.Printf("Categories: %d\n", len(categoryNames))
	fmt.Printf("Authors: %d\n", len(seedAuthors))
	fmt.Printf("Books: %d\n", len(seedBooks))
	fmt.Printf("Comments: %d, notes: %d\n", len(seedComments), len(seedNotes))
	fmt.Println("\nSeed complete!")
	return nil
}

func (cmd *SeedCommand) logf(format string, args ...any) {
	if cmd.Verbose {
		fmt.Printf("  -> "+format+"\n", args...)
	}
}
