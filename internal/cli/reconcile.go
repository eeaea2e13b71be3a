package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/tasks"
)

// ReconcileCommand runs a single counter-reconciliation pass and exits.
// The same job runs on a schedule inside the server; the command exists
// for repairing a database while the server is stopped.
type ReconcileCommand struct {
	DatabasePath string
}

func NewReconcileCommand() *ReconcileCommand {
	return &ReconcileCommand{}
}

func (cmd *ReconcileCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reconcile", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to reconcile")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reconcile [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recompute per-user activity counters and per-book review averages\n")
		fmt.Fprintf(os.Stderr, "from the catalog tables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ReconcileCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	fmt.Printf("Reconciling counters in %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := tasks.NewReconciler(db.DB).Run(); err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	fmt.Println("Reconciliation complete!")
	return nil
}
