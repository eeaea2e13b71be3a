// Package tasks holds background jobs that run alongside the HTTP server.
package tasks

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Reconciler periodically recomputes the per-user activity counters
// from the catalog tables. The counters are updated transactionally on
// every write, so under normal operation this is a no-op; it exists to
// repair drift after manual database edits or interrupted migrations.
type Reconciler struct {
	db *gorm.DB

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewReconciler creates a new reconciler instance.
func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{
		db:   db,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the reconciliation job and starts the cron loop.
func (r *Reconciler) Start(schedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return nil
	}

	entryID, err := r.cron.AddFunc(schedule, func() {
		if err := r.Run(); err != nil {
			log.Printf("Counter reconciliation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reconciliation job: %w", err)
	}
	r.entryID = entryID

	r.cron.Start()
	r.isRunning = true
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish or the
// context to expire, whichever comes first.
func (r *Reconciler) Stop(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		log.Printf("Counter reconciliation did not finish before shutdown")
	}
	r.isRunning = false
}

// Run recomputes all counters in a single transaction.
func (r *Reconciler) Run() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		counterQueries := []struct {
			column string
			count  string
		}{
			{
				column: "number_of_books",
				count:  "SELECT COUNT(*) FROM books WHERE books.user_id = users.id",
			},
			{
				column: "number_of_comments",
				count:  "SELECT COUNT(*) FROM comments WHERE comments.user_id = users.id",
			},
			{
				// Reviews are credited to the owner of the reviewed book.
				column: "number_of_reviews",
				count: "SELECT COUNT(*) FROM notes " +
					"JOIN books ON books.id = notes.book_id " +
					"WHERE books.user_id = users.id",
			},
		}

		for _, q := range counterQueries {
			stmt := fmt.Sprintf("UPDATE users SET %s = (%s)", q.column, q.count)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to reconcile %s: %w", q.column, err)
			}
		}

		avgStmt := "UPDATE books SET average_of_reviews = " +
			"COALESCE((SELECT AVG(value) FROM notes WHERE notes.book_id = books.id), 0)"
		if err := tx.Exec(avgStmt).Error; err != nil {
			return fmt.Errorf("failed to reconcile review averages: %w", err)
		}

		return nil
	})
}
