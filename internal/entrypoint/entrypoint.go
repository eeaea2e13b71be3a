package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive/internal/auth"
	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/database/authors"
	"github.com/bookhive/bookhive/internal/database/books"
	"github.com/bookhive/bookhive/internal/database/categories"
	"github.com/bookhive/bookhive/internal/database/comments"
	"github.com/bookhive/bookhive/internal/database/notes"
	"github.com/bookhive/bookhive/internal/database/users"
	http_controllers "github.com/bookhive/bookhive/internal/http"
	"github.com/bookhive/bookhive/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the reconciler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookHive v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Resource repositories
	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	authorsRepo := authors.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)
	commentsRepo := comments.NewRepository(db.DB)
	notesRepo := notes.NewRepository(db.DB)

	// Token signing secret. An ephemeral one is generated when none is
	// configured, so issued tokens will not survive a restart.
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = auth.GenerateSigningSecret()
		if err != nil {
			log.Fatalf("Failed to generate signing secret: %v", err)
		}
		log.Printf("WARNING: Generated ephemeral signing secret. Set 'AUTH_JWT_SECRET' to keep tokens valid across restarts.")
	}

	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenTTL)
	authService := auth.NewService(usersRepo, tokens, cfg.Auth)
	authMiddleware := auth.NewMiddleware(tokens)

	// Start the counter reconciler if enabled
	var reconciler *tasks.Reconciler
	if cfg.Reconcile.Enabled {
		reconciler = tasks.NewReconciler(db.DB)
		if err := reconciler.Start(cfg.Reconcile.Schedule); err != nil {
			log.Fatalf("Failed to start counter reconciler: %v", err)
		}
		log.Printf("Counter reconciler scheduled: %s", cfg.Reconcile.Schedule)
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		BookStore:      booksRepo,
		AuthorStore:    authorsRepo,
		CategoryStore:  categoriesRepo,
		CommentStore:   commentsRepo,
		NoteStore:      notesRepo,
		UserStore:      usersRepo,
		AuthorBooks:    booksRepo,
		CategoryBooks:  booksRepo,
		BookGetter:     booksRepo,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if reconciler != nil {
			reconciler.Stop(ctx)
		}
	}

	Serve(router, cfg, onShutdown)
}
