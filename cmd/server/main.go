package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/Sanyam-Ahuja/study-manager/docs"
	authMiddleware "github.com/Sanyam-Ahuja/study-manager/internal/auth/middleware"
	"github.com/Sanyam-Ahuja/study-manager/internal/auth/service"
	"github.com/Sanyam-Ahuja/study-manager/internal/config"
	"github.com/Sanyam-Ahuja/study-manager/internal/handlers"
	"github.com/Sanyam-Ahuja/study-manager/internal/logger"
	"github.com/Sanyam-Ahuja/study-manager/internal/middlewares"
	"github.com/Sanyam-Ahuja/study-manager/internal/repositories/postgres"
	"github.com/Sanyam-Ahuja/study-manager/internal/repositories/sqlite"
	"github.com/Sanyam-Ahuja/study-manager/internal/services"
)

// chapterRepository joins the chapter views needed by the catalog and
// synchronizer services; both database adapters satisfy it.
type chapterRepository interface {
	services.ChapterRepository
	services.SubjectChapterRepository
}

// progressRepository joins the progress views needed by the lecture and
// synchronizer services.
type progressRepository interface {
	services.ProgressRepository
	services.ProgressSyncRepository
}

// repoSet bundles one repository per table, backed by the configured driver
type repoSet struct {
	users    services.UserRepository
	subjects services.SubjectRepository
	chapters chapterRepository
	catalog  services.CatalogLectureRepository
	progress progressRepository
}

// @title Study Manager API
// @version 1.0
// @description API for tracking per-user lecture watch progress across a shared subject catalog

// @contact.name API Support

// @license.name MIT

// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token issued by /api/login.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Study Manager server", zap.String("driver", cfg.Database.Driver))

	// Connect to database
	db, err := connectDB(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db, cfg); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories for the configured driver
	repos := newRepoSet(db, cfg.Database.Driver, logger.Logger)

	// Initialize services
	syncService := services.NewSyncService(repos.chapters, repos.catalog, repos.progress, logger.Logger)
	authService := services.NewAuthService(repos.users, syncService, tokenGenerator, logger.Logger)
	catalogService := services.NewCatalogService(repos.subjects, repos.chapters)
	lectureService := services.NewLectureService(repos.progress)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	lectureHandler := handlers.NewLectureHandler(lectureService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Lecture media, served from the same tree the ingester scans
	r.Handle("/lectures/*", http.StripPrefix("/lectures/", http.FileServer(http.Dir(cfg.MediaBasePath))))

	// Frontend build output, hosted at the root when configured. The /api,
	// /lectures and /swagger routes are more specific and take precedence.
	if cfg.FrontendDistPath != "" {
		logger.Logger.Info("Serving frontend", zap.String("dist", cfg.FrontendDistPath))
		r.Handle("/*", http.FileServer(http.Dir(cfg.FrontendDistPath)))
	}

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		authHandler.RegisterRoutes(r)
		// Routes below require a valid access token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.AuthMiddleware(tokenGenerator))
			catalogHandler.RegisterRoutes(r)
			lectureHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the configured database backend
func connectDB(cfg *config.Config) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = sql.Open("postgres", cfg.Database.URL)
	case config.DriverSQLite:
		db, err = sql.Open("sqlite3", cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// database/sql serializes writers for us; go-sqlite3 misbehaves
		// with concurrent write connections
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations for the configured driver
func runMigrations(db *sql.DB, cfg *config.Config) error {
	var driver database.Driver
	var err error

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		driver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath(), cfg.Database.Driver, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// newRepoSet wires the repository implementations for the selected driver
func newRepoSet(db *sql.DB, driver string, log *zap.Logger) repoSet {
	if driver == config.DriverSQLite {
		return repoSet{
			users:    sqlite.NewUserRepository(db, log),
			subjects: sqlite.NewSubjectRepository(db, log),
			chapters: sqlite.NewChapterRepository(db, log),
			catalog:  sqlite.NewCatalogLectureRepository(db, log),
			progress: sqlite.NewProgressRepository(db, log),
		}
	}
	return repoSet{
		users:    postgres.NewUserRepository(db, log),
		subjects: postgres.NewSubjectRepository(db, log),
		chapters: postgres.NewChapterRepository(db, log),
		catalog:  postgres.NewCatalogLectureRepository(db, log),
		progress: postgres.NewProgressRepository(db, log),
	}
}
