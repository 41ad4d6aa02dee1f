package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/config"
	"github.com/Sanyam-Ahuja/study-manager/internal/logger"
	"github.com/Sanyam-Ahuja/study-manager/internal/media"
	"github.com/Sanyam-Ahuja/study-manager/internal/repositories/postgres"
	"github.com/Sanyam-Ahuja/study-manager/internal/repositories/sqlite"
	"github.com/Sanyam-Ahuja/study-manager/internal/services"
)

// ingestRepoSet bundles the repositories the catalog ingester writes through
type ingestRepoSet struct {
	subjects services.SubjectIngestRepository
	chapters services.ChapterIngestRepository
	catalog  services.CatalogIngestRepository
}

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

	// An explicit argument overrides the configured media tree
	root := cfg.MediaBasePath
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	logger.Logger.Info("Starting catalog ingestion",
		zap.String("driver", cfg.Database.Driver),
		zap.String("root", root),
	)

	// Connect to database
	db, err := connectDB(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations so ingestion works against a fresh database too
	if err := runMigrations(db, cfg); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := newIngestRepoSet(db, cfg.Database.Driver, logger.Logger)
	prober := media.NewFFProbe(cfg.FFProbePath)
	ingestService := services.NewIngestService(repos.subjects, repos.chapters, repos.catalog, prober, logger.Logger)

	result, err := ingestService.Scan(context.Background(), root)
	if err != nil {
		logger.Logger.Fatal("Ingestion failed", zap.Error(err))
	}

	logger.Logger.Info("Ingestion finished",
		zap.Int("subjectsCreated", result.SubjectsCreated),
		zap.Int("chaptersCreated", result.ChaptersCreated),
		zap.Int("lecturesCreated", result.LecturesCreated),
		zap.Int("probeFailures", result.ProbeFailures),
	)
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
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
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

// newIngestRepoSet wires the repository implementations for the selected driver
func newIngestRepoSet(db *sql.DB, driver string, log *zap.Logger) ingestRepoSet {
	if driver == config.DriverSQLite {
		return ingestRepoSet{
			subjects: sqlite.NewSubjectRepository(db, log),
			chapters: sqlite.NewChapterRepository(db, log),
			catalog:  sqlite.NewCatalogLectureRepository(db, log),
		}
	}
	return ingestRepoSet{
		subjects: postgres.NewSubjectRepository(db, log),
		chapters: postgres.NewChapterRepository(db, log),
		catalog:  postgres.NewCatalogLectureRepository(db, log),
	}
}
