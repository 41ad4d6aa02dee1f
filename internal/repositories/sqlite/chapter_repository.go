package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// chapterRepository implements the services.ChapterRepository interface
type chapterRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *sql.DB, logger *zap.Logger) *chapterRepository {
	return &chapterRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves every chapter in the catalog
func (r *chapterRepository) GetAll(ctx context.Context) ([]models.Chapter, error) {
	query := `
		SELECT id, subject_id, name
		FROM chapters
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get chapters", zap.Error(err))
		return nil, fmt.Errorf("failed to get chapters: %w", err)
	}
	defer rows.Close()

	return r.scanChapters(rows)
}

// GetBySubjectID retrieves the chapters of a subject ordered by name
func (r *chapterRepository) GetBySubjectID(ctx context.Context, subjectID int) ([]models.Chapter, error) {
	query := `
		SELECT id, subject_id, name
		FROM chapters
		WHERE subject_id = ?
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		r.logger.Error("failed to get chapters by subject", zap.Error(err))
		return nil, fmt.Errorf("failed to get chapters by subject: %w", err)
	}
	defer rows.Close()

	return r.scanChapters(rows)
}

// GetByName retrieves a chapter of a subject by name
func (r *chapterRepository) GetByName(ctx context.Context, subjectID int, name string) (*models.Chapter, error) {
	query := `
		SELECT id, subject_id, name
		FROM chapters
		WHERE subject_id = ? AND name = ?
		LIMIT 1
	`

	chapter := &models.Chapter{}
	err := r.db.QueryRowContext(ctx, query, subjectID, name).Scan(
		&chapter.ID,
		&chapter.SubjectID,
		&chapter.Name,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chapter %q: %w", name, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get chapter by name", zap.Error(err))
		return nil, fmt.Errorf("failed to get chapter by name: %w", err)
	}

	return chapter, nil
}

// Create inserts a new chapter
func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (subject_id, name)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, chapter.SubjectID, chapter.Name)
	if err != nil {
		r.logger.Error("failed to create chapter", zap.Error(err))
		return fmt.Errorf("failed to create chapter: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	chapter.ID = int(id)
	return nil
}

// scanChapters reads chapter rows into a slice
func (r *chapterRepository) scanChapters(rows *sql.Rows) ([]models.Chapter, error) {
	chapters := []models.Chapter{}
	for rows.Next() {
		var chapter models.Chapter
		if err := rows.Scan(&chapter.ID, &chapter.SubjectID, &chapter.Name); err != nil {
			r.logger.Error("failed to scan chapter", zap.Error(err))
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate chapters", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate chapters: %w", err)
	}

	return chapters, nil
}
