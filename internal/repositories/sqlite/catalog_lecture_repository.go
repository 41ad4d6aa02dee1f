package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// catalogLectureRepository implements the services.CatalogLectureRepository interface
type catalogLectureRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogLectureRepository creates a new catalog lecture repository
func NewCatalogLectureRepository(db *sql.DB, logger *zap.Logger) *catalogLectureRepository {
	return &catalogLectureRepository{
		db:     db,
		logger: logger,
	}
}

// GetByChapterID retrieves the catalog lectures of a chapter
func (r *catalogLectureRepository) GetByChapterID(ctx context.Context, chapterID int) ([]models.CatalogLecture, error) {
	query := `
		SELECT id, chapter_id, name, location, duration
		FROM catalog_lectures
		WHERE chapter_id = ?
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		r.logger.Error("failed to get catalog lectures", zap.Error(err))
		return nil, fmt.Errorf("failed to get catalog lectures: %w", err)
	}
	defer rows.Close()

	lectures := []models.CatalogLecture{}
	for rows.Next() {
		var lecture models.CatalogLecture
		if err := rows.Scan(
			&lecture.ID,
			&lecture.ChapterID,
			&lecture.Name,
			&lecture.Location,
			&lecture.Duration,
		); err != nil {
			r.logger.Error("failed to scan catalog lecture", zap.Error(err))
			return nil, fmt.Errorf("failed to scan catalog lecture: %w", err)
		}
		lectures = append(lectures, lecture)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate catalog lectures", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate catalog lectures: %w", err)
	}

	return lectures, nil
}

// ExistsByChapterAndName checks if a catalog lecture exists in a chapter
func (r *catalogLectureRepository) ExistsByChapterAndName(ctx context.Context, chapterID int, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM catalog_lectures WHERE chapter_id = ? AND name = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, chapterID, name).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check catalog lecture existence", zap.Error(err))
		return false, fmt.Errorf("failed to check catalog lecture existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new catalog lecture
func (r *catalogLectureRepository) Create(ctx context.Context, lecture *models.CatalogLecture) error {
	query := `
		INSERT INTO catalog_lectures (chapter_id, name, location, duration)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lecture.ChapterID,
		lecture.Name,
		lecture.Location,
		lecture.Duration,
	)
	if err != nil {
		r.logger.Error("failed to create catalog lecture", zap.Error(err))
		return fmt.Errorf("failed to create catalog lecture: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lecture.ID = int(id)
	return nil
}
