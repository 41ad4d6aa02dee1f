package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// progressRepository implements the services.ProgressRepository interface
type progressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgressRepository creates a new lecture progress repository
func NewProgressRepository(db *sql.DB, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		db:     db,
		logger: logger,
	}
}

// GetNamesByChapterAndUser retrieves the lecture names a user already owns
// in a chapter
func (r *progressRepository) GetNamesByChapterAndUser(ctx context.Context, chapterID, userID int) ([]string, error) {
	query := `
		SELECT name
		FROM lecture_progress
		WHERE chapter_id = $1 AND user_id = $2
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID, userID)
	if err != nil {
		r.logger.Error("failed to get progress names", zap.Error(err))
		return nil, fmt.Errorf("failed to get progress names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.logger.Error("failed to scan progress name", zap.Error(err))
			return nil, fmt.Errorf("failed to scan progress name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate progress names", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate progress names: %w", err)
	}

	return names, nil
}

// CreateIfAbsent inserts a progress row unless one already exists for
// (chapter_id, user_id, name). The uniqueness constraint arbitrates
// concurrent inserts; no application-level locking is involved.
// Returns true if a row was inserted.
func (r *progressRepository) CreateIfAbsent(ctx context.Context, progress *models.LectureProgress) (bool, error) {
	query := `
		INSERT INTO lecture_progress (chapter_id, user_id, name, location, duration, watched)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chapter_id, user_id, name) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		progress.ChapterID,
		progress.UserID,
		progress.Name,
		progress.Location,
		progress.Duration,
		progress.Watched,
	)
	if err != nil {
		r.logger.Error("failed to create progress row", zap.Error(err))
		return false, fmt.Errorf("failed to create progress row: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetByChapterAndUser retrieves a user's progress rows for a chapter joined
// with chapter and subject names, ordered by lecture name
func (r *progressRepository) GetByChapterAndUser(ctx context.Context, chapterID, userID int) ([]models.LectureProgressItem, error) {
	query := `
		SELECT lp.id, lp.chapter_id, lp.name, lp.location, lp.duration, lp.watched,
		       c.name AS chapter_name, s.name AS subject_name
		FROM lecture_progress lp
		JOIN chapters c ON lp.chapter_id = c.id
		JOIN subjects s ON c.subject_id = s.id
		WHERE lp.chapter_id = $1 AND lp.user_id = $2
		ORDER BY lp.name
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID, userID)
	if err != nil {
		r.logger.Error("failed to get lecture progress", zap.Error(err))
		return nil, fmt.Errorf("failed to get lecture progress: %w", err)
	}
	defer rows.Close()

	items := []models.LectureProgressItem{}
	for rows.Next() {
		var item models.LectureProgressItem
		if err := rows.Scan(
			&item.ID,
			&item.ChapterID,
			&item.Name,
			&item.Location,
			&item.Duration,
			&item.Watched,
			&item.ChapterName,
			&item.SubjectName,
		); err != nil {
			r.logger.Error("failed to scan lecture progress", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lecture progress: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate lecture progress", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate lecture progress: %w", err)
	}

	return items, nil
}

// ToggleWatched atomically flips the watched flag of a progress row owned by
// the user and returns the new value. A missing or foreign row is reported
// as models.ErrNotFound.
func (r *progressRepository) ToggleWatched(ctx context.Context, id, userID int) (bool, error) {
	query := `
		UPDATE lecture_progress
		SET watched = NOT watched
		WHERE id = $1 AND user_id = $2
		RETURNING watched
	`

	var watched bool
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&watched)

	if err == sql.ErrNoRows {
		return false, fmt.Errorf("lecture %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to toggle watched", zap.Error(err))
		return false, fmt.Errorf("failed to toggle watched: %w", err)
	}

	return watched, nil
}

// ChapterDuration sums a user's lecture durations in a chapter, total and
// watched-only. Both sums are 0 when no rows match.
func (r *progressRepository) ChapterDuration(ctx context.Context, chapterID, userID int) (*models.DurationSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN watched THEN duration ELSE 0 END), 0) AS watched_duration,
			COALESCE(SUM(duration), 0) AS total_duration
		FROM lecture_progress
		WHERE chapter_id = $1 AND user_id = $2
	`

	summary := &models.DurationSummary{}
	err := r.db.QueryRowContext(ctx, query, chapterID, userID).Scan(
		&summary.WatchedDuration,
		&summary.TotalDuration,
	)
	if err != nil {
		r.logger.Error("failed to get chapter duration", zap.Error(err))
		return nil, fmt.Errorf("failed to get chapter duration: %w", err)
	}

	return summary, nil
}

// SubjectDuration sums a user's lecture durations across all chapters of a
// subject, total and watched-only. Both sums are 0 when no rows match.
func (r *progressRepository) SubjectDuration(ctx context.Context, subjectID, userID int) (*models.DurationSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN lp.watched THEN lp.duration ELSE 0 END), 0) AS watched_duration,
			COALESCE(SUM(lp.duration), 0) AS total_duration
		FROM lecture_progress lp
		JOIN chapters c ON lp.chapter_id = c.id
		WHERE c.subject_id = $1 AND lp.user_id = $2
	`

	summary := &models.DurationSummary{}
	err := r.db.QueryRowContext(ctx, query, subjectID, userID).Scan(
		&summary.WatchedDuration,
		&summary.TotalDuration,
	)
	if err != nil {
		r.logger.Error("failed to get subject duration", zap.Error(err))
		return nil, fmt.Errorf("failed to get subject duration: %w", err)
	}

	return summary, nil
}
