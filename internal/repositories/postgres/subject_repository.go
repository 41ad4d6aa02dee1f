package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// subjectRepository implements the services.SubjectRepository interface
type subjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *sql.DB, logger *zap.Logger) *subjectRepository {
	return &subjectRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all subjects ordered by name
func (r *subjectRepository) GetAll(ctx context.Context) ([]models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get subjects", zap.Error(err))
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			r.logger.Error("failed to scan subject", zap.Error(err))
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate subjects", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return subjects, nil
}

// GetByName retrieves a subject by name
func (r *subjectRepository) GetByName(ctx context.Context, name string) (*models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		WHERE name = $1
		LIMIT 1
	`

	subject := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&subject.ID, &subject.Name)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subject %q: %w", name, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get subject by name", zap.Error(err))
		return nil, fmt.Errorf("failed to get subject by name: %w", err)
	}

	return subject, nil
}

// Create inserts a new subject
func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, subject.Name).Scan(&subject.ID)
	if err != nil {
		r.logger.Error("failed to create subject", zap.Error(err))
		return fmt.Errorf("failed to create subject: %w", err)
	}

	return nil
}
