package services

import (
	"context"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// SubjectRepository is the interface that wraps subject reads
type SubjectRepository interface {
	// Method GetAll retrieves all subjects ordered by name.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Subject, error)
}

// SubjectChapterRepository is the interface that wraps per-subject chapter reads
type SubjectChapterRepository interface {
	// Method GetBySubjectID retrieves the chapters of a subject ordered by name.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetBySubjectID(ctx context.Context, subjectID int) ([]models.Chapter, error)
}

// catalogService serves the shared subject/chapter tree
type catalogService struct {
	subjectRepo SubjectRepository
	chapterRepo SubjectChapterRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(subjectRepo SubjectRepository, chapterRepo SubjectChapterRepository) *catalogService {
	return &catalogService{
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
	}
}

// ListSubjects retrieves all subjects
func (s *catalogService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, nil
}

// ListChapters retrieves the chapters of a subject
func (s *catalogService) ListChapters(ctx context.Context, subjectID int) ([]models.Chapter, error) {
	chapters, err := s.chapterRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	return chapters, nil
}
