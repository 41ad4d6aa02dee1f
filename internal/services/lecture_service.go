package services

import (
	"context"
	"fmt"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// ProgressRepository is the interface that wraps per-user progress reads and the watched toggle
type ProgressRepository interface {
	// Method GetByChapterAndUser retrieves the user's progress rows for a chapter
	// joined with chapter and subject names, ordered by lecture name.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetByChapterAndUser(ctx context.Context, chapterID, userID int) ([]models.LectureProgressItem, error)
	// Method ToggleWatched atomically flips the watched flag of a progress row
	// owned by the user and returns the new value.
	//
	// A row that does not exist or belongs to another user is reported as models.ErrNotFound.
	ToggleWatched(ctx context.Context, id, userID int) (bool, error)
	// Method ChapterDuration sums the user's lecture durations in a chapter.
	// Both sums are 0, never null, when no rows match.
	ChapterDuration(ctx context.Context, chapterID, userID int) (*models.DurationSummary, error)
	// Method SubjectDuration sums the user's lecture durations across a subject.
	// Both sums are 0, never null, when no rows match.
	SubjectDuration(ctx context.Context, subjectID, userID int) (*models.DurationSummary, error)
}

// lectureService serves per-user lecture progress
type lectureService struct {
	progressRepo ProgressRepository
}

// NewLectureService creates a new lecture service
func NewLectureService(progressRepo ProgressRepository) *lectureService {
	return &lectureService{
		progressRepo: progressRepo,
	}
}

// ListLectures retrieves the user's lecture progress for a chapter
func (s *lectureService) ListLectures(ctx context.Context, chapterID, userID int) ([]models.LectureProgressItem, error) {
	items, err := s.progressRepo.GetByChapterAndUser(ctx, chapterID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}

	return items, nil
}

// ToggleWatched flips the watched flag of the user's progress row and
// returns the new state
func (s *lectureService) ToggleWatched(ctx context.Context, lectureID, userID int) (*models.ToggleResponse, error) {
	watched, err := s.progressRepo.ToggleWatched(ctx, lectureID, userID)
	if err != nil {
		return nil, err
	}

	return &models.ToggleResponse{ID: lectureID, Watched: watched}, nil
}

// ChapterDuration aggregates watched and total durations for a chapter
func (s *lectureService) ChapterDuration(ctx context.Context, chapterID, userID int) (*models.DurationSummary, error) {
	summary, err := s.progressRepo.ChapterDuration(ctx, chapterID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter duration: %w", err)
	}

	return summary, nil
}

// SubjectDuration aggregates watched and total durations for a subject
func (s *lectureService) SubjectDuration(ctx context.Context, subjectID, userID int) (*models.DurationSummary, error) {
	summary, err := s.progressRepo.SubjectDuration(ctx, subjectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject duration: %w", err)
	}

	return summary, nil
}
