package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	items      []models.LectureProgressItem
	itemsErr   error
	watched    bool
	toggleErr  error
	summary    *models.DurationSummary
	summaryErr error
}

func (m *mockProgressRepository) GetByChapterAndUser(ctx context.Context, chapterID, userID int) ([]models.LectureProgressItem, error) {
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return m.items, nil
}

func (m *mockProgressRepository) ToggleWatched(ctx context.Context, id, userID int) (bool, error) {
	if m.toggleErr != nil {
		return false, m.toggleErr
	}
	return m.watched, nil
}

func (m *mockProgressRepository) ChapterDuration(ctx context.Context, chapterID, userID int) (*models.DurationSummary, error) {
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}
	return m.summary, nil
}

func (m *mockProgressRepository) SubjectDuration(ctx context.Context, subjectID, userID int) (*models.DurationSummary, error) {
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}
	return m.summary, nil
}

func TestLectureService_ListLectures(t *testing.T) {
	items := []models.LectureProgressItem{
		{ID: 1, ChapterID: 3, Name: "Lecture 1", Watched: true, ChapterName: "Algebra", SubjectName: "Math"},
	}
	svc := NewLectureService(&mockProgressRepository{items: items})

	got, err := svc.ListLectures(context.Background(), 3, 7)

	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestLectureService_ToggleWatched(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewLectureService(&mockProgressRepository{watched: true})

		resp, err := svc.ToggleWatched(context.Background(), 5, 7)

		require.NoError(t, err)
		assert.Equal(t, &models.ToggleResponse{ID: 5, Watched: true}, resp)
	})

	t.Run("missing row keeps its identity", func(t *testing.T) {
		svc := NewLectureService(&mockProgressRepository{
			toggleErr: fmt.Errorf("lecture %d: %w", 5, models.ErrNotFound),
		})

		resp, err := svc.ToggleWatched(context.Background(), 5, 7)

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, resp)
	})
}

func TestLectureService_ChapterDuration(t *testing.T) {
	summary := &models.DurationSummary{WatchedDuration: 600, TotalDuration: 1320}
	svc := NewLectureService(&mockProgressRepository{summary: summary})

	got, err := svc.ChapterDuration(context.Background(), 3, 7)

	require.NoError(t, err)
	assert.Equal(t, summary, got)
}

func TestLectureService_SubjectDuration_Error(t *testing.T) {
	svc := NewLectureService(&mockProgressRepository{summaryErr: errors.New("database error")})

	_, err := svc.SubjectDuration(context.Background(), 2, 7)

	assert.Error(t, err)
}
