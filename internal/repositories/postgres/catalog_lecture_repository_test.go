package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// setupCatalogLectureTestRepository creates a catalog lecture repository with a mock database
func setupCatalogLectureTestRepository(t *testing.T) (*catalogLectureRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCatalogLectureRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCatalogLectureRepository_GetByChapterID(t *testing.T) {
	repo, mock, cleanup := setupCatalogLectureTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "chapter_id", "name", "location", "duration"}).
		AddRow(1, 3, "Lecture 1", "/lectures/Math/Algebra/Lecture 1.mp4", 600.0).
		AddRow(2, 3, "Lecture 2", "/lectures/Math/Algebra/Lecture 2.mp4", 720.0)
	mock.ExpectQuery(`FROM catalog_lectures`).
		WithArgs(3).
		WillReturnRows(rows)

	lectures, err := repo.GetByChapterID(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.Equal(t, "Lecture 1", lectures[0].Name)
	assert.Equal(t, 720.0, lectures[1].Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogLectureRepository_ExistsByChapterAndName(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedError  bool
		expectedExists bool
	}{
		{
			name: "exists",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(3, "Lecture 1").
					WillReturnRows(rows)
			},
			expectedExists: true,
		},
		{
			name: "does not exist",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(3, "Lecture 1").
					WillReturnRows(rows)
			},
			expectedExists: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(3, "Lecture 1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCatalogLectureTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsByChapterAndName(context.Background(), 3, "Lecture 1")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCatalogLectureRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupCatalogLectureTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(42)
	mock.ExpectQuery(`INSERT INTO catalog_lectures`).
		WithArgs(3, "Lecture 1", "/lectures/Math/Algebra/Lecture 1.mp4", 600.0).
		WillReturnRows(rows)

	lecture := &models.CatalogLecture{
		ChapterID: 3,
		Name:      "Lecture 1",
		Location:  "/lectures/Math/Algebra/Lecture 1.mp4",
		Duration:  600,
	}
	err := repo.Create(context.Background(), lecture)

	require.NoError(t, err)
	assert.Equal(t, 42, lecture.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
