package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// setupChapterTestRepository creates a chapter repository with a mock database
func setupChapterTestRepository(t *testing.T) (*chapterRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewChapterRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestChapterRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupChapterTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "subject_id", "name"}).
		AddRow(1, 1, "Algebra").
		AddRow(2, 1, "Geometry").
		AddRow(3, 2, "Mechanics")
	mock.ExpectQuery(`SELECT id, subject_id, name FROM chapters ORDER BY id`).
		WillReturnRows(rows)

	chapters, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, models.Chapter{ID: 3, SubjectID: 2, Name: "Mechanics"}, chapters[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChapterRepository_GetBySubjectID(t *testing.T) {
	repo, mock, cleanup := setupChapterTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "subject_id", "name"}).
		AddRow(1, 1, "Algebra").
		AddRow(2, 1, "Geometry")
	mock.ExpectQuery(`SELECT id, subject_id, name FROM chapters WHERE subject_id`).
		WithArgs(1).
		WillReturnRows(rows)

	chapters, err := repo.GetBySubjectID(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Algebra", chapters[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChapterRepository_GetByName(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupChapterTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "subject_id", "name"}).
			AddRow(2, 1, "Geometry")
		mock.ExpectQuery(`SELECT id, subject_id, name FROM chapters WHERE subject_id`).
			WithArgs(1, "Geometry").
			WillReturnRows(rows)

		chapter, err := repo.GetByName(context.Background(), 1, "Geometry")

		require.NoError(t, err)
		assert.Equal(t, &models.Chapter{ID: 2, SubjectID: 1, Name: "Geometry"}, chapter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupChapterTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, subject_id, name FROM chapters WHERE subject_id`).
			WithArgs(1, "Ghost").
			WillReturnError(sql.ErrNoRows)

		chapter, err := repo.GetByName(context.Background(), 1, "Ghost")

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, chapter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestChapterRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupChapterTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(4)
	mock.ExpectQuery(`INSERT INTO chapters`).
		WithArgs(2, "Optics").
		WillReturnRows(rows)

	chapter := &models.Chapter{SubjectID: 2, Name: "Optics"}
	err := repo.Create(context.Background(), chapter)

	require.NoError(t, err)
	assert.Equal(t, 4, chapter.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
