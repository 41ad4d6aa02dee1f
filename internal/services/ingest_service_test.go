package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// mockSubjectIngestRepository is an in-memory implementation of SubjectIngestRepository
type mockSubjectIngestRepository struct {
	subjects map[string]int
	nextID   int
}

func newMockSubjectIngestRepository() *mockSubjectIngestRepository {
	return &mockSubjectIngestRepository{subjects: map[string]int{}, nextID: 1}
}

func (m *mockSubjectIngestRepository) GetByName(ctx context.Context, name string) (*models.Subject, error) {
	id, ok := m.subjects[name]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", name, models.ErrNotFound)
	}
	return &models.Subject{ID: id, Name: name}, nil
}

func (m *mockSubjectIngestRepository) Create(ctx context.Context, subject *models.Subject) error {
	subject.ID = m.nextID
	m.nextID++
	m.subjects[subject.Name] = subject.ID
	return nil
}

// mockChapterIngestRepository is an in-memory implementation of ChapterIngestRepository
type mockChapterIngestRepository struct {
	chapters map[string]int // keyed by "<subjectID>/<name>"
	nextID   int
}

func newMockChapterIngestRepository() *mockChapterIngestRepository {
	return &mockChapterIngestRepository{chapters: map[string]int{}, nextID: 1}
}

func (m *mockChapterIngestRepository) key(subjectID int, name string) string {
	return fmt.Sprintf("%d/%s", subjectID, name)
}

func (m *mockChapterIngestRepository) GetByName(ctx context.Context, subjectID int, name string) (*models.Chapter, error) {
	id, ok := m.chapters[m.key(subjectID, name)]
	if !ok {
		return nil, fmt.Errorf("chapter %q: %w", name, models.ErrNotFound)
	}
	return &models.Chapter{ID: id, SubjectID: subjectID, Name: name}, nil
}

func (m *mockChapterIngestRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	chapter.ID = m.nextID
	m.nextID++
	m.chapters[m.key(chapter.SubjectID, chapter.Name)] = chapter.ID
	return nil
}

// mockCatalogIngestRepository is an in-memory implementation of CatalogIngestRepository
type mockCatalogIngestRepository struct {
	lectures map[string]*models.CatalogLecture // keyed by "<chapterID>/<name>"
	nextID   int
}

func newMockCatalogIngestRepository() *mockCatalogIngestRepository {
	return &mockCatalogIngestRepository{lectures: map[string]*models.CatalogLecture{}, nextID: 1}
}

func (m *mockCatalogIngestRepository) key(chapterID int, name string) string {
	return fmt.Sprintf("%d/%s", chapterID, name)
}

func (m *mockCatalogIngestRepository) ExistsByChapterAndName(ctx context.Context, chapterID int, name string) (bool, error) {
	_, ok := m.lectures[m.key(chapterID, name)]
	return ok, nil
}

func (m *mockCatalogIngestRepository) Create(ctx context.Context, lecture *models.CatalogLecture) error {
	lecture.ID = m.nextID
	m.nextID++
	m.lectures[m.key(lecture.ChapterID, lecture.Name)] = lecture
	return nil
}

// mockProber is a mock implementation of DurationProber
type mockProber struct {
	duration  float64
	failNames map[string]bool // base file names that fail to probe
}

func (m *mockProber) Duration(ctx context.Context, path string) (float64, error) {
	if m.failNames[filepath.Base(path)] {
		return 0, fmt.Errorf("probe %q: %w", path, models.ErrDurationUnavailable)
	}
	return m.duration, nil
}

// writeMediaTree lays out root/<subject>/<chapter>/<file> fixtures
func writeMediaTree(t *testing.T, root string, tree map[string][]string) {
	t.Helper()
	for dir, files := range tree {
		full := filepath.Join(root, filepath.FromSlash(dir))
		require.NoError(t, os.MkdirAll(full, 0o755))
		for _, file := range files {
			require.NoError(t, os.WriteFile(filepath.Join(full, file), []byte("media"), 0o644))
		}
	}
}

func newTestIngestService(prober DurationProber) (*ingestService, *mockSubjectIngestRepository, *mockChapterIngestRepository, *mockCatalogIngestRepository) {
	subjects := newMockSubjectIngestRepository()
	chapters := newMockChapterIngestRepository()
	catalog := newMockCatalogIngestRepository()
	svc := NewIngestService(subjects, chapters, catalog, prober, zap.NewNop())
	return svc, subjects, chapters, catalog
}

func TestIngestService_Scan_FreshTree(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"Math/Algebra":      {"Lecture 1.mp4", "Lecture 2.mp4"},
		"Math/Geometry":     {"Lecture 1.mp4"},
		"Physics/Mechanics": {"Lecture 1.mp4"},
	})

	svc, subjects, chapters, catalog := newTestIngestService(&mockProber{duration: 600})

	result, err := svc.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, 2, result.SubjectsCreated)
	assert.Equal(t, 3, result.ChaptersCreated)
	assert.Equal(t, 4, result.LecturesCreated)
	assert.Zero(t, result.ProbeFailures)

	assert.Len(t, subjects.subjects, 2)
	assert.Len(t, chapters.chapters, 3)
	assert.Len(t, catalog.lectures, 4)

	// Lecture name is the file name without extension; location is the full path
	algebraID := chapters.chapters[chapters.key(subjects.subjects["Math"], "Algebra")]
	lecture := catalog.lectures[catalog.key(algebraID, "Lecture 1")]
	require.NotNil(t, lecture)
	assert.Equal(t, filepath.Join(root, "Math", "Algebra", "Lecture 1.mp4"), lecture.Location)
	assert.Equal(t, 600.0, lecture.Duration)
}

func TestIngestService_Scan_RescanIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"Math/Algebra": {"Lecture 1.mp4"},
	})

	svc, _, _, catalog := newTestIngestService(&mockProber{duration: 600})

	_, err := svc.Scan(context.Background(), root)
	require.NoError(t, err)

	result, err := svc.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Zero(t, result.SubjectsCreated)
	assert.Zero(t, result.ChaptersCreated)
	assert.Zero(t, result.LecturesCreated)
	assert.Len(t, catalog.lectures, 1)
}

func TestIngestService_Scan_NewFilePickedUpOnRescan(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"Math/Algebra": {"Lecture 1.mp4"},
	})

	svc, _, _, catalog := newTestIngestService(&mockProber{duration: 600})

	_, err := svc.Scan(context.Background(), root)
	require.NoError(t, err)

	writeMediaTree(t, root, map[string][]string{
		"Math/Algebra": {"Lecture 2.mp4"},
	})

	result, err := svc.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Zero(t, result.SubjectsCreated)
	assert.Zero(t, result.ChaptersCreated)
	assert.Equal(t, 1, result.LecturesCreated)
	assert.Len(t, catalog.lectures, 2)
}

func TestIngestService_Scan_ProbeFailureIngestsWithZeroDuration(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"Math/Algebra": {"Lecture 1.mp4", "broken.mp4"},
	})

	prober := &mockProber{duration: 600, failNames: map[string]bool{"broken.mp4": true}}
	svc, subjects, chapters, catalog := newTestIngestService(prober)

	result, err := svc.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, 2, result.LecturesCreated)
	assert.Equal(t, 1, result.ProbeFailures)

	algebraID := chapters.chapters[chapters.key(subjects.subjects["Math"], "Algebra")]
	broken := catalog.lectures[catalog.key(algebraID, "broken")]
	require.NotNil(t, broken)
	assert.Zero(t, broken.Duration)
}

func TestIngestService_Scan_MissingRoot(t *testing.T) {
	svc, _, _, _ := newTestIngestService(&mockProber{})

	_, err := svc.Scan(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Error(t, err)
}
