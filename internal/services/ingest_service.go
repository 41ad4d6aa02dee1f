package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// SubjectIngestRepository is the interface that wraps subject lookups and inserts for ingestion
type SubjectIngestRepository interface {
	// Method GetByName retrieves a subject by name; a missing subject is
	// reported as models.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.Subject, error)
	// Method Create inserts a new subject and writes the generated id back.
	Create(ctx context.Context, subject *models.Subject) error
}

// ChapterIngestRepository is the interface that wraps chapter lookups and inserts for ingestion
type ChapterIngestRepository interface {
	// Method GetByName retrieves a chapter of a subject by name; a missing
	// chapter is reported as models.ErrNotFound.
	GetByName(ctx context.Context, subjectID int, name string) (*models.Chapter, error)
	// Method Create inserts a new chapter and writes the generated id back.
	Create(ctx context.Context, chapter *models.Chapter) error
}

// CatalogIngestRepository is the interface that wraps catalog lecture writes for ingestion
type CatalogIngestRepository interface {
	// Method ExistsByChapterAndName checks if a catalog lecture already exists in a chapter.
	ExistsByChapterAndName(ctx context.Context, chapterID int, name string) (bool, error)
	// Method Create inserts a new catalog lecture.
	Create(ctx context.Context, lecture *models.CatalogLecture) error
}

// DurationProber reads a media file's duration in seconds.
// A failed probe is reported as models.ErrDurationUnavailable.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// IngestResult reports what an ingestion run did
type IngestResult struct {
	SubjectsCreated int
	ChaptersCreated int
	LecturesCreated int
	ProbeFailures   int
}

// ingestService scans a media directory tree into the shared catalog.
// The layout is root/<subject>/<chapter>/<lecture file>; existing rows are
// never modified or deleted, so re-running over the same tree is idempotent.
type ingestService struct {
	subjectRepo SubjectIngestRepository
	chapterRepo ChapterIngestRepository
	catalogRepo CatalogIngestRepository
	prober      DurationProber
	logger      *zap.Logger
}

// NewIngestService creates a new catalog ingestion service
func NewIngestService(
	subjectRepo SubjectIngestRepository,
	chapterRepo ChapterIngestRepository,
	catalogRepo CatalogIngestRepository,
	prober DurationProber,
	logger *zap.Logger,
) *ingestService {
	return &ingestService{
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		catalogRepo: catalogRepo,
		prober:      prober,
		logger:      logger,
	}
}

// Scan walks root and inserts missing subjects, chapters and catalog
// lectures. Lecture duration comes from the prober; when it fails the
// lecture is still ingested with duration 0 and the failure is counted.
func (s *ingestService) Scan(ctx context.Context, root string) (*IngestResult, error) {
	result := &IngestResult{}

	subjectDirs, err := listDirs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read media root: %w", err)
	}

	for _, subjectName := range subjectDirs {
		subject, created, err := s.ensureSubject(ctx, subjectName)
		if err != nil {
			return result, err
		}
		if created {
			result.SubjectsCreated++
		}

		chapterDirs, err := listDirs(filepath.Join(root, subjectName))
		if err != nil {
			return result, fmt.Errorf("failed to read subject dir %q: %w", subjectName, err)
		}

		for _, chapterName := range chapterDirs {
			chapter, created, err := s.ensureChapter(ctx, subject.ID, chapterName)
			if err != nil {
				return result, err
			}
			if created {
				result.ChaptersCreated++
			}

			chapterPath := filepath.Join(root, subjectName, chapterName)
			if err := s.ingestLectures(ctx, chapter.ID, chapterPath, result); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// ensureSubject returns the subject with the given name, creating it if absent
func (s *ingestService) ensureSubject(ctx context.Context, name string) (*models.Subject, bool, error) {
	subject, err := s.subjectRepo.GetByName(ctx, name)
	if err == nil {
		return subject, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	subject = &models.Subject{Name: name}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, false, err
	}

	return subject, true, nil
}

// ensureChapter returns the chapter with the given name, creating it if absent
func (s *ingestService) ensureChapter(ctx context.Context, subjectID int, name string) (*models.Chapter, bool, error) {
	chapter, err := s.chapterRepo.GetByName(ctx, subjectID, name)
	if err == nil {
		return chapter, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	chapter = &models.Chapter{SubjectID: subjectID, Name: name}
	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, false, err
	}

	return chapter, true, nil
}

// ingestLectures inserts catalog rows for the media files in a chapter directory
func (s *ingestService) ingestLectures(ctx context.Context, chapterID int, chapterPath string, result *IngestResult) error {
	entries, err := os.ReadDir(chapterPath)
	if err != nil {
		return fmt.Errorf("failed to read chapter dir %q: %w", chapterPath, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		lectureName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		filePath := filepath.Join(chapterPath, fileName)

		exists, err := s.catalogRepo.ExistsByChapterAndName(ctx, chapterID, lectureName)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		duration, err := s.prober.Duration(ctx, filePath)
		if err != nil {
			// Ingest anyway; the duration stays 0 until a rescan with a
			// working prober, which will not touch the existing row.
			s.logger.Warn("duration probe failed",
				zap.String("file", filePath),
				zap.Error(err),
			)
			result.ProbeFailures++
			duration = 0
		}

		lecture := &models.CatalogLecture{
			ChapterID: chapterID,
			Name:      lectureName,
			Location:  filePath,
			Duration:  duration,
		}
		if err := s.catalogRepo.Create(ctx, lecture); err != nil {
			return err
		}
		result.LecturesCreated++
	}

	return nil
}

// listDirs returns the names of the immediate subdirectories of path, sorted
func listDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	dirs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	return dirs, nil
}
