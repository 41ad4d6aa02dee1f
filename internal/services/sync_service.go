package services

import (
	"context"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// ChapterRepository is the interface that wraps chapter access needed by the synchronizer
type ChapterRepository interface {
	// Method GetAll retrieves every chapter in the catalog.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Chapter, error)
}

// CatalogLectureRepository is the interface that wraps catalog lecture reads
type CatalogLectureRepository interface {
	// Method GetByChapterID retrieves the catalog lectures of a chapter.
	//
	// "chapterID" parameter identifies the chapter.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetByChapterID(ctx context.Context, chapterID int) ([]models.CatalogLecture, error)
}

// ProgressSyncRepository is the interface that wraps progress-store writes used by the synchronizer
type ProgressSyncRepository interface {
	// Method GetNamesByChapterAndUser retrieves the lecture names the user already
	// has progress rows for in a chapter.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetNamesByChapterAndUser(ctx context.Context, chapterID, userID int) ([]string, error)
	// Method CreateIfAbsent inserts a progress row unless one already exists for
	// (chapter_id, user_id, name); the uniqueness constraint arbitrates concurrent
	// inserts. Returns true if a row was inserted.
	//
	// If some error occurs during insertion, the error will be returned together with "false" value.
	CreateIfAbsent(ctx context.Context, progress *models.LectureProgress) (bool, error)
}

// syncService replicates the shared catalog into per-user progress stores
type syncService struct {
	chapterRepo  ChapterRepository
	catalogRepo  CatalogLectureRepository
	progressRepo ProgressSyncRepository
	logger       *zap.Logger
}

// NewSyncService creates a new synchronizer
func NewSyncService(
	chapterRepo ChapterRepository,
	catalogRepo CatalogLectureRepository,
	progressRepo ProgressSyncRepository,
	logger *zap.Logger,
) *syncService {
	return &syncService{
		chapterRepo:  chapterRepo,
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// Synchronize ensures the user's progress store covers every catalog lecture,
// inserting missing rows with watched=false and never touching existing ones.
// Idempotent: a run over an already-covered user performs zero writes.
//
// Errors are best-effort by contract: a failing chapter is logged and counted
// in the result, and the remaining chapters are still processed. Callers must
// not fail registration or login on a partial or failed sync.
func (s *syncService) Synchronize(ctx context.Context, userID int) models.SyncResult {
	result := models.SyncResult{}

	chapters, err := s.chapterRepo.GetAll(ctx)
	if err != nil {
		s.logger.Warn("sync: failed to list chapters", zap.Int("userId", userID), zap.Error(err))
		result.CatalogUnavailable = true
		return result
	}

	for _, chapter := range chapters {
		added, err := s.syncChapter(ctx, chapter.ID, userID)
		if err != nil {
			s.logger.Warn("sync: chapter failed",
				zap.Int("userId", userID),
				zap.Int("chapterId", chapter.ID),
				zap.Error(err),
			)
			result.ChaptersFailed++
			continue
		}
		result.LecturesAdded += added
	}

	return result
}

// syncChapter inserts the user's missing progress rows for one chapter and
// returns how many were inserted
func (s *syncService) syncChapter(ctx context.Context, chapterID, userID int) (int, error) {
	lectures, err := s.catalogRepo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	if len(lectures) == 0 {
		return 0, nil
	}

	ownedNames, err := s.progressRepo.GetNamesByChapterAndUser(ctx, chapterID, userID)
	if err != nil {
		return 0, err
	}

	owned := make(map[string]struct{}, len(ownedNames))
	for _, name := range ownedNames {
		owned[name] = struct{}{}
	}

	added := 0
	for _, lecture := range lectures {
		if _, ok := owned[lecture.Name]; ok {
			continue
		}

		inserted, err := s.progressRepo.CreateIfAbsent(ctx, &models.LectureProgress{
			ChapterID: chapterID,
			UserID:    userID,
			Name:      lecture.Name,
			Location:  lecture.Location,
			Duration:  lecture.Duration,
			Watched:   false,
		})
		if err != nil {
			return added, err
		}
		// A concurrent sync may have inserted the row first; the conflict
		// is silent and the row is counted by whichever run won.
		if inserted {
			added++
		}
	}

	return added, nil
}
