package models

// LectureProgress is a per-user copy of a catalog lecture carrying the
// watched flag. Rows are created only by the synchronizer and mutated only
// by the watched toggle; (chapter_id, user_id, name) is unique.
type LectureProgress struct {
	ID        int     `json:"id"`
	ChapterID int     `json:"chapter_id"`
	UserID    int     `json:"-"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Duration  float64 `json:"duration"`
	Watched   bool    `json:"watched"`
}

// LectureProgressItem is a progress row joined with chapter and subject
// names for display
type LectureProgressItem struct {
	ID          int     `json:"id"`
	ChapterID   int     `json:"chapter_id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Duration    float64 `json:"duration"`
	Watched     bool    `json:"watched"`
	ChapterName string  `json:"chapter_name"`
	SubjectName string  `json:"subject_name"`
}

// ToggleResponse is returned by the watched toggle endpoint
type ToggleResponse struct {
	ID      int  `json:"id"`
	Watched bool `json:"watched"`
}

// DurationSummary aggregates lecture durations for a chapter or subject.
// Both sums are 0, not null, when no rows match.
type DurationSummary struct {
	WatchedDuration float64 `json:"watched_duration"`
	TotalDuration   float64 `json:"total_duration"`
}

// SyncResult reports what a synchronizer run did. Callers treat it as
// informational; sync failures never fail the registration or login that
// triggered them.
type SyncResult struct {
	LecturesAdded  int
	ChaptersFailed int
	// CatalogUnavailable is set when the chapter list itself could not be
	// read, in which case no chapters were processed at all.
	CatalogUnavailable bool
}
