package models

// Subject is a top-level grouping of the shared catalog
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Chapter belongs to a subject; (subject_id, name) is unique
type Chapter struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"subject_id"`
	Name      string `json:"name"`
}

// CatalogLecture is a shared, user-independent lecture entry.
// (chapter_id, name) is unique; duration is in seconds.
type CatalogLecture struct {
	ID        int     `json:"id"`
	ChapterID int     `json:"chapter_id"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Duration  float64 `json:"duration"`
}
