package domain

import "time"

// TitleStatus labels the shape of a generated title.
type TitleStatus string

const (
	TitleStatusShort     TitleStatus = "short"
	TitleStatusOptimal   TitleStatus = "optimal"
	TitleStatusVerbose   TitleStatus = "verbose"
	TitleStatusTruncated TitleStatus = "truncated"
)

// Confidence is a heuristic label derived mostly from the source paragraph length.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// TitleResult is a generated title together with its source paragraph and metrics.
// ID and CreatedAt are only set once the result has been persisted.
type TitleResult struct {
	ID               *int64      `db:"id"`
	Title            string      `db:"generated_title"`
	Paragraph        string      `db:"paragraph"`
	Status           TitleStatus `db:"status"`
	Confidence       Confidence  `db:"confidence"`
	ProcessingTimeMs float64     `db:"processing_time_ms"`
	CharacterCount   int         `db:"character_count"`
	WordCount        int         `db:"word_count"`
	CreatedAt        *time.Time  `db:"created_at"`
}

// Export describes an archived copy of a user's saved results in object storage.
type Export struct {
	Key          string
	Location     string
	Size         int64
	LastModified *time.Time
}
