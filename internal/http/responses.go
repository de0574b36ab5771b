package http

import (
	"time"

	"paragraph-titler/internal/domain"
)

type UserResponse struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

// TitleResponse is a generated title. ResultID and CreatedAt are null for
// results that were not saved.
type TitleResponse struct {
	ResultID         *int64             `json:"result_id"`
	Paragraph        string             `json:"paragraph"`
	Title            string             `json:"title"`
	Status           domain.TitleStatus `json:"status"`
	Confidence       domain.Confidence  `json:"confidence"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
	CharacterCount   int                `json:"character_count"`
	WordCount        int                `json:"word_count"`
	CreatedAt        *string            `json:"created_at"`
}

type TitleEnvelope struct {
	Success bool          `json:"success"`
	Data    TitleResponse `json:"data"`
	Message string        `json:"message"`
}

type BatchEnvelope struct {
	Success               bool            `json:"success"`
	Data                  []TitleResponse `json:"data"`
	TotalParagraphs       int             `json:"total_paragraphs"`
	TotalProcessingTimeMs float64         `json:"total_processing_time_ms"`
	Message               string          `json:"message"`
}

type SavedResultsEnvelope struct {
	Success      bool            `json:"success"`
	Data         []TitleResponse `json:"data"`
	TotalResults int             `json:"total_results"`
	Message      string          `json:"message"`
}

type ExportResponse struct {
	Key          string  `json:"key"`
	Location     string  `json:"location"`
	DownloadURL  string  `json:"download_url,omitempty"`
	ResultCount  int     `json:"result_count,omitempty"`
	Size         int64   `json:"size,omitempty"`
	LastModified *string `json:"last_modified,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		LastLogin: formatTime(user.LastLogin),
	}
}

func titleToResponse(result domain.TitleResult) TitleResponse {
	return TitleResponse{
		ResultID:         result.ID,
		Paragraph:        result.Paragraph,
		Title:            result.Title,
		Status:           result.Status,
		Confidence:       result.Confidence,
		ProcessingTimeMs: result.ProcessingTimeMs,
		CharacterCount:   result.CharacterCount,
		WordCount:        result.WordCount,
		CreatedAt:        formatTime(result.CreatedAt),
	}
}

func exportToResponse(export domain.Export) ExportResponse {
	return ExportResponse{
		Key:          export.Key,
		Location:     export.Location,
		Size:         export.Size,
		LastModified: formatTime(export.LastModified),
	}
}
