package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"paragraph-titler/internal/apperror"
	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/repository"
	"paragraph-titler/internal/storage"
)

const exportURLExpiry = 15 * time.Minute

// ErrExportDisabled is returned when no archive bucket is configured.
var ErrExportDisabled = apperror.New(apperror.KindUnavailable, "export_disabled", "result export is not configured")

// ExportResult points at an uploaded archive.
type ExportResult struct {
	Key         string
	Location    string
	DownloadURL string
	Count       int
}

// ExportService archives a user's saved results to object storage.
type ExportService interface {
	Enabled() bool
	Export(ctx context.Context, userID int64) (*ExportResult, error)
	List(ctx context.Context, userID int64) ([]domain.Export, error)
}

type exportService struct {
	results   repository.ResultRepository
	storage   storage.Service
	bucket    string
	keyPrefix string
	now       func() time.Time
}

// NewExportService builds the export service. A nil store or empty bucket
// disables exports.
func NewExportService(results repository.ResultRepository, store storage.Service, bucket, keyPrefix string) ExportService {
	return &exportService{
		results:   results,
		storage:   store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}
}

type exportDocument struct {
	UserID     int64          `json:"user_id"`
	ExportedAt time.Time      `json:"exported_at"`
	Results    []exportRecord `json:"results"`
}

type exportRecord struct {
	ResultID         int64      `json:"result_id"`
	Title            string     `json:"title"`
	Paragraph        string     `json:"paragraph"`
	Status           string     `json:"status"`
	Confidence       string     `json:"confidence"`
	ProcessingTimeMs float64    `json:"processing_time_ms"`
	CharacterCount   int        `json:"character_count"`
	WordCount        int        `json:"word_count"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

func (s *exportService) Enabled() bool {
	return s.storage != nil && s.bucket != ""
}

func (s *exportService) Export(ctx context.Context, userID int64) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, ErrExportDisabled
	}

	results, err := s.results.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	doc := exportDocument{
		UserID:     userID,
		ExportedAt: s.now().UTC(),
		Results:    make([]exportRecord, len(results)),
	}
	for i, r := range results {
		rec := exportRecord{
			Title:            r.Title,
			Paragraph:        r.Paragraph,
			Status:           string(r.Status),
			Confidence:       string(r.Confidence),
			ProcessingTimeMs: r.ProcessingTimeMs,
			CharacterCount:   r.CharacterCount,
			WordCount:        r.WordCount,
			CreatedAt:        r.CreatedAt,
		}
		if r.ID != nil {
			rec.ResultID = *r.ID
		}
		doc.Results[i] = rec
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := path.Join(s.userPrefix(userID), fmt.Sprintf("%s-%s.json", doc.ExportedAt.Format("20060102T150405Z"), uuid.NewString()))
	location, err := s.storage.PutObject(ctx, s.bucket, key, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.storage.GetObjectURL(ctx, s.bucket, key, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportResult{
		Key:         key,
		Location:    location,
		DownloadURL: url,
		Count:       len(results),
	}, nil
}

func (s *exportService) List(ctx context.Context, userID int64) ([]domain.Export, error) {
	if !s.Enabled() {
		return nil, ErrExportDisabled
	}

	objects, err := s.storage.ListObjects(ctx, s.bucket, s.userPrefix(userID)+"/")
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}

	exports := make([]domain.Export, len(objects))
	for i, obj := range objects {
		exports[i] = domain.Export{
			Key:          obj.Key,
			Location:     fmt.Sprintf("s3://%s/%s", s.bucket, obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		}
	}
	return exports, nil
}

func (s *exportService) userPrefix(userID int64) string {
	return path.Join(s.keyPrefix, fmt.Sprintf("user-%d", userID))
}
