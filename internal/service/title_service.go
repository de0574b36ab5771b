package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paragraph-titler/internal/apperror"
	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/metrics"
	"paragraph-titler/internal/repository"
	"paragraph-titler/internal/titler"
)

const (
	DefaultMaxLength = 15
	DefaultMinLength = 5
	DefaultPageSize  = 50
	MaxPageSize      = 100
)

// ErrResultNotFound is returned when a saved result does not exist or belongs to someone else.
var ErrResultNotFound = apperror.New(apperror.KindNotFound, "result_not_found", "result not found")

// Generator produces unclassified titles; *titler.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, paragraph string, maxLength, minLength int) (*domain.TitleResult, error)
}

// GenerateOptions bounds the model output and controls persistence.
type GenerateOptions struct {
	MaxLength int
	MinLength int
	Save      bool
}

// BatchResult is the outcome of a multi-paragraph request.
type BatchResult struct {
	Results               []domain.TitleResult
	TotalProcessingTimeMs float64
}

// TitleService runs the generate, classify and persist pipeline for a user.
type TitleService interface {
	GenerateTitle(ctx context.Context, userID int64, paragraph string, opts GenerateOptions) (*domain.TitleResult, error)
	GenerateTitles(ctx context.Context, userID int64, paragraphs []string, opts GenerateOptions) (*BatchResult, error)
	ListSaved(ctx context.Context, userID int64, limit, offset int) ([]domain.TitleResult, int, error)
	DeleteSaved(ctx context.Context, userID, resultID int64) error
}

type titleService struct {
	generator Generator
	results   repository.ResultRepository
	metrics   *metrics.Recorder
	now       func() time.Time
}

func NewTitleService(generator Generator, results repository.ResultRepository, recorder *metrics.Recorder) TitleService {
	return &titleService{
		generator: generator,
		results:   results,
		metrics:   recorder,
		now:       time.Now,
	}
}

func (s *titleService) GenerateTitle(ctx context.Context, userID int64, paragraph string, opts GenerateOptions) (*domain.TitleResult, error) {
	if err := validateBounds(opts); err != nil {
		return nil, err
	}
	return s.generateOne(ctx, userID, paragraph, opts)
}

// GenerateTitles handles paragraphs one after another, skipping blank entries.
// The first failure aborts the batch and discards the titles computed so far.
// Results already saved by earlier items stay saved.
func (s *titleService) GenerateTitles(ctx context.Context, userID int64, paragraphs []string, opts GenerateOptions) (*BatchResult, error) {
	if len(paragraphs) == 0 {
		return nil, apperror.Newf(apperror.KindValidation, "empty_batch", "at least one paragraph is required")
	}
	if err := validateBounds(opts); err != nil {
		return nil, err
	}

	start := s.now()
	results := make([]domain.TitleResult, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		res, err := s.generateOne(ctx, userID, paragraph, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}

	return &BatchResult{
		Results:               results,
		TotalProcessingTimeMs: titler.Milliseconds(s.now().Sub(start)),
	}, nil
}

func (s *titleService) generateOne(ctx context.Context, userID int64, paragraph string, opts GenerateOptions) (*domain.TitleResult, error) {
	res, err := s.generator.Generate(ctx, paragraph, opts.MaxLength, opts.MinLength)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindDependency {
			s.metrics.ObserveFailure()
		}
		return nil, err
	}
	res.Status, res.Confidence = titler.Classify(res.Title, res.Paragraph)
	s.metrics.ObserveTitle(string(res.Status), string(res.Confidence), res.ProcessingTimeMs)

	if opts.Save {
		if _, err := s.results.Save(ctx, userID, res); err != nil {
			return nil, fmt.Errorf("save result: %w", err)
		}
	}
	return res, nil
}

func (s *titleService) ListSaved(ctx context.Context, userID int64, limit, offset int) ([]domain.TitleResult, int, error) {
	if limit < 1 || limit > MaxPageSize {
		return nil, 0, apperror.Newf(apperror.KindValidation, "invalid_limit", "limit must be between 1 and %d", MaxPageSize)
	}
	if offset < 0 {
		return nil, 0, apperror.Newf(apperror.KindValidation, "invalid_offset", "offset must not be negative")
	}
	results, total, err := s.results.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list results: %w", err)
	}
	return results, total, nil
}

func (s *titleService) DeleteSaved(ctx context.Context, userID, resultID int64) error {
	removed, err := s.results.Delete(ctx, resultID, userID)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if !removed {
		return ErrResultNotFound
	}
	return nil
}

func validateBounds(opts GenerateOptions) error {
	if opts.MaxLength < 5 || opts.MaxLength > 50 {
		return apperror.Newf(apperror.KindValidation, "invalid_max_length", "max_length must be between 5 and 50")
	}
	if opts.MinLength < 1 || opts.MinLength > 20 {
		return apperror.Newf(apperror.KindValidation, "invalid_min_length", "min_length must be between 1 and 20")
	}
	if opts.MinLength > opts.MaxLength {
		return apperror.Newf(apperror.KindValidation, "invalid_length_bounds", "min_length must not exceed max_length")
	}
	return nil
}
