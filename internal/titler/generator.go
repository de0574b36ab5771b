// Package titler turns paragraphs into titles and grades them.
package titler

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"paragraph-titler/internal/apperror"
	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/summarizer"
)

var (
	ErrEmptyInput       = apperror.New(apperror.KindValidation, "empty_input", "paragraph cannot be empty")
	ErrGenerationFailed = apperror.New(apperror.KindDependency, "generation_failed", "failed to generate title")
	ErrModelUnavailable = apperror.New(apperror.KindUnavailable, "model_unavailable", "model not loaded yet")
)

// Generator invokes the summarizer and measures the result. It holds no
// per-request state and is safe for concurrent use.
type Generator struct {
	model summarizer.Summarizer
	now   func() time.Time
}

// NewGenerator wraps model. A nil model yields a generator that reports
// ErrModelUnavailable.
func NewGenerator(model summarizer.Summarizer) *Generator {
	return &Generator{model: model, now: time.Now}
}

// Ready reports whether a model is attached.
func (g *Generator) Ready() bool {
	return g.model != nil
}

// ModelName returns the attached model's name, or "" when none is attached.
func (g *Generator) ModelName() string {
	if g.model == nil {
		return ""
	}
	return g.model.Name()
}

// Generate produces an unsaved title for paragraph together with its timing
// and size metrics. Status and confidence are left for Classify. Bounds are
// in model tokens and are passed through unchanged.
func (g *Generator) Generate(ctx context.Context, paragraph string, maxLength, minLength int) (*domain.TitleResult, error) {
	if strings.TrimSpace(paragraph) == "" {
		return nil, ErrEmptyInput
	}
	if g.model == nil {
		return nil, ErrModelUnavailable
	}

	start := g.now()
	title, err := g.model.Summarize(ctx, paragraph, minLength, maxLength)
	elapsed := g.now().Sub(start)
	if err != nil {
		return nil, apperror.Wrap(ErrGenerationFailed, err)
	}

	return &domain.TitleResult{
		Title:            title,
		Paragraph:        paragraph,
		ProcessingTimeMs: Milliseconds(elapsed),
		CharacterCount:   utf8.RuneCountInString(paragraph),
		WordCount:        len(strings.Fields(paragraph)),
	}, nil
}

// Milliseconds converts d to milliseconds rounded to two decimals.
func Milliseconds(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
