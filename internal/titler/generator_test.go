package titler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paragraph-titler/internal/apperror"
)

type fakeSummarizer struct {
	title string
	err   error
	calls int
	min   int
	max   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, minLength, maxLength int) (string, error) {
	f.calls++
	f.min, f.max = minLength, maxLength
	return f.title, f.err
}

func (f *fakeSummarizer) Name() string { return "fake" }

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

func TestGenerate(t *testing.T) {
	model := &fakeSummarizer{title: "Rivers Shape Trade"}
	gen := NewGenerator(model)
	gen.now = steppingClock(time.Unix(0, 0), 1234567*time.Nanosecond)

	paragraph := "Rivers  carried goods\tfor centuries, café owners said."
	res, err := gen.Generate(context.Background(), paragraph, 15, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, 5, model.min)
	assert.Equal(t, 15, model.max)
	assert.Equal(t, "Rivers Shape Trade", res.Title)
	assert.Equal(t, paragraph, res.Paragraph)
	assert.Equal(t, 1.23, res.ProcessingTimeMs)
	assert.Equal(t, 54, res.CharacterCount)
	assert.Equal(t, 8, res.WordCount)
	assert.Empty(t, res.Status)
	assert.Empty(t, res.Confidence)
	assert.Nil(t, res.ID)
	assert.Nil(t, res.CreatedAt)
}

func TestGenerateEmptyInput(t *testing.T) {
	model := &fakeSummarizer{title: "never"}
	gen := NewGenerator(model)

	for _, p := range []string{"", "   ", "\n\t"} {
		_, err := gen.Generate(context.Background(), p, 15, 5)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
	assert.Zero(t, model.calls)
}

func TestGenerateModelFailure(t *testing.T) {
	cause := errors.New("CUDA out of memory")
	gen := NewGenerator(&fakeSummarizer{err: cause})

	_, err := gen.Generate(context.Background(), "some text", 15, 5)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CUDA out of memory")
	assert.Equal(t, apperror.KindDependency, apperror.KindOf(err))
}

func TestGenerateWithoutModel(t *testing.T) {
	gen := NewGenerator(nil)
	assert.False(t, gen.Ready())
	assert.Empty(t, gen.ModelName())

	_, err := gen.Generate(context.Background(), "some text", 15, 5)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = gen.Generate(context.Background(), " ", 15, 5)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMilliseconds(t *testing.T) {
	assert.Equal(t, 0.0, Milliseconds(0))
	assert.Equal(t, 1.5, Milliseconds(1500*time.Microsecond))
	assert.Equal(t, 2.35, Milliseconds(2345678*time.Nanosecond))
	assert.Equal(t, 1000.0, Milliseconds(time.Second))
}
