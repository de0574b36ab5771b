// Package summarizer talks to the external text model that turns a paragraph
// into a short title.
package summarizer

import "context"

// Summarizer produces a summary of text whose length, measured in model
// tokens, falls between minLength and maxLength. Implementations must decode
// deterministically so identical input and bounds reproduce identical output.
type Summarizer interface {
	Summarize(ctx context.Context, text string, minLength, maxLength int) (string, error)
	// Name identifies the underlying model for health reporting.
	Name() string
}
