package titler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"paragraph-titler/internal/domain"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		paragraph      string
		wantStatus     domain.TitleStatus
		wantConfidence domain.Confidence
	}{
		{"short title ignores long paragraph", "a b", words(60), domain.TitleStatusShort, domain.ConfidenceMedium},
		{"short title on tiny paragraph", "solo", words(3), domain.TitleStatusShort, domain.ConfidenceMedium},
		{"empty title is short", "", words(20), domain.TitleStatusShort, domain.ConfidenceMedium},
		{"optimal low", "one two three four", words(5), domain.TitleStatusOptimal, domain.ConfidenceLow},
		{"optimal lower bound", "one two three", words(9), domain.TitleStatusOptimal, domain.ConfidenceLow},
		{"optimal upper bound medium", words(8), words(10), domain.TitleStatusOptimal, domain.ConfidenceMedium},
		{"medium upper bound", words(5), words(49), domain.TitleStatusOptimal, domain.ConfidenceMedium},
		{"high at fifty", words(5), words(50), domain.TitleStatusOptimal, domain.ConfidenceHigh},
		{"verbose", words(9), words(60), domain.TitleStatusVerbose, domain.ConfidenceHigh},
		{"truncated overrides", "this trails off...", words(60), domain.TitleStatusTruncated, domain.ConfidenceMedium},
		{"truncated two dots", "this trails off..", words(2), domain.TitleStatusTruncated, domain.ConfidenceMedium},
		{"truncated overrides short", "hmm...", words(60), domain.TitleStatusTruncated, domain.ConfidenceMedium},
		{"truncated overrides verbose", words(12) + "....", words(5), domain.TitleStatusTruncated, domain.ConfidenceMedium},
		{"single dot is not truncation", "A Plain Ordinary Sentence.", words(5), domain.TitleStatusOptimal, domain.ConfidenceLow},
		{"tabs and newlines split words", "one\ttwo\nthree", "a\tb c\n d", domain.TitleStatusOptimal, domain.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, confidence := Classify(tt.title, tt.paragraph)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantConfidence, confidence)
		})
	}
}
