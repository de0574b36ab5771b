package titler

import (
	"strings"

	"paragraph-titler/internal/domain"
)

// Classify labels a generated title. The rules apply in order:
//
//   - fewer than 3 title words: short with medium confidence, and the
//     paragraph length no longer affects confidence;
//   - 3 to 8 words: optimal; more than 8: verbose;
//   - otherwise confidence follows the paragraph length: under 10 words low,
//     under 50 medium, else high;
//   - a title ending in two or more dots is truncated with medium confidence,
//     regardless of everything above.
func Classify(title, paragraph string) (domain.TitleStatus, domain.Confidence) {
	titleWords := len(strings.Fields(title))
	paragraphWords := len(strings.Fields(paragraph))

	var (
		status     domain.TitleStatus
		confidence domain.Confidence
	)
	switch {
	case titleWords < 3:
		status, confidence = domain.TitleStatusShort, domain.ConfidenceMedium
	default:
		if titleWords <= 8 {
			status = domain.TitleStatusOptimal
		} else {
			status = domain.TitleStatusVerbose
		}
		switch {
		case paragraphWords < 10:
			confidence = domain.ConfidenceLow
		case paragraphWords < 50:
			confidence = domain.ConfidenceMedium
		default:
			confidence = domain.ConfidenceHigh
		}
	}

	if isTruncated(title) {
		status, confidence = domain.TitleStatusTruncated, domain.ConfidenceMedium
	}
	return status, confidence
}

func isTruncated(title string) bool {
	return strings.HasSuffix(title, "..")
}
