package keywords

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxWords is the longest keyword (in words) the API accepts.
const DefaultMaxWords = 10

// Normalize cleans and filters a raw keyword list. Rules are applied per
// keyword in order, first match wins: empty after trimming, empty after
// stripping invalid characters, too many words, duplicate of an already
// accepted keyword (when dedupe is on). The word count runs on the cleaned
// string, so punctuation never hides extra words.
func Normalize(raw []string, maxWords int, dedupe bool) Report {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	var report Report
	seen := make(map[string]struct{}, len(raw))

	for _, original := range raw {
		trimmed := strings.TrimSpace(original)
		if trimmed == "" {
			report.Skipped = append(report.Skipped, Skipped{Original: original, Reason: "Empty keyword"})
			continue
		}

		cleaned := Clean(trimmed)
		// A lone leftover character is stripped-punctuation residue, not a keyword.
		if utf8.RuneCountInString(cleaned) < 2 {
			report.Skipped = append(report.Skipped, Skipped{Original: original, Reason: "Only invalid characters"})
			continue
		}

		words := len(strings.Fields(cleaned))
		if words > maxWords {
			report.Skipped = append(report.Skipped, Skipped{
				Original: original,
				Reason:   fmt.Sprintf("Too many words (%d words, max %d)", words, maxWords),
			})
			continue
		}

		if dedupe {
			key := strings.ToLower(cleaned)
			if _, ok := seen[key]; ok {
				report.Duplicates = append(report.Duplicates, Duplicate{Original: original, Reason: "Duplicate keyword"})
				continue
			}
			seen[key] = struct{}{}
		}

		report.Accepted = append(report.Accepted, Accepted{
			Original: original,
			Cleaned:  cleaned,
			Modified: !strings.EqualFold(cleaned, trimmed),
		})
	}

	return report
}

// Clean strips every character that is not a letter, digit, whitespace,
// hyphen or underscore, then collapses whitespace runs into single spaces
// and trims the ends. Cleaning an already clean string is a no-op.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
