// Package normalize canonicalizes free-form date strings to DD/MM/YYYY.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/nvdat/cocq-tracker/constants"
)

// looseSep folds dot/space/hyphen separators to "/" for the retry pass,
// e.g. "1.1.2026" or "01 01 2026" -> "1/1/2026".
var looseSep = regexp.MustCompile(`[.\s\-]`)

// Date standardizes a date string to DD/MM/YYYY. Layouts are tried in
// priority order (day-first before month-first). If none match, the
// separators are folded to "/" and the layout list is retried exactly
// once. Normalization is best-effort: an input that still does not match
// is returned trimmed but otherwise unchanged, never an error.
//
// Date is idempotent: the canonical form matches the first layout, so
// Date(Date(x)) == Date(x) for every x.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if out, ok := tryLayouts(s); ok {
		return out
	}
	// Single bounded retry on the separator-folded string. No recursion:
	// a second fold would be a no-op anyway.
	if cleaned := looseSep.ReplaceAllString(s, "/"); cleaned != s {
		if out, ok := tryLayouts(cleaned); ok {
			return out
		}
	}
	return s
}

func tryLayouts(s string) (string, bool) {
	for _, layout := range constants.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(constants.DateFormat), true
		}
	}
	return "", false
}
