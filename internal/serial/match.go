package serial

import (
	"regexp"
	"strings"
)

var itemDelim = regexp.MustCompile(`[\n,;]`)

// Fold maps a token to its OCR-comparison form: uppercased, with the
// letter O folded to the digit 0 wherever a digit is adjacent (covers the
// common KO/K0 prefix confusion). Used only for matching, never stored.
func Fold(s string) string {
	b := []byte(strings.ToUpper(s))
	for i := range b {
		if b[i] != 'O' {
			continue
		}
		prevDigit := i > 0 && isDigit(b[i-1])
		nextDigit := i+1 < len(b) && isDigit(b[i+1])
		if prevDigit || nextDigit {
			b[i] = '0'
		}
	}
	return string(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Matches reports whether the query serial occurs in a stored cell value.
// The stored value may hold several newline/comma/semicolon-separated
// entries and embedded shorthand ranges; the query matches if it is
// contained in any expanded entry, literally or under the OCR fold. When
// the stored value holds no range shorthand, expansion is skipped and
// plain containment (literal or folded) decides.
func Matches(query, stored string) bool {
	query = strings.TrimSpace(query)
	if query == "" || stored == "" {
		return false
	}
	qFold := Fold(query)

	// Fast path: no range shorthand anywhere, substring containment on
	// the whole cell is enough.
	if !strings.Contains(stored, "~") {
		return strings.Contains(stored, query) || strings.Contains(Fold(stored), qFold)
	}

	for _, item := range Expand(itemDelim.Split(stored, -1)) {
		if strings.Contains(item, query) || strings.Contains(Fold(item), qFold) {
			return true
		}
	}
	return false
}
