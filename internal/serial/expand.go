// Package serial canonicalizes serial-number tokens: shorthand numeric
// ranges are expanded into literal tokens, and an OCR-confusion fold maps
// tokens to a comparison form used by the search matcher.
package serial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxRangeDelta guards against false positives turning two unrelated
// numbers into an absurd enumeration. Measured from existing behavior;
// do not re-tune.
const maxRangeDelta = 200

var (
	hardDelim = regexp.MustCompile(`[,;]`)
	// prefix+digits: leading alphabetic prefix, trailing numeric suffix.
	prefixDigits = regexp.MustCompile(`^([A-Za-z]*)(\d+)$`)
)

// Expand flattens shorthand ranges in the given raw tokens into literal
// tokens. Tokens that are not ranges pass through unchanged; a hyphen
// joining two dissimilar long codes splits into two tokens. Order is
// preserved.
func Expand(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		for _, item := range hardDelim.Split(tok, -1) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			out = append(out, expandItem(item)...)
		}
	}
	return out
}

func expandItem(item string) []string {
	sep, start, end, ok := splitRange(item)
	if !ok {
		return []string{item}
	}

	if toks, ok := enumerate(sep, start, end); ok {
		return toks
	}

	// Not a coherent range. A tilde is assumed to be part of the
	// identifier itself; a hyphen between two long codes separates two
	// distinct serials ("SerialA - SerialB"), while short halves stay
	// joined ("Model-X").
	if sep == "-" && len(start) > 3 && len(end) > 3 {
		return []string{start, end}
	}
	return []string{item}
}

// splitRange finds the candidate range separator. "~" always qualifies;
// "-" only when it occurs exactly once or is space-padded.
func splitRange(item string) (sep, start, end string, ok bool) {
	if i := strings.Index(item, "~"); i >= 0 {
		return "~", strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:]), true
	}
	if i := strings.Index(item, " - "); i >= 0 {
		return "-", strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+3:]), true
	}
	if strings.Count(item, "-") == 1 {
		i := strings.Index(item, "-")
		return "-", strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:]), true
	}
	return "", "", "", false
}

// enumerate renders startStr..endStr inclusive when the two halves form a
// true range: compatible prefixes, end not below start, delta within
// bounds. Zero-padding follows the start bound.
func enumerate(sep, startStr, endStr string) ([]string, bool) {
	sm := prefixDigits.FindStringSubmatch(startStr)
	em := prefixDigits.FindStringSubmatch(endStr)
	if sm == nil || em == nil {
		return nil, false
	}
	startPrefix, startDigits := sm[1], sm[2]
	endPrefix, endDigits := em[1], em[2]

	start, err1 := strconv.Atoi(startDigits)
	end, err2 := strconv.Atoi(endDigits)
	if err1 != nil || err2 != nil {
		return nil, false
	}

	switch {
	case startPrefix == endPrefix:
		// identical prefixes
	case foldPrefix(startPrefix) == foldPrefix(endPrefix):
		// identical after the 0<->O confusion fold
	case endPrefix == "":
		// bare-digit end bound: a tilde is decisive, a hyphen only when
		// the numeric delta is non-negative.
		if sep != "~" && end < start {
			return nil, false
		}
	default:
		return nil, false
	}

	if end < start || end-start > maxRangeDelta {
		return nil, false
	}

	toks := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		toks = append(toks, fmt.Sprintf("%s%0*d", startPrefix, len(startDigits), n))
	}
	return toks, true
}

func foldPrefix(p string) string {
	return strings.ReplaceAll(strings.ToUpper(p), "O", "0")
}
