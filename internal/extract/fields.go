package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/nvdat/cocq-tracker/constants"
	"github.com/nvdat/cocq-tracker/internal/normalize"
)

// Stand-alone date shapes, tried in order. Numeric slash form first so
// "12/05/2023" never falls through to the looser context pattern.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{4}-\d{2}-\d{2}\b`),
	// dots and spaces: 12.05.2023, 2023.05.12, 12 05 2023
	regexp.MustCompile(`(?i)\b\d{1,2}[. ]\d{1,2}[. ]\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{4}[. ]\d{1,2}[. ]\d{1,2}\b`),
	// month-name forms, relaxed spacing around the comma
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},?\s*\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2} (?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{4}\b`),
}

var (
	commaSpace = regexp.MustCompile(`,(\d)`)
	// labeled-context fallback: "Date: 12 Oct 2023" even if slightly malformed
	dateContext = regexp.MustCompile(`(?i)(?:Date|Dated|Issue Date)[:.\s]*([A-Za-z0-9/.\-, ]{8,20})`)
	straySymbol = regexp.MustCompile(`[^\w/.\-, ]`)
	anyDigit    = regexp.MustCompile(`\d`)
)

// Date finds and normalizes the first date-like string in text. The bool
// is false when no pattern matched; that is a non-result, not an error.
func Date(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			// repair missing space after comma (July 12,2021 -> July 12, 2021)
			m = commaSpace.ReplaceAllString(m, ", $1")
			return normalize.Date(m), true
		}
	}
	if m := dateContext.FindStringSubmatch(text); m != nil {
		candidate := straySymbol.ReplaceAllString(strings.TrimSpace(m[1]), "")
		normalized := normalize.Date(candidate)
		// only accept if it still looks like a date at all
		if anyDigit.MatchString(normalized) {
			return normalized, true
		}
	}
	return "", false
}

func keywordAlternation() string {
	ks := append([]string(nil), constants.SerialKeywords...)
	// longest first so "Serial No." wins over "No."
	sort.SliceStable(ks, func(i, j int) bool { return len(ks[i]) > len(ks[j]) })
	esc := make([]string, len(ks))
	for i, k := range ks {
		esc[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(esc, "|")
}

var (
	// label, a mandatory non-alphanumeric separator run, then a value of
	// alphanumerics with interior delimiters. The separator run stands in
	// for a "no alphanumeric directly after the label" guard: values start
	// alphanumeric, and both dotted and undotted label variants exist.
	sameLineSerial = regexp.MustCompile(`(?i)\b(` + keywordAlternation() + `)[:.\t \-]+([A-Za-z0-9]+(?:\s*[-~/._,]\s*[A-Za-z0-9]+)*)`)
	labelOnly      = regexp.MustCompile(`(?i)\b(` + keywordAlternation() + `)\b`)
	// columnar values: uppercase-alphanumeric, length >= 5, same interior
	// delimiter grammar minus the comma so comma lists stay distinct.
	columnToken = regexp.MustCompile(`\b([A-Z0-9]{5,}(?:\s*[-~/._]\s*[A-Za-z0-9]+)*)\b`)

	valueSplit    = regexp.MustCompile(`[,;\n]|\s{2,}`)
	trailingJunk  = regexp.MustCompile(`[.\s]+$`)
	wwwTail       = regexp.MustCompile(`(?i)\s+www\b.*$`)
	httpTail      = regexp.MustCompile(`(?i)\s+http.*$`)
	bareWWWSuffix = regexp.MustCompile(`(?i)\s+www$`)

	fractionPair = regexp.MustCompile(`^\d+/\d+ - \d+/\d+$`)
	fraction     = regexp.MustCompile(`^\d+/\d+$`)
	shortDocID   = regexp.MustCompile(`^[A-Z]{2,4}\d{1,3}$`)
	allCapsWord  = regexp.MustCompile(`^[A-Z]{3,}$`)
	phoneShape   = regexp.MustCompile(`^\+?\d{1,3}[\s\-.]?\(?\d{1,4}\)?[\s\-.]?\d{3,4}[\s\-.]?\d{3,4}$`)

	nounPatterns = compileNounPatterns()
)

func compileNounPatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(constants.ContextNouns))
	for i, n := range constants.ContextNouns {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(n) + `\b`)
	}
	return res
}

// isNoise classifies values that look like addresses, company names,
// fractions, document IDs, phone numbers or URLs rather than serials.
func isNoise(val string) bool {
	low := strings.ToLower(val)
	for _, nk := range constants.NoiseKeywords {
		if strings.Contains(low, strings.ToLower(nk)) {
			return true
		}
	}
	if fractionPair.MatchString(val) || fraction.MatchString(val) {
		return true
	}
	// short reference codes like ANH25, CO25, CQ25 (likely document IDs)
	if shortDocID.MatchString(val) {
		return true
	}
	// all-caps single words (likely company names/logos)
	if allCapsWord.MatchString(val) {
		return true
	}
	if phoneShape.MatchString(val) {
		return true
	}
	if strings.Contains(low, "www.") || strings.Contains(low, ".com") || strings.Contains(low, ".co.jp") {
		return true
	}
	return false
}

// Serials extracts serial-number candidates from text in two passes: a
// same-line pass (label followed by a value) and a columnar pass (values
// stacked below a bare label). Candidates carry their component annotation
// and discovery origin; exact duplicates are removed, order is discovery
// order.
func Serials(text string) []Candidate {
	if text == "" {
		return nil
	}
	var results []Candidate
	seen := make(map[string]struct{})

	add := func(val string, origin constants.Origin) {
		if _, dup := seen[val]; dup {
			return
		}
		seen[val] = struct{}{}
		results = append(results, Candidate{Value: val, Origin: origin})
	}

	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1
	}
	lineOf := func(pos int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > pos }) - 1
	}
	// lines whose same-line match produced an acceptable value
	valued := make(map[int]bool)

	// First pass: same-line matches.
	for _, m := range sameLineSerial.FindAllStringSubmatchIndex(text, -1) {
		raw := strings.TrimSpace(text[m[4]:m[5]])
		if strings.EqualFold(raw, "number") {
			continue
		}
		// drop attached website suffixes ("SERIAL123 www...")
		raw = wwwTail.ReplaceAllString(raw, "")
		raw = httpTail.ReplaceAllString(raw, "")

		for _, val := range valueSplit.Split(raw, -1) {
			val = strings.TrimSpace(val)
			if val == "" || len(val) < 4 {
				continue
			}
			val = trailingJunk.ReplaceAllString(val, "")
			val = bareWWWSuffix.ReplaceAllString(val, "")
			if isNoise(val) {
				continue
			}
			valued[lineOf(m[0])] = true
			if noun := precedingNoun(text, m[0]); noun != "" {
				val = val + " (" + noun + ")"
			}
			add(val, constants.OriginSameLine)
		}
	}

	// Second pass: columnar scan below bare labels. A label counts as bare
	// when the same-line pass accepted nothing from it, so a header like
	// "Serial Number" (whose captured value "Number" is discarded) still
	// gets its column scanned.
	for i, line := range lines {
		if valued[i] || !labelOnly.MatchString(line) {
			continue
		}
		end := i + 10
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			for _, tok := range columnToken.FindAllString(lines[j], -1) {
				val := bareWWWSuffix.ReplaceAllString(strings.TrimSpace(tok), "")
				if isNoise(val) {
					continue
				}
				add(val, constants.OriginColumnar)
			}
		}
	}

	return results
}

// precedingNoun returns the component noun closest before the match on the
// same line, looking back at most 30 characters.
func precedingNoun(text string, start int) string {
	from := start - 30
	if from < 0 {
		from = 0
	}
	preceding := text[from:start]
	if nl := strings.LastIndex(preceding, "\n"); nl != -1 {
		preceding = preceding[nl+1:]
	}
	for i, re := range nounPatterns {
		if re.MatchString(preceding) {
			return constants.ContextNouns[i]
		}
	}
	return ""
}
