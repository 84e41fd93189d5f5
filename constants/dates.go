package constants

// DateFormat is the canonical form every date is normalized to.
const DateFormat = "02/01/2006" // DD/MM/YYYY

// DateLayouts is the ordered list of layouts the normalizer tries.
// Day-first layouts come before month-first so DD/MM/YYYY vs MM/DD/YYYY
// ambiguity resolves day-first. Numeric layouts are unpadded: time.Parse
// then accepts both "1/1/2026" and "01/01/2026", and the canonical
// output still matches the first layout, keeping normalization
// idempotent.
var DateLayouts = []string{
	"2/1/2006", // preferred D/M/YYYY
	"1/2/2006", // M/D/YYYY
	"2006-1-2",
	"2-1-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2/1/06",
	"2006/1/2", // common after dot normalization
	"2-Jan-2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2-January-2006",
}
