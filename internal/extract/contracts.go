// Package extract pattern-matches issue dates and serial-number candidates
// out of certificate text and table data.
package extract

import "github.com/nvdat/cocq-tracker/constants"

// Candidate is a raw extracted serial value. Value may carry a component
// annotation ("8194 (Tube)"); Origin tags the pass that discovered it.
type Candidate struct {
	Value  string
	Origin constants.Origin
}

// Table is one extracted table: rows of cell texts.
type Table [][]string

// TableFields is the partial record a table scan produced. Zero values
// mean "not found"; a malformed table yields the zero TableFields, never
// a panic.
type TableFields struct {
	Date    string
	Serials []string
}
