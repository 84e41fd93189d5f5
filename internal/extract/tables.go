package extract

import (
	"log/slog"
	"strings"

	"github.com/nvdat/cocq-tracker/constants"
)

const (
	// how far below a serial header the column scan walks
	serialScanDepth = 14
	minCellLen      = 4
)

// Tables scans structured table data for header-labeled date and serial
// columns. It returns only what it actually found and tolerates ragged or
// otherwise malformed tables; it never returns an error.
func Tables(tables []Table, logger *slog.Logger) TableFields {
	if logger == nil {
		logger = slog.Default()
	}
	var out TableFields
	for _, tbl := range tables {
		scanTable(tbl, &out)
	}
	if out.Date != "" || len(out.Serials) > 0 {
		logger.Debug("extract.tables.found", "date", out.Date, "serials", len(out.Serials))
	}
	return out
}

func scanTable(tbl Table, out *TableFields) {
	for i, row := range tbl {
		for col, cell := range row {
			cellLow := strings.ToLower(strings.TrimSpace(cell))
			if cellLow == "" {
				continue
			}
			if containsAnyFold(cellLow, constants.TableSerialHeaders) {
				out.Serials = append(out.Serials, scanColumn(tbl, i+1, col)...)
			}
			if containsAnyFold(cellLow, constants.TableDateHeaders) && out.Date == "" {
				out.Date = dateNearHeader(tbl, i, col)
			}
		}
	}
}

// scanColumn collects serial values below a header cell. An empty cell
// ends the scan; short values and column noise are skipped.
func scanColumn(tbl Table, from, col int) []string {
	var vals []string
	end := from + serialScanDepth
	if end > len(tbl) {
		end = len(tbl)
	}
	for r := from; r < end; r++ {
		if col >= len(tbl[r]) {
			continue
		}
		val := strings.TrimSpace(tbl[r][col])
		if val == "" {
			break
		}
		if len(val) < minCellLen {
			continue
		}
		if containsAnyFold(strings.ToLower(val), constants.TableColumnNoise) {
			continue
		}
		vals = append(vals, val)
	}
	return vals
}

// dateNearHeader looks one cell to the right of a date header first, then
// one row down in the same column.
func dateNearHeader(tbl Table, row, col int) string {
	r := tbl[row]
	if col+1 < len(r) {
		if v := strings.TrimSpace(r[col+1]); v != "" {
			return v
		}
	}
	if row+1 < len(tbl) && col < len(tbl[row+1]) {
		if v := strings.TrimSpace(tbl[row+1][col]); v != "" {
			return v
		}
	}
	return ""
}

func containsAnyFold(haystackLower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystackLower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
