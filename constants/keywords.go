package constants

// Static keyword and noise tables used by the field extractors. Order
// matters where noted; treat all of these as read-only. They are grouped
// here so a deployment targeting another locale can swap them in one place.

// SerialKeywords are the labels that introduce a serial/lot/certificate
// number. The extractor sorts a copy by length (longest first) so that
// "Serial No." wins over "No.".
var SerialKeywords = []string{
	"Ref No.", "Ref No", "Certificate No.", "Certificate No",
	"Serial Number", "Seri Number", "Serial No.", "Serial N0", "Serial No", "Serial",
	"Ser.Nos.", "Ser.Nos", "Ser.No.", "Ser.No", "Ser. Nos.", "Ser. Nos", "Ser Nos",
	"S/N", "S.N", "SN", "No:", "No.",
}

// ContextNouns are component names that may precede a serial value on the
// same line; the first one found annotates the value as "VALUE (Noun)".
var ContextNouns = []string{"Tube", "Anode", "Inverter", "Generator", "Tank", "Detector"}

// NoiseKeywords disqualify a candidate value when any of them occurs inside
// it (case-insensitive substring).
var NoiseKeywords = []string{
	// Address terms
	"Lane", "Street", "Ward", "District", "Hanoi", "Vietnam",
	// Quantity/measurement terms
	"pcs", "pes", "Quantity", "Invoice", "EA",
	// Common company/manufacturer names
	"MORITA", "Morita", "MFG", "CORP", "Corporation", "Company", "Ltd", "Limited",
	"Inc", "Incorporated", "Japan", "JAPAN", "USA", "China",
	// Common document terms
	"Model", "Production", "Year", "Kyoto", "Osaka", "Tokyo",
	// Common extracted noise words
	"and", "the", "with", "made", "in", "dated", "kind", "type", "ref", "certificate", "city", "date",
}

// TableSerialHeaders / TableDateHeaders mark table header cells
// (case-insensitive substring match against the cell text).
var (
	TableSerialHeaders = []string{"Serial Number", "Serial No.", "Seri Number", "Seri"}
	TableDateHeaders   = []string{"Date", "Issue Date", "Dated"}
)

// TableColumnNoise are values skipped while walking down a serial column.
var TableColumnNoise = []string{"product type", "type", "product", "power", "mac", "window"}
