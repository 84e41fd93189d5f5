package constants

// Method records which extraction stage(s) produced the final record.
// Purely informational; it never affects correctness.
type Method string

// Stable values (store these exact strings).
const (
	MethodRegex     Method = "Regex"                    // digital text / table stages only
	MethodRegexOCR  Method = "Regex + OCR"              // digital data supplemented by OCR
	MethodOCR       Method = "OCR (Tesseract)"          // OCR was the only productive stage
	MethodOCRFailed Method = "OCR (Tesseract) (Failed)" // OCR escalated but text extraction failed
	MethodAI        Method = "AI"                       // last-resort AI fallback supplied the fields
)

// Origin tags a raw candidate with the pass that discovered it.
type Origin string

const (
	OriginSameLine Origin = "regex-sameline"
	OriginColumnar Origin = "regex-columnar"
	OriginTable    Origin = "table"
	OriginOCR      Origin = "ocr"
	OriginAI       Origin = "ai"
)
