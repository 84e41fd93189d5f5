package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for
// certificate ingestion. CO/CQ documents arrive as PDFs, sometimes as
// photos of paper certificates.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
