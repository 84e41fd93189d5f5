package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso", "2023-10-30", "30/10/2023"},
		{"month name with comma", "January 15, 2024", "15/01/2024"},
		{"unpadded slash", "1/1/2026", "01/01/2026"},
		{"unpadded day first", "1/5/2023", "01/05/2023"},
		{"unpadded iso", "2023-1-3", "03/01/2023"},
		{"already canonical", "30/10/2023", "30/10/2023"},
		{"day first wins over month first", "12/05/2023", "12/05/2023"},
		{"dotted separators", "12.05.2023", "12/05/2023"},
		{"hyphenated dmy", "02-01-2024", "02/01/2024"},
		{"short month name", "Jan 2, 2024", "02/01/2024"},
		{"day before month name", "2 January 2026", "02/01/2026"},
		{"two digit year", "02/01/26", "02/01/2026"},
		{"whitespace trimmed", "  30/10/2023  ", "30/10/2023"},
		{"unparseable returned as-is", "not a date", "not a date"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestDateIdempotent(t *testing.T) {
	inputs := []string{
		"2023-10-30", "January 15, 2024", "1/1/2026", "12.05.2023",
		"garbage", "", "30/10/2023", "2 Jan 2024",
	}
	for _, in := range inputs {
		once := Date(in)
		assert.Equal(t, once, Date(once), "input %q", in)
	}
}
