package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvdat/cocq-tracker/constants"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"slash form in prose", "Issued on 12/05/2023 by QA", "12/05/2023", true},
		{"iso form", "Inspection date 2023-10-30 final", "30/10/2023", true},
		{"month name form", "Date: January 15, 2024", "15/01/2024", true},
		{"missing comma space repaired", "July 12,2021", "12/07/2021", true},
		{"day before month name", "Tested 2 Jan 2024", "02/01/2024", true},
		{"labeled context fallback", "Date: 12-Oct-2023", "12/10/2023", true},
		{"no date", "No date here", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.in)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func values(cs []Candidate) []string {
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}
	return out
}

func TestSerialsSameLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"labeled value", "Ref No: ABC-123", []string{"ABC-123"}},
		{"component annotation", "Tube Head Serial No.: 8194", []string{"8194 (Tube)"}},
		{"label then noise line", "Seri Number\nMac", nil},
		{"label literally followed by word number", "Serial Number: number", nil},
		{"comma list splits", "Serial No: AAAA1111, BBBB2222", []string{"AAAA1111", "BBBB2222"}},
		{"website tail stripped", "Serial No: ABCD1234 www.example.com", []string{"ABCD1234"}},
		{"short values dropped", "Serial No: AB1", nil},
		{"phone number rejected", "Ref No: 84-24-3926-1234", nil},
		{"all caps company word rejected", "Serial No: MORITA", nil},
		{"fraction rejected", "No: 12/34", nil},
		{"nothing labeled", "just ordinary text", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, values(Serials(tt.in)))
		})
	}
}

func TestSerialsColumnar(t *testing.T) {
	text := "Serial Number\nXR2024A1\nXR2024A2\n"
	got := Serials(text)
	require.Len(t, got, 2)
	assert.Equal(t, "XR2024A1", got[0].Value)
	assert.Equal(t, constants.OriginColumnar, got[0].Origin)
	assert.Equal(t, "XR2024A2", got[1].Value)
}

func TestSerialsValuedLabelSkipsColumn(t *testing.T) {
	text := "Serial No: ABCD1234\nQWERTY99\n"
	got := Serials(text)
	require.Len(t, got, 1)
	assert.Equal(t, "ABCD1234", got[0].Value)
	assert.Equal(t, constants.OriginSameLine, got[0].Origin)
}

func TestSerialsDiscardedValueStillBare(t *testing.T) {
	// the same-line capture "MORITA" is rejected as noise, so the label
	// line is still bare and its column is scanned
	text := "Serial No: MORITA\nKZ2024B7\n"
	got := Serials(text)
	require.Len(t, got, 1)
	assert.Equal(t, "KZ2024B7", got[0].Value)
	assert.Equal(t, constants.OriginColumnar, got[0].Origin)
}

func TestSerialsColumnarStopsAtTenLines(t *testing.T) {
	text := "Serial Number\na\nb\nc\nd\ne\nf\ng\nh\ni\nWAYDOWN99"
	assert.Empty(t, Serials(text))
}

func TestSerialsDedup(t *testing.T) {
	text := "Serial No: ABCD1234\nRef No: ABCD1234"
	got := Serials(text)
	require.Len(t, got, 1)
	assert.Equal(t, "ABCD1234", got[0].Value)
	assert.Equal(t, constants.OriginSameLine, got[0].Origin)
}
