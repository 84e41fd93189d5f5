package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"KO123", "K0123"},
		{"ko123", "K0123"},
		{"MORITA", "MORITA"}, // no adjacent digit, O untouched
		{"1O2", "102"},
		{"ABC-123", "ABC-123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "input %q", tt.in)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		stored string
		want   bool
	}{
		{"exact", "ABC-123", "ABC-123", true},
		{"substring of stored entry", "8194", "8194 (Tube)", true},
		{"fuzzy O-0 fold", "KO123", "K0123", true},
		{"fuzzy fold reversed", "K0123", "KO123", true},
		{"inside a stored range", "A103", "A100~A105", true},
		{"outside a stored range", "A106", "A100~A105", false},
		{"second entry of multiline cell", "XYZ-99", "ABC-123\nXYZ-99", true},
		{"range in multiline cell", "B202", "ABC-123\nB200~B205", true},
		{"no match", "ZZZ", "ABC-123", false},
		{"empty query", "", "ABC-123", false},
		{"empty stored", "ABC", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.query, tt.stored))
		})
	}
}
