package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesSerialColumn(t *testing.T) {
	tbl := Table{
		{"Product", "Serial No"},
		{"Widget", "SN-1"},
		{"Widget", "SN-2"},
		{"Widget", "SN-3"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, []string{"SN-1", "SN-2", "SN-3"}, got.Serials)
	assert.Empty(t, got.Date)
}

func TestTablesEmptyCellEndsScan(t *testing.T) {
	tbl := Table{
		{"Serial Number"},
		{"SN-1"},
		{""},
		{"SN-3"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, []string{"SN-1"}, got.Serials)
}

func TestTablesColumnNoiseSkipped(t *testing.T) {
	tbl := Table{
		{"Serial No"},
		{"Product Type"},
		{"SN-7742"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, []string{"SN-7742"}, got.Serials)
}

func TestTablesShortValuesSkipped(t *testing.T) {
	tbl := Table{
		{"Serial No"},
		{"ab"},
		{"SN-1"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, []string{"SN-1"}, got.Serials)
}

func TestTablesDateRightOfHeader(t *testing.T) {
	tbl := Table{
		{"Issue Date", "30/10/2023"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, "30/10/2023", got.Date)
}

func TestTablesDateBelowHeader(t *testing.T) {
	tbl := Table{
		{"Date"},
		{"30/10/2023"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, "30/10/2023", got.Date)
}

func TestTablesRaggedRowsTolerated(t *testing.T) {
	tbl := Table{
		{"X", "Serial No"},
		{"only one cell"},
		{"Widget", "SN-9"},
	}
	got := Tables([]Table{tbl}, nil)
	assert.Equal(t, []string{"SN-9"}, got.Serials)
}

func TestTablesNothingFound(t *testing.T) {
	got := Tables([]Table{{{"a", "b"}, {"c", "d"}}}, nil)
	assert.Empty(t, got.Serials)
	assert.Empty(t, got.Date)
}
