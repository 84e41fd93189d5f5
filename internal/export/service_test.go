package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nvdat/cocq-tracker/internal/repository"
)

type stubRepo struct {
	recs []repository.Record
}

func (s *stubRepo) Upsert(context.Context, *repository.Record) error { return nil }
func (s *stubRepo) List(context.Context) ([]repository.Record, error) {
	return s.recs, nil
}
func (s *stubRepo) Search(context.Context, string, string) ([]repository.Record, error) {
	return s.recs, nil
}

func TestExportXLSX(t *testing.T) {
	repo := &stubRepo{recs: []repository.Record{
		{
			FileName:     "cert-a.pdf",
			Date:         "30/10/2023",
			SerialNumber: "A100~A105",
			Method:       "Regex",
			DriveLink:    "/data/cert-a.pdf",
		},
		{
			FileName:  "cert-b.pdf",
			Method:    "OCR (Tesseract) (Failed)",
			DriveLink: "/data/cert-b.pdf",
		},
	}}

	data, err := NewService(repo, nil).ExportXLSX(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Certificates")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"cert-a.pdf", "30/10/2023", "A100~A105", "Regex", "/data/cert-a.pdf"}, rows[1])
	assert.Equal(t, "cert-b.pdf", rows[2][0])
	assert.Equal(t, "OCR (Tesseract) (Failed)", rows[2][3])
}

func TestExportXLSXEmpty(t *testing.T) {
	data, err := NewService(&stubRepo{}, nil).ExportXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Certificates")
	require.NoError(t, err)
	require.Len(t, rows, 1, "just the header row")
}
