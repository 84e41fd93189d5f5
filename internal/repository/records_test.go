package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) RecordRepository {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{DSN: filepath.Join(t.TempDir(), "records.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRecordRepository(db, nil)
}

func TestUpsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName:     "b.pdf",
		Date:         "30/10/2023",
		SerialNumber: "ABCD1234",
		Method:       "Regex",
	}))
	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName: "a.pdf",
		Method:   "OCR (Tesseract) (Failed)",
	}))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a.pdf", recs[0].FileName, "ordered by file name")
	assert.Equal(t, "b.pdf", recs[1].FileName)
	assert.Equal(t, "ABCD1234", recs[1].SerialNumber)
	assert.False(t, recs[1].CreatedAt.IsZero())
}

func TestUpsertOverwritesByFileName(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName: "cert.pdf",
		Method:   "OCR (Tesseract) (Failed)",
	}))
	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName:     "cert.pdf",
		Date:         "12/05/2023",
		SerialNumber: "WXYZ9876",
		Method:       "Regex + OCR",
	}))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1, "reprocessing must not duplicate")
	assert.Equal(t, "12/05/2023", recs[0].Date)
	assert.Equal(t, "Regex + OCR", recs[0].Method)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName:     "range.pdf",
		Date:         "30/10/2023",
		SerialNumber: "A100~A105",
		Method:       "Regex",
	}))
	require.NoError(t, repo.Upsert(ctx, &Record{
		FileName:     "fuzzy.pdf",
		Date:         "12/05/2023",
		SerialNumber: "K0123 (Tube)",
		Method:       "Regex",
	}))

	// serial inside a stored range
	recs, err := repo.Search(ctx, "A103", "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "range.pdf", recs[0].FileName)

	// O/0 confusion on the query side
	recs, err = repo.Search(ctx, "KO123", "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fuzzy.pdf", recs[0].FileName)

	// date query in a non-canonical spelling
	recs, err = repo.Search(ctx, "", "2023-10-30")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "range.pdf", recs[0].FileName)

	// both filters must hold
	recs, err = repo.Search(ctx, "A103", "12/05/2023")
	require.NoError(t, err)
	assert.Empty(t, recs)

	// no filter terms, no hits
	recs, err = repo.Search(ctx, "ZZZ", "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
