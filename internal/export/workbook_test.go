package export_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"posyandu/internal/domain"
	"posyandu/internal/export"
)

func strp(s string) *string     { return &s }
func floatp(v float64) *float64 { return &v }

func TestWriteWorkbook(t *testing.T) {
	records := []domain.ExtractedRowRecord{
		{
			DocumentID:           uuid.New(),
			RowIndex:             1,
			NamaAnak:             strp("Budi"),
			NamaAnakConfidence:   floatp(0.85),
			BBSekarang:           strp("8.5"),
			BBSekarangConfidence: floatp(1.0),
			IsReviewed:           true,
		},
		{
			DocumentID: uuid.New(),
			RowIndex:   2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Extracted Rows"}, f.GetSheetList())

	get := func(cell string) string {
		v, err := f.GetCellValue("Extracted Rows", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Row", get("A1"))
	assert.Equal(t, "Nama Anak", get("B1"))
	assert.Equal(t, "Nama Anak (Confidence)", get("C1"))
	assert.Equal(t, "BB Sekarang (kg)", get("P1"))
	assert.Equal(t, "Reviewed", get("V1"))
	assert.Equal(t, "Approved", get("W1"))

	assert.Equal(t, "1", get("A2"))
	assert.Equal(t, "Budi", get("B2"))
	assert.Equal(t, "0.85", get("C2"))
	assert.Equal(t, "8.5", get("P2"))
	assert.Equal(t, "1", get("Q2"))
	assert.Equal(t, "TRUE", get("V2"))
	assert.Equal(t, "FALSE", get("W2"))

	// Sparse record still lands on its own line with empty fields.
	assert.Equal(t, "2", get("A3"))
	assert.Equal(t, "", get("B3"))
}

func TestWriteWorkbook_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Extracted Rows", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Row", v)
}
