package schemamap_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posyandu/internal/domain"
	"posyandu/internal/schemamap"
)

func strp(s string) *string { return &s }

func cell(row int, field, text string, conf float64, bbox domain.BBox) domain.RecognizedCell {
	return domain.RecognizedCell{
		ExtractedCell: domain.ExtractedCell{
			RowIdx:    row,
			FieldName: field,
			BBox:      bbox,
		},
		Text:       text,
		Confidence: conf,
	}
}

func TestParseField_Weights(t *testing.T) {
	assert.Equal(t, strp("8.5"), schemamap.ParseField(domain.FieldBBSekarang, "8,5"))
	assert.Equal(t, strp("12.0"), schemamap.ParseField(domain.FieldBBLalu, " 12.0 "))
	assert.Equal(t, strp("75,5 cm"), schemamap.ParseField(domain.FieldTB, "75,5 cm"))
	assert.Nil(t, schemamap.ParseField(domain.FieldBBSekarang, "   "))
}

func TestParseField_Dates(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"05/03/2022", "05/03/2022"},
		{"5-3-22", "05/03/2022"},
		{"1.12.2019", "01/12/2019"},
		{"15/06/65", "15/06/65"}, // pivots to 1965, outside the window
		{"05/03/1995", "05/03/1995"},
		{"31/02/2022", "31/02/2022"}, // not a real calendar date
		{"maret 2022", "maret 2022"},
	}
	for _, tt := range tests {
		got := schemamap.ParseField(domain.FieldTanggalLahir, tt.raw)
		require.NotNil(t, got, tt.raw)
		assert.Equal(t, tt.want, *got, tt.raw)
	}
}

func TestParseField_NormalizedDateIsIdempotent(t *testing.T) {
	first := schemamap.ParseField(domain.FieldTanggalLahir, "5/3/22")
	require.NotNil(t, first)
	second := schemamap.ParseField(domain.FieldTanggalLahir, *first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestParseField_SexSynonyms(t *testing.T) {
	for _, raw := range []string{"L", "laki", "Laki-Laki", "PRIA"} {
		assert.Equal(t, strp("L"), schemamap.ParseField(domain.FieldJenisKelamin, raw), raw)
	}
	for _, raw := range []string{"P", "perempuan", "WANITA"} {
		assert.Equal(t, strp("P"), schemamap.ParseField(domain.FieldJenisKelamin, raw), raw)
	}
	assert.Equal(t, strp("L?"), schemamap.ParseField(domain.FieldJenisKelamin, "L?"))
}

func TestParseField_TrendSynonyms(t *testing.T) {
	for _, raw := range []string{"N", "naik", "NAIK"} {
		assert.Equal(t, strp("N"), schemamap.ParseField(domain.FieldStatusNT, raw), raw)
	}
	for _, raw := range []string{"T", "tidak", "Tidak Naik"} {
		assert.Equal(t, strp("T"), schemamap.ParseField(domain.FieldStatusNT, raw), raw)
	}
	assert.Equal(t, strp("turun"), schemamap.ParseField(domain.FieldStatusNT, "turun"))
}

func TestParseField_Passthrough(t *testing.T) {
	assert.Equal(t, strp("Jl. Mawar RT 02"), schemamap.ParseField(domain.FieldAlamat, " Jl. Mawar RT 02 "))
	assert.Nil(t, schemamap.ParseField(domain.FieldAlamat, ""))
}

func TestMapRows_GroupsAndAggregates(t *testing.T) {
	cells := []domain.RecognizedCell{
		cell(2, domain.FieldNamaAnak, "Siti", 0.85, domain.BBox{X: 10, Y: 200, Width: 100, Height: 40}),
		cell(1, domain.FieldNamaAnak, "Budi", 0.85, domain.BBox{X: 10, Y: 100, Width: 100, Height: 40}),
		cell(1, domain.FieldBBSekarang, "8,5", 0.90, domain.BBox{X: 300, Y: 100, Width: 60, Height: 40}),
		cell(1, domain.FieldJenisKelamin, "laki-laki", 0.95, domain.BBox{X: 150, Y: 105, Width: 40, Height: 40}),
	}

	rows := schemamap.MapRows(cells)
	require.Len(t, rows, 2)

	// Sorted ascending by row index.
	assert.Equal(t, 1, rows[0].RowIndex)
	assert.Equal(t, 2, rows[1].RowIndex)

	first := rows[0]
	assert.Equal(t, strp("Budi"), first.Values[domain.FieldNamaAnak])
	assert.Equal(t, strp("8.5"), first.Values[domain.FieldBBSekarang])
	assert.Equal(t, strp("L"), first.Values[domain.FieldJenisKelamin])

	// Row bbox is the union of its cells' bboxes.
	assert.Equal(t, domain.BBox{X: 10, Y: 100, Width: 350, Height: 45}, first.BBox)

	// Mean over populated fields, two decimals.
	assert.Equal(t, 0.9, first.AvgConfidence)
	assert.Equal(t, 0.85, rows[1].AvgConfidence)
}

func TestMapRows_Empty(t *testing.T) {
	assert.Empty(t, schemamap.MapRows(nil))
}

func TestRenderRecords(t *testing.T) {
	docID := uuid.New()
	cells := []domain.RecognizedCell{
		cell(1, domain.FieldNamaAnak, "Budi", 0.85, domain.BBox{X: 10, Y: 100, Width: 100, Height: 40}),
		cell(1, domain.FieldTB, "75,5", 0.90, domain.BBox{X: 400, Y: 100, Width: 60, Height: 40}),
		cell(1, domain.FieldAlamat, "", 0.5, domain.BBox{X: 200, Y: 100, Width: 80, Height: 40}),
	}

	records := schemamap.RenderRecords(docID, schemamap.MapRows(cells))
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, docID, rec.DocumentID)
	assert.Equal(t, 1, rec.RowIndex)
	assert.Equal(t, strp("Budi"), rec.NamaAnak)
	require.NotNil(t, rec.NamaAnakConfidence)
	assert.Equal(t, 0.85, *rec.NamaAnakConfidence)
	assert.Equal(t, strp("75.5"), rec.TB)

	// Empty text maps to a NULL value but the confidence is still recorded.
	assert.Nil(t, rec.Alamat)
	require.NotNil(t, rec.AlamatConfidence)
	assert.Equal(t, 0.5, *rec.AlamatConfidence)

	assert.JSONEq(t, `{"x":10,"y":100,"width":450,"height":40}`, string(rec.BBox))
	assert.False(t, rec.IsReviewed)
	assert.False(t, rec.IsApproved)
}
