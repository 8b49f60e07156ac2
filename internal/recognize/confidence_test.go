package recognize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"posyandu/internal/domain"
	"posyandu/internal/recognize"
)

func TestConfidence_EmptyText(t *testing.T) {
	// No hint to contradict an empty reading: lenient.
	assert.Equal(t, 0.5, recognize.Confidence("", domain.FieldNamaAnak, ""))
	// A hint exists but the model read nothing: suspicious.
	assert.Equal(t, 0.3, recognize.Confidence("", domain.FieldNamaAnak, "Budi"))
}

func TestConfidence_WeightFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"comma decimal in range", "8,5", 0.90},
		{"dot decimal in range", "12.0", 0.90},
		{"integer in range", "9", 0.90},
		{"non-numeric", "abc", 0.40},
		{"out of range high", "45.0", 0.40},
		{"out of range low", "0.5", 0.40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recognize.Confidence(tt.text, domain.FieldBBSekarang, ""))
			assert.Equal(t, tt.want, recognize.Confidence(tt.text, domain.FieldBBLalu, ""))
		})
	}
}

func TestConfidence_HeightField(t *testing.T) {
	assert.Equal(t, 0.90, recognize.Confidence("75.5", domain.FieldTB, ""))
	assert.Equal(t, 0.90, recognize.Confidence("100,0", domain.FieldTB, ""))
	assert.Equal(t, 0.40, recognize.Confidence("20", domain.FieldTB, ""))
	assert.Equal(t, 0.40, recognize.Confidence("tinggi", domain.FieldTB, ""))
}

func TestConfidence_SexField(t *testing.T) {
	assert.Equal(t, 0.95, recognize.Confidence("L", domain.FieldJenisKelamin, ""))
	assert.Equal(t, 0.95, recognize.Confidence("laki-laki", domain.FieldJenisKelamin, ""))
	assert.Equal(t, 0.95, recognize.Confidence("PEREMPUAN", domain.FieldJenisKelamin, ""))
	assert.Equal(t, 0.30, recognize.Confidence("?", domain.FieldJenisKelamin, ""))
}

func TestConfidence_TrendField(t *testing.T) {
	assert.Equal(t, 0.95, recognize.Confidence("N", domain.FieldStatusNT, ""))
	assert.Equal(t, 0.95, recognize.Confidence("tidak naik", domain.FieldStatusNT, ""))
	assert.Equal(t, 0.35, recognize.Confidence("turun?", domain.FieldStatusNT, ""))
}

func TestConfidence_BirthDateField(t *testing.T) {
	assert.Equal(t, 0.88, recognize.Confidence("05/03/2022", domain.FieldTanggalLahir, ""))
	assert.Equal(t, 0.88, recognize.Confidence("5-3-22", domain.FieldTanggalLahir, ""))
	assert.Equal(t, 0.88, recognize.Confidence("1.12.2019", domain.FieldTanggalLahir, ""))
	assert.Equal(t, 0.45, recognize.Confidence("maret 2022", domain.FieldTanggalLahir, ""))
}

func TestConfidence_AgeField(t *testing.T) {
	assert.Equal(t, 0.85, recognize.Confidence("24 bln", domain.FieldUmur, ""))
	assert.Equal(t, 0.85, recognize.Confidence("2 th 3 bln", domain.FieldUmur, ""))
	assert.Equal(t, 0.45, recognize.Confidence("dua tahun", domain.FieldUmur, ""))
}

func TestConfidence_NameField(t *testing.T) {
	assert.Equal(t, 0.85, recognize.Confidence("Budi Santoso", domain.FieldNamaAnak, ""))
	// Mostly non-alphabetic stays at the non-empty base.
	assert.Equal(t, 0.75, recognize.Confidence("123-456", domain.FieldNamaAnak, ""))
}

func TestConfidence_PassthroughField(t *testing.T) {
	assert.Equal(t, 0.75, recognize.Confidence("Jl. Mawar RT 02", domain.FieldAlamat, ""))
}

func TestConfidence_HintAgreementBoost(t *testing.T) {
	// Exact match after trimming and case folding adds 0.10.
	assert.Equal(t, 1.0, recognize.Confidence("8.5", domain.FieldBBSekarang, " 8.5 "))
	assert.Equal(t, 0.85, recognize.Confidence("Jl. Mawar", domain.FieldAlamat, "jl. mawar"))
	// Capped at 1.0.
	assert.Equal(t, 1.0, recognize.Confidence("L", domain.FieldJenisKelamin, "l"))
	// Disagreement adds nothing.
	assert.Equal(t, 0.90, recognize.Confidence("8.5", domain.FieldBBSekarang, "9.5"))
}

func TestConfidence_AlwaysInRange(t *testing.T) {
	samples := []struct{ text, field, hint string }{
		{"", domain.FieldNamaAnak, ""},
		{"", domain.FieldNamaAnak, "x"},
		{"8,5", domain.FieldBBLalu, "8,5"},
		{"L", domain.FieldJenisKelamin, "L"},
		{"anything at all", domain.FieldAlamat, "anything at all"},
	}
	for _, s := range samples {
		got := recognize.Confidence(s.text, s.field, s.hint)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}
