package recognize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"posyandu/internal/domain"
)

var datePattern = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`)
var digitPattern = regexp.MustCompile(`\d`)

var sexValues = map[string]bool{
	"L": true, "P": true, "LAKI-LAKI": true, "PEREMPUAN": true,
}

var trendValues = map[string]bool{
	"N": true, "T": true, "NAIK": true, "TIDAK": true, "TIDAK NAIK": true,
}

// Confidence estimates how much to trust a recognized reading. It is a pure
// function of the text, the field it belongs to, and the detector's text
// hint, combining per-field type validation with hint agreement. The result
// is rounded to two decimals and always within [0, 1].
func Confidence(text, fieldName, hint string) float64 {
	if text == "" {
		// An empty reading is plausible for a blank cell. With no hint to
		// contradict it, score it more leniently.
		if hint == "" {
			return 0.5
		}
		return 0.3
	}

	base := 0.75

	switch fieldName {
	case domain.FieldBBLalu, domain.FieldBBSekarang:
		base = numericRangeScore(text, 1.0, 30.0)

	case domain.FieldTB:
		base = numericRangeScore(text, 30.0, 130.0)

	case domain.FieldJenisKelamin:
		if sexValues[strings.ToUpper(text)] {
			base = 0.95
		} else {
			base = 0.30
		}

	case domain.FieldTanggalLahir:
		if datePattern.MatchString(text) {
			base = 0.88
		} else {
			base = 0.45
		}

	case domain.FieldStatusNT:
		if trendValues[strings.ToUpper(text)] {
			base = 0.95
		} else {
			base = 0.35
		}

	case domain.FieldUmur:
		if digitPattern.MatchString(text) {
			base = 0.85
		} else {
			base = 0.45
		}

	case domain.FieldNamaAnak:
		if alphaRatio(text) > 0.7 {
			base = 0.85
		}
	}

	// Agreement with the detector's hint corroborates the reading.
	if hint != "" && strings.EqualFold(strings.TrimSpace(hint), strings.TrimSpace(text)) {
		base = math.Min(base+0.10, 1.0)
	}

	return math.Round(base*100) / 100
}

// numericRangeScore validates a measurement field: comma decimal separators
// are normalized, and a value within the plausible physical range scores
// high while anything unparseable or out of range scores low.
func numericRangeScore(text string, lo, hi float64) float64 {
	cleaned := strings.ReplaceAll(text, ",", ".")
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < lo || val > hi {
		return 0.40
	}
	return 0.90
}

func alphaRatio(text string) float64 {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters) / math.Max(float64(len([]rune(text))), 1)
}
