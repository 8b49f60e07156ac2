// Package schemamap turns recognized cells into register rows: per-field
// parsing and normalization, row-level bbox and confidence aggregation, and
// rendering into the shape of the structured-row store.
package schemamap

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"posyandu/internal/domain"
)

// MapRows groups recognized cells by row index and assembles one Row per
// distinct non-header row, sorted ascending. Parse mismatches never discard
// data: the raw text is kept for the reviewer and only the confidence says
// how much to trust it.
func MapRows(cells []domain.RecognizedCell) []domain.Row {
	byRow := make(map[int]*domain.Row)

	for _, cell := range cells {
		row, ok := byRow[cell.RowIdx]
		if !ok {
			row = &domain.Row{
				RowIndex:    cell.RowIdx,
				Values:      make(map[string]*string),
				Confidences: make(map[string]float64),
				BBox:        cell.BBox,
			}
			byRow[cell.RowIdx] = row
		} else {
			row.BBox = row.BBox.Union(cell.BBox)
		}

		row.Values[cell.FieldName] = ParseField(cell.FieldName, cell.Text)
		row.Confidences[cell.FieldName] = cell.Confidence
	}

	rows := make([]domain.Row, 0, len(byRow))
	for _, row := range byRow {
		row.AvgConfidence = averageConfidence(row.Confidences)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RowIndex < rows[j].RowIndex })
	return rows
}

func averageConfidence(confs map[string]float64) float64 {
	if len(confs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, c := range confs {
		sum += c
	}
	return math.Round(sum/float64(len(confs))*100) / 100
}

// ParseField normalizes raw recognized text for one field. It returns nil
// for text that is empty after trimming; otherwise a normalized value, or
// the original text unchanged when normalization does not apply.
func ParseField(fieldName, raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch fieldName {
	case domain.FieldBBLalu, domain.FieldBBSekarang, domain.FieldTB:
		cleaned := strings.ReplaceAll(raw, ",", ".")
		if _, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return &cleaned
		}
		return &raw

	case domain.FieldTanggalLahir:
		if parsed := parseDate(raw); parsed != "" {
			return &parsed
		}
		return &raw

	case domain.FieldJenisKelamin:
		switch strings.ToUpper(raw) {
		case "L", "LAKI", "LAKI-LAKI", "PRIA":
			v := "L"
			return &v
		case "P", "PEREMPUAN", "WANITA":
			v := "P"
			return &v
		}
		return &raw

	case domain.FieldStatusNT:
		switch strings.ToUpper(raw) {
		case "N", "NAIK":
			v := "N"
			return &v
		case "T", "TIDAK", "TIDAK NAIK":
			v := "T"
			return &v
		}
		return &raw
	}

	return &raw
}

var dateRe = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})`)

// parseDate normalizes D[/.-]M[/.-]Y forms to zero-padded DD/MM/YYYY.
// Two-digit years pivot at 50 (below maps to the 2000s). The date must be a
// real calendar date with a year inside the plausible digitization window;
// anything else returns "" and the caller keeps the raw text.
func parseDate(raw string) string {
	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	yearStr := m[3]
	if len(yearStr) == 3 {
		return ""
	}
	if len(yearStr) == 2 {
		if v, _ := strconv.Atoi(yearStr); v < 50 {
			yearStr = "20" + yearStr
		} else {
			yearStr = "19" + yearStr
		}
	}
	year, _ := strconv.Atoi(yearStr)

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return ""
	}
	if year < 2010 || year > 2030 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%d", day, month, year)
}

// RenderRecords renders assembled rows into structured-row store records:
// one value and one confidence column per register field, the aggregated
// bbox, and review flags defaulted false.
func RenderRecords(documentID uuid.UUID, rows []domain.Row) []domain.ExtractedRowRecord {
	records := make([]domain.ExtractedRowRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.ExtractedRowRecord{
			DocumentID: documentID,
			RowIndex:   row.RowIndex,
			IsReviewed: false,
			IsApproved: false,
		}

		for field, value := range row.Values {
			conf := row.Confidences[field]
			setField(&rec, field, value, &conf)
		}

		bbox, err := json.Marshal(row.BBox)
		if err == nil {
			rec.BBox = bbox
		}
		records = append(records, rec)
	}
	return records
}

func setField(rec *domain.ExtractedRowRecord, field string, value *string, conf *float64) {
	switch field {
	case domain.FieldNamaAnak:
		rec.NamaAnak, rec.NamaAnakConfidence = value, conf
	case domain.FieldTanggalLahir:
		rec.TanggalLahir, rec.TanggalLahirConfidence = value, conf
	case domain.FieldUmur:
		rec.Umur, rec.UmurConfidence = value, conf
	case domain.FieldJenisKelamin:
		rec.JenisKelamin, rec.JenisKelaminConfidence = value, conf
	case domain.FieldNamaIbu:
		rec.NamaIbu, rec.NamaIbuConfidence = value, conf
	case domain.FieldAlamat:
		rec.Alamat, rec.AlamatConfidence = value, conf
	case domain.FieldBBLalu:
		rec.BBLalu, rec.BBLaluConfidence = value, conf
	case domain.FieldBBSekarang:
		rec.BBSekarang, rec.BBSekarangConfidence = value, conf
	case domain.FieldTB:
		rec.TB, rec.TBConfidence = value, conf
	case domain.FieldStatusNT:
		rec.StatusNT, rec.StatusNTConfidence = value, conf
	}
}
