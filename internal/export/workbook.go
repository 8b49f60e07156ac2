// Package export renders a document's extracted rows into an XLSX review
// workbook: one value column and one confidence column per register field.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"posyandu/internal/domain"
)

const sheetName = "Extracted Rows"

// WriteWorkbook writes one workbook for the given records to w. Records are
// expected in ascending row order.
func WriteWorkbook(w io.Writer, records []domain.ExtractedRowRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export: creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: removing default sheet: %w", err)
	}

	header := []interface{}{"Row"}
	for _, field := range domain.FieldNames {
		header = append(header, domain.FieldLabels[field], domain.FieldLabels[field]+" (Confidence)")
	}
	header = append(header, "Reviewed", "Approved")
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}

	for i, rec := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: resolving cell for row %d: %w", rec.RowIndex, err)
		}
		if err := f.SetSheetRow(sheetName, cellRef, recordRow(rec)); err != nil {
			return fmt.Errorf("export: writing row %d: %w", rec.RowIndex, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

func recordRow(rec domain.ExtractedRowRecord) *[]interface{} {
	row := []interface{}{rec.RowIndex}

	appendField := func(value *string, conf *float64) {
		if value != nil {
			row = append(row, *value)
		} else {
			row = append(row, "")
		}
		if conf != nil {
			row = append(row, *conf)
		} else {
			row = append(row, "")
		}
	}

	appendField(rec.NamaAnak, rec.NamaAnakConfidence)
	appendField(rec.TanggalLahir, rec.TanggalLahirConfidence)
	appendField(rec.Umur, rec.UmurConfidence)
	appendField(rec.JenisKelamin, rec.JenisKelaminConfidence)
	appendField(rec.NamaIbu, rec.NamaIbuConfidence)
	appendField(rec.Alamat, rec.AlamatConfidence)
	appendField(rec.BBLalu, rec.BBLaluConfidence)
	appendField(rec.BBSekarang, rec.BBSekarangConfidence)
	appendField(rec.TB, rec.TBConfidence)
	appendField(rec.StatusNT, rec.StatusNTConfidence)

	row = append(row, rec.IsReviewed, rec.IsApproved)
	return &row
}
