// Package export serializes a batch's result table into an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/EliasGomez98/PDF-Scrapping/constants"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/extract"
)

// EngineExcelize is the only spreadsheet engine this build knows.
const EngineExcelize = "excelize"

// ErrorsSheet receives the batch's error table when it is non-empty.
const ErrorsSheet = "ERRORES"

// Service writes result tables as XLSX bytes.
type Service struct {
	sheet  string
	logger *slog.Logger
}

// NewService resolves the spreadsheet engine once at startup. An unknown
// engine is fatal for the export capability only; the message tells the
// operator how to fix the configuration.
func NewService(cfg common.ExportConfig, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Engine != EngineExcelize {
		return nil, common.NewAppError("EXPORT_ENGINE",
			fmt.Sprintf("no spreadsheet engine available: engine %q is not supported, set export.engine = %q", cfg.Engine, EngineExcelize),
			common.ErrUnavailable)
	}
	sheet := cfg.Sheet
	if sheet == "" {
		sheet = "DATA"
	}
	return &Service{sheet: sheet, logger: logger}, nil
}

// WriteXLSX returns an XLSX workbook (as bytes) holding one row per record,
// in table order, with the document-name column first and then fields in
// registry order. A non-empty error table goes to a second sheet.
func (s *Service) WriteXLSX(records []extract.Record, fields []string, errs []extract.Error) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(s.sheet); index == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(activeIndex)

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(s.sheet, 1, 1, constants.DocumentColumn)
	for i, name := range fields {
		write(s.sheet, i+2, 1, name)
	}

	row := 2
	for _, rec := range records {
		write(s.sheet, 1, row, rec.Document)
		for i, name := range fields {
			v, ok := rec.Values[name]
			if !ok {
				v = constants.MissingValue
			}
			write(s.sheet, i+2, row, v)
		}
		row++
	}

	// Widen the filename column; field values are short.
	_ = f.SetColWidth(s.sheet, "A", "A", 40)
	if len(fields) > 0 {
		last, _ := excelize.ColumnNumberToName(len(fields) + 1)
		_ = f.SetColWidth(s.sheet, "B", last, 16)
	}

	if len(errs) > 0 {
		if _, err := f.NewSheet(ErrorsSheet); err != nil {
			return nil, err
		}
		write(ErrorsSheet, 1, 1, constants.DocumentColumn)
		write(ErrorsSheet, 2, 1, "CAMPO")
		write(ErrorsSheet, 3, 1, "ERROR")
		for i, e := range errs {
			field := e.Field
			if e.DocumentLevel() {
				field = "-"
			}
			write(ErrorsSheet, 1, i+2, e.Document)
			write(ErrorsSheet, 2, i+2, field)
			write(ErrorsSheet, 3, i+2, e.Reason)
		}
		_ = f.SetColWidth(ErrorsSheet, "A", "A", 40)
		_ = f.SetColWidth(ErrorsSheet, "C", "C", 60)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"errors", len(errs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Filename builds the download artifact name: <prefix>_<YYYYMMDD_HHMMSS>.xlsx.
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format("20060102_150405"))
}
