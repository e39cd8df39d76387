package export

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/extract"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() common.ExportConfig {
	return common.ExportConfig{Engine: EngineExcelize, Prefix: "RentaMAX", Sheet: "DATA"}
}

func TestNewService_UnknownEngine(t *testing.T) {
	for _, engine := range []string{"", "openpyxl", "xlsxwriter"} {
		cfg := testConfig()
		cfg.Engine = engine
		_, err := NewService(cfg, discard())
		if err == nil {
			t.Fatalf("engine %q: expected error", engine)
		}
		if !errors.Is(err, common.ErrUnavailable) {
			t.Errorf("engine %q: expected ErrUnavailable, got %v", engine, err)
		}
	}
}

func TestWriteXLSX_RowsAndHeaders(t *testing.T) {
	svc, err := NewService(testConfig(), discard())
	if err != nil {
		t.Fatal(err)
	}

	fields := []string{"NUM_POL", "TASA_VENTA"}
	records := []extract.Record{
		{Document: "a.pdf", Values: map[string]string{"NUM_POL": "A-1", "TASA_VENTA": "3.5"}},
		{Document: "b.pdf", Values: map[string]string{"NUM_POL": "B-2", "TASA_VENTA": "0"}},
	}

	blob, err := svc.WriteXLSX(records, fields, nil)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("DATA")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	wantHeader := []string{"ARCHIVO", "NUM_POL", "TASA_VENTA"}
	for i, want := range wantHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	if rows[1][0] != "a.pdf" || rows[1][1] != "A-1" || rows[1][2] != "3.5" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "b.pdf" || rows[2][1] != "B-2" || rows[2][2] != "0" {
		t.Errorf("row 2 = %v", rows[2])
	}

	// No errors -> no error sheet.
	if idx, _ := f.GetSheetIndex(ErrorsSheet); idx != -1 {
		t.Errorf("unexpected %s sheet", ErrorsSheet)
	}
}

func TestWriteXLSX_ErrorSheet(t *testing.T) {
	svc, err := NewService(testConfig(), discard())
	if err != nil {
		t.Fatal(err)
	}

	errsIn := []extract.Error{
		{Document: "bad.pdf", Reason: "empty or non-extractable text"},
		{Document: "a.pdf", Field: "NUM_POL", Reason: "rule evaluation panicked: boom"},
	}
	blob, err := svc.WriteXLSX(nil, []string{"NUM_POL"}, errsIn)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(ErrorsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("error rows = %d, want header + 2", len(rows))
	}
	if rows[1][0] != "bad.pdf" || rows[1][1] != "-" {
		t.Errorf("document-level row = %v, want field marker -", rows[1])
	}
	if rows[2][1] != "NUM_POL" {
		t.Errorf("field row = %v", rows[2])
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)
	got := Filename("RentaMAX", ts)
	if got != "RentaMAX_20260826_150405.xlsx" {
		t.Fatalf("Filename = %q", got)
	}
	if !regexp.MustCompile(`^[^_]+_\d{8}_\d{6}\.xlsx$`).MatchString(got) {
		t.Fatalf("Filename %q does not match the artifact pattern", got)
	}
}
