package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ats-ui/internal/types"
)

// DefaultExcelName names an Excel export the backend did not name.
const DefaultExcelName = "JD_Analysis_Results.xlsx"

// ExcelContentType is the MIME type of an .xlsx workbook.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoExcel is returned when a bulk report has no Excel export.
var ErrNoExcel = errors.New("report has no Excel export")

// ExcelError represents a failure decoding or reading an Excel export
type ExcelError struct {
	Message string
	Cause   error
}

func (e *ExcelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("excel error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("excel error: %s", e.Message)
}

func (e *ExcelError) Unwrap() error {
	return e.Cause
}

// ExcelExport is a decoded workbook ready to be saved or served.
type ExcelExport struct {
	Name string
	Data []byte
}

// DecodeExcel decodes the base64 workbook carried by a bulk report.
func DecodeExcel(r *types.BulkReport) (*ExcelExport, error) {
	if !r.HasExcel() {
		return nil, ErrNoExcel
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.ExcelData))
	if err != nil {
		return nil, &ExcelError{Message: "invalid base64 data", Cause: err}
	}
	name := r.ExcelFileName
	if name == "" {
		name = DefaultExcelName
	}
	return &ExcelExport{Name: name, Data: data}, nil
}

// SheetSummary describes one worksheet.
type SheetSummary struct {
	Name   string
	Rows   int
	Header []string
}

// WorkbookSummary describes an Excel export.
type WorkbookSummary struct {
	Sheets []SheetSummary
}

// DataRows returns the number of rows below the header across all sheets.
func (w WorkbookSummary) DataRows() int {
	total := 0
	for _, s := range w.Sheets {
		if s.Rows > 1 {
			total += s.Rows - 1
		}
	}
	return total
}

// InspectWorkbook opens a workbook and summarizes each sheet.
func InspectWorkbook(data []byte) (*WorkbookSummary, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ExcelError{Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	summary := &WorkbookSummary{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, &ExcelError{Message: fmt.Sprintf("failed to read sheet %q", name), Cause: err}
		}
		sheet := SheetSummary{Name: name, Rows: len(rows)}
		if len(rows) > 0 {
			sheet.Header = rows[0]
		}
		summary.Sheets = append(summary.Sheets, sheet)
	}
	return summary, nil
}
