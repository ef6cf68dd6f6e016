package report

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ats-ui/internal/types"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Best Matches"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"JD", "Resume", "New Name", "Score"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, "alice.pdf", "Acme_Dev_Alice", 9}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, "carol.pdf", "Globex_QA_Carol", 6}))

	_, err := f.NewSheet("Unmatched")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestDecodeExcel(t *testing.T) {
	data := buildWorkbook(t)
	r := &types.BulkReport{ExcelData: base64.StdEncoding.EncodeToString(data)}

	export, err := DecodeExcel(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultExcelName, export.Name)
	assert.Equal(t, data, export.Data)

	r.ExcelFileName = "Results_2024.xlsx"
	export, err = DecodeExcel(r)
	require.NoError(t, err)
	assert.Equal(t, "Results_2024.xlsx", export.Name)
}

func TestDecodeExcel_Errors(t *testing.T) {
	_, err := DecodeExcel(&types.BulkReport{})
	assert.ErrorIs(t, err, ErrNoExcel)

	_, err = DecodeExcel(&types.BulkReport{ExcelData: "not base64!!"})
	var excelErr *ExcelError
	require.ErrorAs(t, err, &excelErr)
	assert.Contains(t, err.Error(), "invalid base64")
}

func TestInspectWorkbook(t *testing.T) {
	summary, err := InspectWorkbook(buildWorkbook(t))
	require.NoError(t, err)
	require.Len(t, summary.Sheets, 2)

	best := summary.Sheets[0]
	assert.Equal(t, "Best Matches", best.Name)
	assert.Equal(t, 3, best.Rows)
	assert.Equal(t, []string{"JD", "Resume", "New Name", "Score"}, best.Header)

	assert.Equal(t, "Unmatched", summary.Sheets[1].Name)
	assert.Zero(t, summary.Sheets[1].Rows)
	assert.Equal(t, 2, summary.DataRows())
}

func TestInspectWorkbook_NotExcel(t *testing.T) {
	_, err := InspectWorkbook([]byte("plain text"))
	var excelErr *ExcelError
	assert.ErrorAs(t, err, &excelErr)
}
