package reports_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
)

func sampleReport() *dto.ReportResponse {
	phone := "050-1234-7182"
	return &dto.ReportResponse{
		Summary: dto.ReportSummaryDTO{TotalConversions: 2},
		Data: []dto.ReportRowDTO{
			{
				ID:           "conv-1",
				ConvertedAt:  time.Date(2026, 8, 15, 10, 30, 45, 0, time.UTC),
				CompanyName:  "オンライン英会話",
				Category:     "教育",
				Revenue:      decimal.NewFromInt(10000),
				Commission:   decimal.NewFromInt(1500),
				Status:       "approved",
				TrackingCode: "a1b2c3d4",
				PhoneNumber:  &phone,
			},
			{
				ID:           "conv-2",
				ConvertedAt:  time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
				CompanyName:  "楽天モバイル",
				Category:     "通信",
				Revenue:      decimal.RequireFromString("20000.5"),
				Commission:   decimal.NewFromInt(5000),
				Status:       "pending",
				TrackingCode: "deadbeef",
				PhoneNumber:  nil,
			},
		},
		Period: dto.ReportPeriod{Start: "2026-08-01", End: "2026-08-31"},
	}
}

// El BOM va al frente para que Excel en Windows detecte UTF-8; sin él los
// encabezados japoneses salen corruptos.
func TestExportCSV_EmpiezaConBOM(t *testing.T) {
	out, err := reports.ExportCSV(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
}

func TestExportCSV_EncabezadosYFilas(t *testing.T) {
	out, err := reports.ExportCSV(sampleReport())
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "encabezados + una fila por conversión")

	assert.Equal(t,
		[]string{"成約日時", "企業名", "カテゴリ", "売上", "報酬", "ステータス", "トラッキングコード", "電話番号"},
		records[0])

	// Las filas preservan el orden del reporte.
	assert.Equal(t, []string{
		"2026-08-15 10:30:45", "オンライン英会話", "教育", "10000", "1500",
		"approved", "a1b2c3d4", "050-1234-7182",
	}, records[1])
	assert.Equal(t, "2026-08-10 09:00:00", records[2][0])
	assert.Equal(t, "楽天モバイル", records[2][1])
	assert.Equal(t, "", records[2][7], "sin teléfono enmascarado la celda va vacía")
}

func TestExportCSV_ReporteVacio_SoloEncabezados(t *testing.T) {
	out, err := reports.ExportCSV(&dto.ReportResponse{Data: []dto.ReportRowDTO{}})
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "成約日時", records[0][0])
}
