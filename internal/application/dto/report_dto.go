package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummaryDTO resumen del conjunto filtrado, con la comisión partida
// por estado dentro del mismo filtro.
type ReportSummaryDTO struct {
	TotalConversions   int64           `json:"total_conversions"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCommission    decimal.Decimal `json:"total_commission"`
	ApprovedCommission decimal.Decimal `json:"approved_commission"`
	PendingCommission  decimal.Decimal `json:"pending_commission"`
}

// ReportRowDTO fila del reporte: conversión + empresa + enlace.
type ReportRowDTO struct {
	ID           string          `json:"id"`
	ConvertedAt  time.Time       `json:"converted_at"`
	CompanyName  string          `json:"company_name"`
	Category     string          `json:"category"`
	Revenue      decimal.Decimal `json:"revenue"`
	Commission   decimal.Decimal `json:"commission"`
	Status       string          `json:"status"`
	TrackingCode string          `json:"tracking_code"`
	PhoneNumber  *string         `json:"phone_number"`
}

// ReportPeriod eco del rango solicitado.
type ReportPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportResponse respuesta JSON de GET /reports/generate.
type ReportResponse struct {
	Summary ReportSummaryDTO `json:"summary"`
	Data    []ReportRowDTO   `json:"data"`
	Period  ReportPeriod     `json:"period"`
}

// SavedReportResponse snapshot persistido, fila de GET /reports/saved.
// Data trae las filas del reporte tal como se serializaron al guardar.
type SavedReportResponse struct {
	ID               string          `json:"id"`
	ReportType       string          `json:"report_type"`
	StartDate        string          `json:"start_date"` // YYYY-MM-DD
	EndDate          string          `json:"end_date"`   // YYYY-MM-DD
	TotalClicks      int64           `json:"total_clicks"`
	TotalConversions int64           `json:"total_conversions"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	Data             json.RawMessage `json:"data"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MonthlyRowResponse fila de GET /reports/monthly.
type MonthlyRowResponse struct {
	Month       string          `json:"month"` // YYYY-MM
	Conversions int64           `json:"conversions"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commission  decimal.Decimal `json:"commission"`
}
