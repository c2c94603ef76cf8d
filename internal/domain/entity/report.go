package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de reporte persistido.
const (
	ReportDaily   = "daily"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

// Report snapshot persistido de métricas agregadas para un rango de fechas.
// Los endpoints de reporting calculan on-demand; el snapshot se guarda solo
// cuando el usuario lo pide explícitamente (save=true).
type Report struct {
	ID               string
	UserID           string
	ReportType       string // ver constantes Report*
	StartDate        time.Time
	EndDate          time.Time
	TotalClicks      int64
	TotalConversions int64
	TotalRevenue     decimal.Decimal
	TotalCommission  decimal.Decimal
	Data             []byte // JSONB con las filas del reporte
	CreatedAt        time.Time
}
