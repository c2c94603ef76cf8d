package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /dashboard/stats.
//
// Invariante central del negocio: TotalRevenue/TotalCommission suman SOLO
// conversiones approved+paid; PendingCommission suma SOLO pending. Los
// conjuntos de estados son disjuntos: la comisión no aprobada nunca se
// reporta como ganada.
type DashboardStatsResponse struct {
	TotalLinks        int64                `json:"totalLinks"`
	TotalClicks       int64                `json:"totalClicks"`
	TotalConversions  int64                `json:"totalConversions"`
	TotalRevenue      decimal.Decimal      `json:"totalRevenue"`
	TotalCommission   decimal.Decimal      `json:"totalCommission"`
	PendingCommission decimal.Decimal      `json:"pendingCommission"`
	RecentConversions []ConversionResponse `json:"recentConversions"`
	TopLinks          []LinkResponse       `json:"topPerformingLinks"`
}

// ChartPointResponse punto de GET /dashboard/chart-data.
type ChartPointResponse struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Conversions int64           `json:"conversions"`
	Commission  decimal.Decimal `json:"commission"`
}
