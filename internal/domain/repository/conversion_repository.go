package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// DateRange rango inclusivo sobre DATE(converted_at). Ambos límites o ninguno.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounded informa si el rango tiene ambos límites.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// RevenueSummary agregado de conversiones confirmadas (approved + paid).
type RevenueSummary struct {
	Conversions int64
	Revenue     decimal.Decimal
	Commission  decimal.Decimal
}

// ConversionWithCompany fila del ledger con el nombre de la empresa.
type ConversionWithCompany struct {
	entity.Conversion
	CompanyName string
}

// ReportRow fila del reporte por rango de fechas (ledger + empresa + enlace).
type ReportRow struct {
	ID           string
	ConvertedAt  time.Time
	CompanyName  string
	Category     string
	Revenue      decimal.Decimal
	Commission   decimal.Decimal
	Status       string
	TrackingCode string
	PhoneNumber  *string
}

// ReportSummary resumen del mismo conjunto filtrado, con la comisión
// partida por estado (la no aprobada nunca se reporta como ganada).
type ReportSummary struct {
	TotalConversions   int64
	TotalRevenue       decimal.Decimal
	TotalCommission    decimal.Decimal
	ApprovedCommission decimal.Decimal
	PendingCommission  decimal.Decimal
}

// ChartPoint punto de la serie del dashboard, agrupado por día.
type ChartPoint struct {
	Date        string // YYYY-MM-DD
	Conversions int64
	Commission  decimal.Decimal
}

// MonthlyRow agregado por mes calendario.
type MonthlyRow struct {
	Month       string // YYYY-MM
	Conversions int64
	Revenue     decimal.Decimal
	Commission  decimal.Decimal
}

// ConversionRepository puerto de persistencia para el ledger de conversiones.
type ConversionRepository interface {
	Create(ctx context.Context, conv *entity.Conversion) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Conversion, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// ApprovedSummary suma revenue/commission SOLO de approved + paid.
	ApprovedSummary(ctx context.Context, userID string) (RevenueSummary, error)
	// PendingCommission suma la comisión SOLO de pending. Conjunto de
	// estados disjunto del de ApprovedSummary: nunca se double-cuenta.
	PendingCommission(ctx context.Context, userID string) (decimal.Decimal, error)
	Recent(ctx context.Context, userID string, limit int) ([]ConversionWithCompany, error)
	// ChartData serie diaria desde `since` (nil = sin filtro), ascendente.
	ChartData(ctx context.Context, userID string, since *time.Time) ([]ChartPoint, error)
	ReportRows(ctx context.Context, userID string, r DateRange) ([]ReportRow, error)
	ReportSummary(ctx context.Context, userID string, r DateRange) (ReportSummary, error)
	// Monthly devuelve los últimos `months` meses con actividad, descendente.
	Monthly(ctx context.Context, userID string, months int) ([]MonthlyRow, error)
}
