package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

var _ repository.ConversionRepository = (*ConversionRepo)(nil)

// ConversionRepo implementación del puerto ConversionRepository. Acepta pool
// o tx para poder participar en las transacciones del TxRunner.
type ConversionRepo struct {
	db dbtx
}

// NewConversionRepository construye el adaptador de persistencia del ledger.
func NewConversionRepository(db dbtx) *ConversionRepo {
	return &ConversionRepo{db: db}
}

// Create inserta una fila del ledger.
func (r *ConversionRepo) Create(ctx context.Context, conv *entity.Conversion) error {
	query := `
		INSERT INTO conversions (id, link_id, user_id, company_id, revenue, commission, status, converted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		conv.ID, conv.LinkID, conv.UserID, conv.CompanyID,
		conv.Revenue, conv.Commission, conv.Status, conv.ConvertedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// GetByID obtiene una conversión por ID. (nil, nil) si no existe.
func (r *ConversionRepo) GetByID(ctx context.Context, id string) (*entity.Conversion, error) {
	query := `
		SELECT id, link_id, user_id, company_id, revenue, commission, status, converted_at
		FROM conversions WHERE id = $1`
	var c entity.Conversion
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.LinkID, &c.UserID, &c.CompanyID,
		&c.Revenue, &c.Commission, &c.Status, &c.ConvertedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	return &c, nil
}

// UpdateStatus escribe el nuevo estado. La validez de la transición se
// decide en el caso de uso; aquí solo se persiste.
func (r *ConversionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE conversions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update conversion status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApprovedSummary suma revenue y comisión SOLO de conversiones approved y
// paid. El conjunto es disjunto del de PendingCommission.
func (r *ConversionRepo) ApprovedSummary(ctx context.Context, userID string) (repository.RevenueSummary, error) {
	var s repository.RevenueSummary
	query := `
		SELECT COUNT(*), COALESCE(SUM(revenue), 0), COALESCE(SUM(commission), 0)
		FROM conversions
		WHERE user_id = $1 AND status IN ('approved', 'paid')`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&s.Conversions, &s.Revenue, &s.Commission); err != nil {
		return repository.RevenueSummary{}, fmt.Errorf("approved summary: %w", err)
	}
	return s, nil
}

// PendingCommission suma la comisión SOLO de conversiones pending.
func (r *ConversionRepo) PendingCommission(ctx context.Context, userID string) (decimal.Decimal, error) {
	var pending decimal.Decimal
	query := `
		SELECT COALESCE(SUM(commission), 0)
		FROM conversions
		WHERE user_id = $1 AND status = 'pending'`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&pending); err != nil {
		return decimal.Zero, fmt.Errorf("pending commission: %w", err)
	}
	return pending, nil
}

// Recent devuelve las últimas conversiones del usuario con el nombre de la
// empresa, más recientes primero.
func (r *ConversionRepo) Recent(ctx context.Context, userID string, limit int) ([]repository.ConversionWithCompany, error) {
	query := `
		SELECT c.id, c.link_id, c.user_id, c.company_id, c.revenue, c.commission, c.status, c.converted_at,
		       co.name
		FROM conversions c
		JOIN companies co ON c.company_id = co.id
		WHERE c.user_id = $1
		ORDER BY c.converted_at DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent conversions: %w", err)
	}
	defer rows.Close()

	var list []repository.ConversionWithCompany
	for rows.Next() {
		var c repository.ConversionWithCompany
		if err := rows.Scan(
			&c.ID, &c.LinkID, &c.UserID, &c.CompanyID,
			&c.Revenue, &c.Commission, &c.Status, &c.ConvertedAt, &c.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ChartData serie diaria de conversiones y comisión desde `since`
// (nil = serie completa), ascendente por fecha.
func (r *ConversionRepo) ChartData(ctx context.Context, userID string, since *time.Time) ([]repository.ChartPoint, error) {
	query := `
		SELECT to_char(converted_at, 'YYYY-MM-DD') AS day,
		       COUNT(*), COALESCE(SUM(commission), 0)
		FROM conversions
		WHERE user_id = $1`
	args := []any{userID}
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND converted_at >= $%d", len(args))
	}
	query += `
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("chart data: %w", err)
	}
	defer rows.Close()

	var points []repository.ChartPoint
	for rows.Next() {
		var p repository.ChartPoint
		if err := rows.Scan(&p.Date, &p.Conversions, &p.Commission); err != nil {
			return nil, fmt.Errorf("scan chart point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// ReportRows filas del reporte (ledger + empresa + enlace) del rango,
// más recientes primero. El rango filtra por DATE(converted_at), inclusivo.
func (r *ConversionRepo) ReportRows(ctx context.Context, userID string, dr repository.DateRange) ([]repository.ReportRow, error) {
	query := `
		SELECT c.id, c.converted_at, co.name, co.category, c.revenue, c.commission,
		       c.status, al.tracking_code, al.phone_number
		FROM conversions c
		JOIN companies co ON c.company_id = co.id
		JOIN affiliate_links al ON c.link_id = al.id
		WHERE c.user_id = $1`
	args := []any{userID}
	if dr.Bounded() {
		args = append(args, *dr.Start, *dr.End)
		query += fmt.Sprintf(" AND DATE(c.converted_at) BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	query += " ORDER BY c.converted_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report rows: %w", err)
	}
	defer rows.Close()

	var list []repository.ReportRow
	for rows.Next() {
		var row repository.ReportRow
		if err := rows.Scan(
			&row.ID, &row.ConvertedAt, &row.CompanyName, &row.Category,
			&row.Revenue, &row.Commission, &row.Status, &row.TrackingCode, &row.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ReportSummary resumen del mismo conjunto filtrado que ReportRows, con la
// comisión partida por estado: approved_commission suma approved + paid,
// pending_commission suma solo pending.
func (r *ConversionRepo) ReportSummary(ctx context.Context, userID string, dr repository.DateRange) (repository.ReportSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(revenue), 0),
		       COALESCE(SUM(commission), 0),
		       COALESCE(SUM(CASE WHEN status IN ('approved', 'paid') THEN commission ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN commission ELSE 0 END), 0)
		FROM conversions
		WHERE user_id = $1`
	args := []any{userID}
	if dr.Bounded() {
		args = append(args, *dr.Start, *dr.End)
		query += fmt.Sprintf(" AND DATE(converted_at) BETWEEN $%d AND $%d", len(args)-1, len(args))
	}

	var s repository.ReportSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.TotalConversions, &s.TotalRevenue, &s.TotalCommission,
		&s.ApprovedCommission, &s.PendingCommission,
	)
	if err != nil {
		return repository.ReportSummary{}, fmt.Errorf("report summary: %w", err)
	}
	return s, nil
}

// Monthly agrega por mes calendario, más reciente primero.
func (r *ConversionRepo) Monthly(ctx context.Context, userID string, months int) ([]repository.MonthlyRow, error) {
	query := `
		SELECT to_char(converted_at, 'YYYY-MM') AS month,
		       COUNT(*), COALESCE(SUM(revenue), 0), COALESCE(SUM(commission), 0)
		FROM conversions
		WHERE user_id = $1
		GROUP BY month
		ORDER BY month DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthlyRow
	for rows.Next() {
		var m repository.MonthlyRow
		if err := rows.Scan(&m.Month, &m.Conversions, &m.Revenue, &m.Commission); err != nil {
			return nil, fmt.Errorf("scan monthly row: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
