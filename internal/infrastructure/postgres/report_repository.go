package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación del puerto ReportRepository (snapshots de reportes).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de persistencia para snapshots.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Create persiste un snapshot de reporte.
func (r *ReportRepo) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, user_id, report_type, start_date, end_date,
			total_clicks, total_conversions, total_revenue, total_commission, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		report.ID, report.UserID, report.ReportType, report.StartDate, report.EndDate,
		report.TotalClicks, report.TotalConversions, report.TotalRevenue, report.TotalCommission,
		report.Data, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// ListByUser lista los snapshots del usuario, más recientes primero.
func (r *ReportRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Report, error) {
	query := `
		SELECT id, user_id, report_type, start_date, end_date,
		       total_clicks, total_conversions, total_revenue, total_commission, data, created_at
		FROM reports WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		var rep entity.Report
		if err := rows.Scan(
			&rep.ID, &rep.UserID, &rep.ReportType, &rep.StartDate, &rep.EndDate,
			&rep.TotalClicks, &rep.TotalConversions, &rep.TotalRevenue, &rep.TotalCommission,
			&rep.Data, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
