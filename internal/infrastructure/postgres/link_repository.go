package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

var _ repository.LinkRepository = (*LinkRepo)(nil)

// Nombres de las constraints únicas de affiliate_links (ver schema.sql).
const (
	constraintLinkUserCompany = "affiliate_links_user_company_key"
	constraintLinkCode        = "affiliate_links_tracking_code_key"
)

// LinkRepo implementación del puerto LinkRepository. Acepta pool o tx para
// poder participar en las transacciones del TxRunner.
type LinkRepo struct {
	db dbtx
}

// NewLinkRepository construye el adaptador de persistencia para enlaces.
func NewLinkRepository(db dbtx) *LinkRepo {
	return &LinkRepo{db: db}
}

// Create persiste el enlace y traduce cada constraint única violada a su
// error de dominio: par (user, company) → ErrDuplicate, código → ErrCodeCollision.
func (r *LinkRepo) Create(ctx context.Context, link *entity.AffiliateLink) error {
	query := `
		INSERT INTO affiliate_links (id, user_id, company_id, tracking_code, phone_number, generated_url, clicks, conversions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		link.ID, link.UserID, link.CompanyID, link.TrackingCode, link.PhoneNumber,
		link.GeneratedURL, link.Clicks, link.Conversions, link.CreatedAt,
	)
	if err != nil {
		switch violatedConstraint(err) {
		case constraintLinkUserCompany:
			return domain.ErrDuplicate
		case constraintLinkCode:
			return domain.ErrCodeCollision
		}
		return fmt.Errorf("insert affiliate link: %w", err)
	}
	return nil
}

// GetByUserAndCompany obtiene el enlace del par (usuario, empresa).
func (r *LinkRepo) GetByUserAndCompany(ctx context.Context, userID, companyID string) (*entity.AffiliateLink, error) {
	query := `
		SELECT id, user_id, company_id, tracking_code, phone_number, generated_url, clicks, conversions, created_at
		FROM affiliate_links WHERE user_id = $1 AND company_id = $2`
	return r.scanOne(ctx, query, userID, companyID)
}

// GetByTrackingCode obtiene el enlace dueño del tracking code.
func (r *LinkRepo) GetByTrackingCode(ctx context.Context, code string) (*entity.AffiliateLink, error) {
	query := `
		SELECT id, user_id, company_id, tracking_code, phone_number, generated_url, clicks, conversions, created_at
		FROM affiliate_links WHERE tracking_code = $1`
	return r.scanOne(ctx, query, code)
}

// ListByUser lista los enlaces del usuario con los campos de la empresa,
// más recientes primero.
func (r *LinkRepo) ListByUser(ctx context.Context, userID string) ([]repository.LinkWithCompany, error) {
	query := `
		SELECT al.id, al.user_id, al.company_id, al.tracking_code, al.phone_number,
		       al.generated_url, al.clicks, al.conversions, al.created_at,
		       c.name, c.category, c.commission_rate, c.commission_type
		FROM affiliate_links al
		JOIN companies c ON al.company_id = c.id
		WHERE al.user_id = $1
		ORDER BY al.created_at DESC`
	return r.queryWithCompany(ctx, query, userID)
}

// IncrementClicks suma 1 al contador de forma atómica con un solo UPDATE.
// Devuelve false si el tracking code no resuelve a ningún enlace.
func (r *LinkRepo) IncrementClicks(ctx context.Context, trackingCode string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE affiliate_links SET clicks = clicks + 1 WHERE tracking_code = $1`,
		trackingCode,
	)
	if err != nil {
		return false, fmt.Errorf("increment clicks: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementConversions suma 1 al contador desnormalizado del enlace.
func (r *LinkRepo) IncrementConversions(ctx context.Context, linkID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE affiliate_links SET conversions = conversions + 1 WHERE id = $1`,
		linkID,
	)
	if err != nil {
		return fmt.Errorf("increment conversions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Totals agrega los contadores desnormalizados de los enlaces del usuario.
func (r *LinkRepo) Totals(ctx context.Context, userID string) (repository.LinkTotals, error) {
	var t repository.LinkTotals
	query := `
		SELECT COUNT(*), COALESCE(SUM(clicks), 0), COALESCE(SUM(conversions), 0)
		FROM affiliate_links WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&t.Links, &t.Clicks, &t.Conversions); err != nil {
		return repository.LinkTotals{}, fmt.Errorf("link totals: %w", err)
	}
	return t, nil
}

// TopByPerformance devuelve los mejores enlaces del usuario: conversiones
// dominan sobre clics como criterio.
func (r *LinkRepo) TopByPerformance(ctx context.Context, userID string, limit int) ([]repository.LinkWithCompany, error) {
	query := `
		SELECT al.id, al.user_id, al.company_id, al.tracking_code, al.phone_number,
		       al.generated_url, al.clicks, al.conversions, al.created_at,
		       c.name, c.category, c.commission_rate, c.commission_type
		FROM affiliate_links al
		JOIN companies c ON al.company_id = c.id
		WHERE al.user_id = $1
		ORDER BY al.conversions DESC, al.clicks DESC
		LIMIT $2`
	return r.queryWithCompany(ctx, query, userID, limit)
}

func (r *LinkRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.AffiliateLink, error) {
	var l entity.AffiliateLink
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.UserID, &l.CompanyID, &l.TrackingCode, &l.PhoneNumber,
		&l.GeneratedURL, &l.Clicks, &l.Conversions, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get affiliate link: %w", err)
	}
	return &l, nil
}

func (r *LinkRepo) queryWithCompany(ctx context.Context, query string, args ...any) ([]repository.LinkWithCompany, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list affiliate links: %w", err)
	}
	defer rows.Close()

	var list []repository.LinkWithCompany
	for rows.Next() {
		var l repository.LinkWithCompany
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.CompanyID, &l.TrackingCode, &l.PhoneNumber,
			&l.GeneratedURL, &l.Clicks, &l.Conversions, &l.CreatedAt,
			&l.CompanyName, &l.Category, &l.CommissionRate, &l.CommissionType,
		); err != nil {
			return nil, fmt.Errorf("scan affiliate link: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
