package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, category, description, commission_rate, commission_type,
		phone_number, tracking_url, status, created_at, updated_at`

// CompanyRepo implementación read-only del puerto CompanyRepository.
// El catálogo se carga con cmd/migrate; la API nunca lo escribe.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// GetByID obtiene una empresa por ID sin filtrar por status.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetActiveByID obtiene una empresa activa por ID. (nil, nil) si no existe
// o está inactive.
func (r *CompanyRepo) GetActiveByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND status = 'active'`
	return r.scanOne(ctx, query, id)
}

// ListActive lista las empresas activas con filtros opcionales de categoría
// exacta y búsqueda por substring (case-insensitive) en nombre y descripción.
func (r *CompanyRepo) ListActive(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE status = 'active'`
	args := []any{}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Category, &c.Description, &c.CommissionRate, &c.CommissionType,
			&c.PhoneNumber, &c.TrackingURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListCategories devuelve las categorías distintas de empresas activas, ordenadas.
func (r *CompanyRepo) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM companies WHERE status = 'active' ORDER BY category`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CompanyRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	var c entity.Company
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Category, &c.Description, &c.CommissionRate, &c.CommissionType,
		&c.PhoneNumber, &c.TrackingURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
