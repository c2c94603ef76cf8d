package repository

import (
	"context"

	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// CompanyFilter filtros opcionales del listado de empresas.
type CompanyFilter struct {
	Category string // igualdad exacta
	Search   string // substring sobre nombre y descripción
}

// CompanyRepository puerto de solo lectura para empresas partner.
// Las empresas son datos de referencia estáticos cargados por cmd/migrate.
type CompanyRepository interface {
	// GetByID devuelve (nil, nil) si la empresa no existe. No filtra por
	// status: el esquema de comisión aplica aunque la empresa ya esté inactive.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetActiveByID devuelve (nil, nil) si la empresa no existe o está inactive.
	GetActiveByID(ctx context.Context, id string) (*entity.Company, error)
	ListActive(ctx context.Context, f CompanyFilter) ([]*entity.Company, error)
	// ListCategories devuelve las categorías distintas de empresas activas, ordenadas.
	ListCategories(ctx context.Context) ([]string, error)
}
