// Package companies expone el catálogo de empresas partner.
package companies

import (
	"context"

	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

// CompanyUseCase consultas read-only sobre el catálogo.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// List devuelve las empresas activas, opcionalmente filtradas por categoría
// exacta y/o búsqueda por substring en nombre y descripción.
func (uc *CompanyUseCase) List(ctx context.Context, f repository.CompanyFilter) ([]dto.CompanyResponse, error) {
	companies, err := uc.companyRepo.ListActive(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Categories devuelve las categorías distintas de las empresas activas.
func (uc *CompanyUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.companyRepo.ListCategories(ctx)
}

// Get devuelve una empresa activa por id. ErrNotFound si no existe o está inactive.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		Description:    c.Description,
		CommissionRate: c.CommissionRate,
		CommissionType: c.CommissionType,
		PhoneNumber:    c.PhoneNumber,
		TrackingURL:    c.TrackingURL,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}
