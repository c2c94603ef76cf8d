// Package links contiene los casos de uso de emisión y tracking de enlaces
// de afiliado.
package links

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
	"github.com/tu-usuario/affiliate-portal/internal/domain/tracking"
)

// issueMaxAttempts reintentos ante colisión de tracking code. Con 8 hex chars
// el espacio es 2^32; agotar los reintentos indica un problema real del store.
const issueMaxAttempts = 3

// LinkUseCase emisión idempotente de enlaces y registro de clics.
type LinkUseCase struct {
	linkRepo    repository.LinkRepository
	companyRepo repository.CompanyRepository
}

// NewLinkUseCase construye el caso de uso.
func NewLinkUseCase(linkRepo repository.LinkRepository, companyRepo repository.CompanyRepository) *LinkUseCase {
	return &LinkUseCase{linkRepo: linkRepo, companyRepo: companyRepo}
}

// Issue emite (o recupera) el enlace del par (usuario, empresa). Idempotente:
// el par tiene a lo sumo un enlace, garantizado por constraint UNIQUE; si dos
// peticiones concurrentes compiten, la perdedora relee y devuelve el enlace
// de la ganadora. created indica si esta llamada creó el enlace.
func (uc *LinkUseCase) Issue(ctx context.Context, userID, companyID string) (resp *dto.LinkResponse, created bool, err error) {
	company, err := uc.companyRepo.GetActiveByID(ctx, companyID)
	if err != nil {
		return nil, false, err
	}
	if company == nil {
		return nil, false, domain.ErrNotFound
	}

	existing, err := uc.linkRepo.GetByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return toLinkResponse(existing, company), false, nil
	}

	for attempt := 0; attempt < issueMaxAttempts; attempt++ {
		code, err := tracking.NewCode()
		if err != nil {
			return nil, false, err
		}
		link := &entity.AffiliateLink{
			ID:           uuid.New().String(),
			UserID:       userID,
			CompanyID:    companyID,
			TrackingCode: code,
			GeneratedURL: company.TrackingURL + "?ref=" + code,
			CreatedAt:    time.Now(),
		}
		if company.PhoneNumber != "" {
			masked := tracking.MaskPhone(company.PhoneNumber, code)
			link.PhoneNumber = &masked
		}

		switch err := uc.linkRepo.Create(ctx, link); err {
		case nil:
			return toLinkResponse(link, company), true, nil
		case domain.ErrCodeCollision:
			// Código en uso por otro par; se genera uno nuevo.
			continue
		case domain.ErrDuplicate:
			// Otro request ganó la carrera por el par (usuario, empresa).
			winner, err := uc.linkRepo.GetByUserAndCompany(ctx, userID, companyID)
			if err != nil {
				return nil, false, err
			}
			if winner == nil {
				return nil, false, domain.ErrConflict
			}
			return toLinkResponse(winner, company), false, nil
		default:
			return nil, false, err
		}
	}
	return nil, false, fmt.Errorf("emitir enlace: %d colisiones de tracking code seguidas: %w", issueMaxAttempts, domain.ErrCodeCollision)
}

// MyLinks lista los enlaces del usuario con los datos de empresa que muestra
// el frontend, más recientes primero.
func (uc *LinkUseCase) MyLinks(ctx context.Context, userID string) ([]dto.LinkResponse, error) {
	rows, err := uc.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LinkResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toLinkWithCompanyResponse(&rows[i]))
	}
	return out, nil
}

// TrackClick incrementa el contador de clics del tracking code de forma
// atómica en el store. Códigos desconocidos son un no-op sin error: el
// endpoint es público y no debe filtrar qué códigos existen.
func (uc *LinkUseCase) TrackClick(ctx context.Context, trackingCode string) (found bool, err error) {
	return uc.linkRepo.IncrementClicks(ctx, trackingCode)
}

func toLinkResponse(l *entity.AffiliateLink, c *entity.Company) *dto.LinkResponse {
	return &dto.LinkResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		CompanyID:      l.CompanyID,
		TrackingCode:   l.TrackingCode,
		PhoneNumber:    l.PhoneNumber,
		GeneratedURL:   l.GeneratedURL,
		Clicks:         l.Clicks,
		Conversions:    l.Conversions,
		CreatedAt:      l.CreatedAt,
		CompanyName:    c.Name,
		Category:       c.Category,
		CommissionRate: c.CommissionRate,
		CommissionType: c.CommissionType,
	}
}

func toLinkWithCompanyResponse(r *repository.LinkWithCompany) *dto.LinkResponse {
	return &dto.LinkResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		CompanyID:      r.CompanyID,
		TrackingCode:   r.TrackingCode,
		PhoneNumber:    r.PhoneNumber,
		GeneratedURL:   r.GeneratedURL,
		Clicks:         r.Clicks,
		Conversions:    r.Conversions,
		CreatedAt:      r.CreatedAt,
		CompanyName:    r.CompanyName,
		Category:       r.Category,
		CommissionRate: r.CommissionRate,
		CommissionType: r.CommissionType,
	}
}
