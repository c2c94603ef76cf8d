// Package conversions contiene los casos de uso del ledger de conversiones:
// registro vía webhook del anunciante y transiciones de estado.
package conversions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con los repos atados a ella.
// La fila del ledger y el contador desnormalizado del enlace se escriben como
// una sola unidad: o entran ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		convRepo repository.ConversionRepository,
		linkRepo repository.LinkRepository,
	) error) error
}

// ConversionUseCase registro y ciclo de vida de conversiones.
type ConversionUseCase struct {
	tx          TxRunner
	linkRepo    repository.LinkRepository
	companyRepo repository.CompanyRepository
	convRepo    repository.ConversionRepository
}

// NewConversionUseCase construye el caso de uso.
func NewConversionUseCase(tx TxRunner, linkRepo repository.LinkRepository, companyRepo repository.CompanyRepository, convRepo repository.ConversionRepository) *ConversionUseCase {
	return &ConversionUseCase{tx: tx, linkRepo: linkRepo, companyRepo: companyRepo, convRepo: convRepo}
}

// Record registra una conversión reportada por el anunciante. Resuelve el
// tracking code al enlace, calcula la comisión según el esquema de la empresa
// y persiste ledger + contador en una transacción. La conversión nace pending.
func (uc *ConversionUseCase) Record(ctx context.Context, in dto.RecordConversionRequest) (*dto.ConversionResponse, error) {
	if in.Revenue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	link, err := uc.linkRepo.GetByTrackingCode(ctx, in.TrackingCode)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	// El esquema de comisión aplica aunque la empresa ya esté inactive:
	// la conversión viene de un enlace emitido cuando estaba activa.
	company, err := uc.companyRepo.GetByID(ctx, link.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	conv := &entity.Conversion{
		ID:          uuid.New().String(),
		LinkID:      link.ID,
		UserID:      link.UserID,
		CompanyID:   link.CompanyID,
		Revenue:     in.Revenue,
		Commission:  Commission(in.Revenue, company.CommissionRate, company.CommissionType),
		Status:      entity.ConversionPending,
		ConvertedAt: time.Now(),
	}
	err = uc.tx.Run(ctx, func(convRepo repository.ConversionRepository, linkRepo repository.LinkRepository) error {
		if err := convRepo.Create(ctx, conv); err != nil {
			return err
		}
		return linkRepo.IncrementConversions(ctx, link.ID)
	})
	if err != nil {
		return nil, err
	}
	return toConversionResponse(conv, company.Name), nil
}

// UpdateStatus aplica una transición del ciclo de vida. Solo se admiten
// pending→approved, pending→rejected y approved→paid; el resto devuelve
// ErrInvalidStatus y el ledger queda intacto.
func (uc *ConversionUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.ConversionResponse, error) {
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(conv.Status, status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.convRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	conv.Status = status
	return toConversionResponse(conv, ""), nil
}

// Commission calcula la comisión de una conversión: porcentaje del revenue
// redondeado a 2 decimales, o monto fijo por conversión.
func Commission(revenue, rate decimal.Decimal, commissionType string) decimal.Decimal {
	if commissionType == entity.CommissionPercentage {
		return revenue.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	}
	return rate
}

func toConversionResponse(c *entity.Conversion, companyName string) *dto.ConversionResponse {
	return &dto.ConversionResponse{
		ID:          c.ID,
		LinkID:      c.LinkID,
		UserID:      c.UserID,
		CompanyID:   c.CompanyID,
		Revenue:     c.Revenue,
		Commission:  c.Commission,
		Status:      c.Status,
		ConvertedAt: c.ConvertedAt,
		CompanyName: companyName,
	}
}
