package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// LinkWithCompany enlace con los campos de la empresa que consume el frontend.
type LinkWithCompany struct {
	entity.AffiliateLink
	CompanyName    string
	Category       string
	CommissionRate decimal.Decimal
	CommissionType string
}

// LinkTotals agregados desnormalizados de los enlaces de un usuario.
type LinkTotals struct {
	Links       int64
	Clicks      int64
	Conversions int64
}

// LinkRepository puerto de persistencia para enlaces de afiliado.
type LinkRepository interface {
	// Create persiste el enlace. Mapea las violaciones de unicidad por
	// constraint: par (user, company) duplicado → domain.ErrDuplicate;
	// tracking_code en colisión → domain.ErrCodeCollision.
	Create(ctx context.Context, link *entity.AffiliateLink) error
	GetByUserAndCompany(ctx context.Context, userID, companyID string) (*entity.AffiliateLink, error)
	GetByTrackingCode(ctx context.Context, code string) (*entity.AffiliateLink, error)
	ListByUser(ctx context.Context, userID string) ([]LinkWithCompany, error)
	// IncrementClicks suma 1 al contador de forma atómica en el store.
	// Devuelve false (sin error) si el tracking code no resuelve: el
	// endpoint público de tracking es un no-op ante códigos desconocidos.
	IncrementClicks(ctx context.Context, trackingCode string) (bool, error)
	// IncrementConversions suma 1 al contador del enlace; se invoca dentro
	// de la transacción que inserta la fila del ledger.
	IncrementConversions(ctx context.Context, linkID string) error
	Totals(ctx context.Context, userID string) (LinkTotals, error)
	// TopByPerformance ordena por (conversions DESC, clicks DESC): el número
	// de conversiones domina sobre el volumen de clics como señal.
	TopByPerformance(ctx context.Context, userID string, limit int) ([]LinkWithCompany, error)
}
