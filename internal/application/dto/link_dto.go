package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateLinkRequest entrada de POST /links/generate.
// El nombre del campo (companyId) es el contrato con la SPA existente.
type GenerateLinkRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
}

// LinkResponse salida de un enlace de afiliado, con los campos de la empresa
// que el frontend muestra junto al enlace.
type LinkResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CompanyID    string    `json:"company_id"`
	TrackingCode string    `json:"tracking_code"`
	PhoneNumber  *string   `json:"phone_number"`
	GeneratedURL string    `json:"generated_url"`
	Clicks       int64     `json:"clicks"`
	Conversions  int64     `json:"conversions"`
	CreatedAt    time.Time `json:"created_at"`

	CompanyName    string          `json:"company_name,omitempty"`
	Category       string          `json:"category,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate,omitempty"`
	CommissionType string          `json:"commission_type,omitempty"`
}
