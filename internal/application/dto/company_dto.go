package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyResponse salida de una empresa partner.
type CompanyResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CommissionType string          `json:"commission_type"` // percentage | fixed
	PhoneNumber    string          `json:"phone_number,omitempty"`
	TrackingURL    string          `json:"tracking_url"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
