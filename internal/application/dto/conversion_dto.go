package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordConversionRequest entrada del webhook del anunciante.
// El anunciante solo conoce el tracking code que viajó en ?ref=.
type RecordConversionRequest struct {
	TrackingCode string          `json:"tracking_code" validate:"required"`
	Revenue      decimal.Decimal `json:"revenue" validate:"required"`
}

// UpdateConversionStatusRequest transición de estado del ledger.
type UpdateConversionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected paid"`
}

// ConversionResponse fila del ledger de conversiones.
type ConversionResponse struct {
	ID          string          `json:"id"`
	LinkID      string          `json:"link_id"`
	UserID      string          `json:"user_id"`
	CompanyID   string          `json:"company_id"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commission  decimal.Decimal `json:"commission"`
	Status      string          `json:"status"`
	ConvertedAt time.Time       `json:"converted_at"`
	CompanyName string          `json:"company_name,omitempty"`
}
