package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ledger de conversiones (CHECK de la tabla conversions).
// Máquina de estados: pending → approved | rejected, approved → paid.
const (
	ConversionPending  = "pending"
	ConversionApproved = "approved"
	ConversionRejected = "rejected"
	ConversionPaid     = "paid"
)

// Conversion fila del ledger: un evento de venta/alta atribuible a un enlace.
// La comisión se calcula al crearla y nunca se recalcula desde el revenue.
type Conversion struct {
	ID          string
	LinkID      string
	UserID      string
	CompanyID   string
	Revenue     decimal.Decimal
	Commission  decimal.Decimal
	Status      string // ver constantes Conversion*
	ConvertedAt time.Time
}

// CanTransition informa si el cambio de estado respeta la máquina de estados.
// Una conversión pagada o rechazada es inmutable.
func CanTransition(from, to string) bool {
	switch from {
	case ConversionPending:
		return to == ConversionApproved || to == ConversionRejected
	case ConversionApproved:
		return to == ConversionPaid
	default:
		return false
	}
}

// ValidStatus informa si s es un estado conocido del ledger.
func ValidStatus(s string) bool {
	switch s {
	case ConversionPending, ConversionApproved, ConversionRejected, ConversionPaid:
		return true
	}
	return false
}
