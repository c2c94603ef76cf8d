package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comisión (deben coincidir con el CHECK de la tabla companies).
const (
	CommissionPercentage = "percentage" // porcentaje sobre el revenue
	CommissionFixed      = "fixed"      // monto fijo por conversión
)

// Estados de empresa.
const (
	CompanyActive   = "active"
	CompanyInactive = "inactive"
)

// Company empresa anunciante partner. Datos de referencia estáticos:
// esquema de comisión, número de contacto base y plantilla de tracking URL.
type Company struct {
	ID             string
	Name           string
	Category       string
	Description    string
	CommissionRate decimal.Decimal
	CommissionType string // ver constantes Commission*
	PhoneNumber    string // número base; vacío = la empresa no atiende por teléfono
	TrackingURL    string
	Status         string // ver constantes Company*
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
