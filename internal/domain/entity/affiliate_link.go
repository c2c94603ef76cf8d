package entity

import "time"

// AffiliateLink une un User con una Company, identificado por su tracking code.
// Invariante: a lo sumo un enlace por par (user, company); la re-petición
// devuelve el enlace existente sin re-emitir código ni resetear contadores.
//
// Clicks y Conversions son contadores desnormalizados alimentados por la
// ruta de atribución; el ledger de conversiones vive en la tabla conversions.
type AffiliateLink struct {
	ID           string
	UserID       string
	CompanyID    string
	TrackingCode string
	PhoneNumber  *string // número enmascarado por enlace; nil si la empresa no tiene base
	GeneratedURL string
	Clicks       int64
	Conversions  int64
	CreatedAt    time.Time
}
