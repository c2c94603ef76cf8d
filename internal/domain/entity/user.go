package entity

import "time"

// User afiliado registrado en el portal. Inmutable tras el registro
// salvo rotación de credencial (no implementada).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
