package repository

import (
	"context"

	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// UserRepository puerto de persistencia para afiliados.
// Los Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	// Create persiste el usuario. Devuelve domain.ErrUserExists si el
	// username o el email ya están registrados.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByUsernameOrEmail resuelve el identificador de login: el campo
	// username del formulario también acepta el email.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
