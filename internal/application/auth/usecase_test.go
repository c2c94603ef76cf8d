package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/affiliate-portal/internal/application/auth"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID

	// raceExists fuerza la carrera registro-concurrente: el chequeo previo
	// no ve al usuario pero el insert choca con la constraint UNIQUE.
	raceExists bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.raceExists {
		return domain.ErrUserExists
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsernameOrEmail(_ context.Context, identifier string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	if f.raceExists {
		return false, nil
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func buildUseCase() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "portal"}
	return auth.NewAuthUseCase(repo, cfg), repo
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{Username: "tanaka", Email: "tanaka@example.com", Password: "secreta123"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioYEmiteToken(t *testing.T) {
	uc, repo := buildUseCase()

	out, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "tanaka", out.User.Username)
	assert.Equal(t, "tanaka@example.com", out.User.Email)

	// El token identifica al usuario recién creado.
	userID, err := jwt.Parse("secreto-de-prueba", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)

	// El password se persiste hasheado, nunca en claro.
	stored := repo.users[out.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegister_UsernameOcupado_RechazaDuplicado(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "otro@example.com"
	_, err = uc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegister_EmailOcupado_RechazaDuplicado(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "otro"
	_, err = uc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

// Carrera de registro: el chequeo previo pasa pero el insert choca con la
// constraint UNIQUE. El caso de uso propaga el mismo ErrUserExists.
func TestRegister_CarreraEnElInsert_RechazaDuplicado(t *testing.T) {
	uc, repo := buildUseCase()
	repo.raceExists = true

	_, err := uc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PorUsernameYPorEmail(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	for _, identifier := range []string{"tanaka", "tanaka@example.com"} {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Username: identifier, Password: "secreta123"})
		require.NoError(t, err, "login con %q", identifier)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "tanaka", out.User.Username)
	}
}

// Usuario inexistente y password incorrecto responden idéntico: no se filtra
// cuál de los dos falló.
func TestLogin_CredencialesInvalidas_RespuestaUniforme(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, errBadPass := uc.Login(context.Background(), dto.LoginRequest{Username: "tanaka", Password: "incorrecta"})
	_, errNoUser := uc.Login(context.Background(), dto.LoginRequest{Username: "desconocido", Password: "secreta123"})

	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
}
