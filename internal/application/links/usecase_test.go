package links_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/affiliate-portal/internal/application/links"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) GetActiveByID(_ context.Context, id string) (*entity.Company, error) {
	c := f.companies[id]
	if c == nil || c.Status != entity.CompanyActive {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCompanyRepo) ListActive(_ context.Context, _ repository.CompanyFilter) ([]*entity.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) ListCategories(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeLinkRepo struct {
	byPair map[string]*entity.AffiliateLink // user|company
	byCode map[string]*entity.AffiliateLink

	// createErrs se consume en orden en cada Create antes de persistir;
	// permite simular carreras y colisiones.
	createErrs []error
	creates    int

	// raceWinner simula a otro request comiteando el par: al forzar un
	// ErrDuplicate el winner queda visible para la relectura.
	raceWinner *entity.AffiliateLink
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		byPair: make(map[string]*entity.AffiliateLink),
		byCode: make(map[string]*entity.AffiliateLink),
	}
}

func pairKey(userID, companyID string) string { return userID + "|" + companyID }

func (f *fakeLinkRepo) Create(_ context.Context, link *entity.AffiliateLink) error {
	f.creates++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			if err == domain.ErrDuplicate && f.raceWinner != nil {
				f.byPair[pairKey(f.raceWinner.UserID, f.raceWinner.CompanyID)] = f.raceWinner
				f.byCode[f.raceWinner.TrackingCode] = f.raceWinner
			}
			return err
		}
	}
	if _, ok := f.byPair[pairKey(link.UserID, link.CompanyID)]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := f.byCode[link.TrackingCode]; ok {
		return domain.ErrCodeCollision
	}
	f.byPair[pairKey(link.UserID, link.CompanyID)] = link
	f.byCode[link.TrackingCode] = link
	return nil
}

func (f *fakeLinkRepo) GetByUserAndCompany(_ context.Context, userID, companyID string) (*entity.AffiliateLink, error) {
	return f.byPair[pairKey(userID, companyID)], nil
}

func (f *fakeLinkRepo) GetByTrackingCode(_ context.Context, code string) (*entity.AffiliateLink, error) {
	return f.byCode[code], nil
}

func (f *fakeLinkRepo) ListByUser(_ context.Context, _ string) ([]repository.LinkWithCompany, error) {
	return nil, nil
}

func (f *fakeLinkRepo) IncrementClicks(_ context.Context, trackingCode string) (bool, error) {
	l, ok := f.byCode[trackingCode]
	if !ok {
		return false, nil
	}
	l.Clicks++
	return true, nil
}

func (f *fakeLinkRepo) IncrementConversions(_ context.Context, _ string) error { return nil }

func (f *fakeLinkRepo) Totals(_ context.Context, _ string) (repository.LinkTotals, error) {
	return repository.LinkTotals{}, nil
}

func (f *fakeLinkRepo) TopByPerformance(_ context.Context, _ string, _ int) ([]repository.LinkWithCompany, error) {
	return nil, nil
}

func testCompany(id, status string) *entity.Company {
	return &entity.Company{
		ID:             id,
		Name:           "オンライン英会話",
		Category:       "教育",
		CommissionRate: decimal.NewFromInt(15),
		CommissionType: entity.CommissionPercentage,
		PhoneNumber:    "050-1234-5678",
		TrackingURL:    "https://online-english.example.com",
		Status:         status,
		CreatedAt:      time.Now(),
	}
}

func buildUseCase(company *entity.Company) (*links.LinkUseCase, *fakeLinkRepo) {
	linkRepo := newFakeLinkRepo()
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	if company != nil {
		companyRepo.companies[company.ID] = company
	}
	return links.NewLinkUseCase(linkRepo, companyRepo), linkRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_CreaEnlaceConCodeYURL(t *testing.T) {
	uc, _ := buildUseCase(testCompany("co-1", entity.CompanyActive))

	out, created, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, out.TrackingCode, 8, "el tracking code debe tener 8 caracteres")
	assert.Equal(t, "https://online-english.example.com?ref="+out.TrackingCode, out.GeneratedURL)
	assert.Equal(t, "user-1", out.UserID)
	assert.Equal(t, "co-1", out.CompanyID)
	assert.Equal(t, "オンライン英会話", out.CompanyName)
}

func TestIssue_EnmascaraTelefonoPorEnlace(t *testing.T) {
	uc, _ := buildUseCase(testCompany("co-1", entity.CompanyActive))

	out, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	require.NotNil(t, out.PhoneNumber, "empresa con teléfono debe producir número enmascarado")
	assert.Regexp(t, `^050-1234-\d{4}$`, *out.PhoneNumber)
}

func TestIssue_SinTelefonoBase_EnlaceSinTelefono(t *testing.T) {
	company := testCompany("co-1", entity.CompanyActive)
	company.PhoneNumber = ""
	uc, _ := buildUseCase(company)

	out, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	assert.Nil(t, out.PhoneNumber)
}

func TestIssue_EmpresaInexistente_Retorna404(t *testing.T) {
	uc, _ := buildUseCase(nil)

	_, _, err := uc.Issue(context.Background(), "user-1", "co-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_EmpresaInactiva_Retorna404(t *testing.T) {
	uc, _ := buildUseCase(testCompany("co-1", entity.CompanyInactive))

	_, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Idempotencia: la segunda emisión del mismo par devuelve el mismo enlace.
func TestIssue_MismoParDevuelveEnlaceExistente(t *testing.T) {
	uc, repo := buildUseCase(testCompany("co-1", entity.CompanyActive))

	first, created, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	assert.False(t, created, "la segunda emisión no debe crear")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TrackingCode, second.TrackingCode)
	assert.Equal(t, 1, repo.creates, "solo debe haberse intentado un insert")
}

func TestIssue_UsuariosDistintos_CodesDistintos(t *testing.T) {
	uc, _ := buildUseCase(testCompany("co-1", entity.CompanyActive))

	a, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	b, _, err := uc.Issue(context.Background(), "user-2", "co-1")
	require.NoError(t, err)
	assert.NotEqual(t, a.TrackingCode, b.TrackingCode)
}

// Carrera por el par: otro request insertó entre el chequeo y el insert.
// El perdedor debe releer y devolver el enlace del ganador.
func TestIssue_CarreraPorElPar_DevuelveGanador(t *testing.T) {
	uc, repo := buildUseCase(testCompany("co-1", entity.CompanyActive))

	repo.createErrs = []error{domain.ErrDuplicate}
	repo.raceWinner = &entity.AffiliateLink{
		ID: "link-winner", UserID: "user-1", CompanyID: "co-1",
		TrackingCode: "aabbccdd", GeneratedURL: "https://online-english.example.com?ref=aabbccdd",
		CreatedAt: time.Now(),
	}

	got, created, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	assert.False(t, created, "el perdedor de la carrera no crea")
	assert.Equal(t, "link-winner", got.ID)
	assert.Equal(t, "aabbccdd", got.TrackingCode)
}

// Colisión de tracking code: se reintenta con un código fresco.
func TestIssue_ColisionDeCode_Reintenta(t *testing.T) {
	uc, repo := buildUseCase(testCompany("co-1", entity.CompanyActive))
	repo.createErrs = []error{domain.ErrCodeCollision, domain.ErrCodeCollision}

	out, created, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, out.TrackingCode, 8)
	assert.Equal(t, 3, repo.creates, "dos colisiones + un insert exitoso")
}

func TestIssue_ColisionesAgotadas_Falla(t *testing.T) {
	uc, repo := buildUseCase(testCompany("co-1", entity.CompanyActive))
	repo.createErrs = []error{domain.ErrCodeCollision, domain.ErrCodeCollision, domain.ErrCodeCollision}

	_, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	assert.ErrorIs(t, err, domain.ErrCodeCollision)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TrackClick
// ──────────────────────────────────────────────────────────────────────────────

func TestTrackClick_IncrementaContador(t *testing.T) {
	uc, repo := buildUseCase(testCompany("co-1", entity.CompanyActive))
	out, _, err := uc.Issue(context.Background(), "user-1", "co-1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		found, err := uc.TrackClick(context.Background(), out.TrackingCode)
		require.NoError(t, err)
		assert.True(t, found)
	}
	assert.Equal(t, int64(3), repo.byCode[out.TrackingCode].Clicks)
}

// Código desconocido: no-op sin error, el endpoint público no filtra códigos.
func TestTrackClick_CodeDesconocido_NoOpSinError(t *testing.T) {
	uc, _ := buildUseCase(testCompany("co-1", entity.CompanyActive))

	found, err := uc.TrackClick(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.False(t, found)
}
