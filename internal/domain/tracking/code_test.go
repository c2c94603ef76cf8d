package tracking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/affiliate-portal/internal/domain/tracking"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests NewCode
// ──────────────────────────────────────────────────────────────────────────────

func TestNewCode_LongitudYCharsetHex(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := tracking.NewCode()
		require.NoError(t, err)
		assert.Len(t, code, tracking.CodeLength, "el code debe tener 8 caracteres")
		for _, c := range code {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
				"el code debe ser hex en minúsculas, got %q", code)
		}
	}
}

func TestNewCode_NoRepiteEnMuestra(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code, err := tracking.NewCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "colisión en muestra pequeña: %s", code)
		seen[code] = true
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests MaskPhone
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: número IP (050) → prefijo y grupo medio intactos, sufijo derivado
// de los 4 primeros caracteres del code (letras hex a charcode % 10).
func TestMaskPhone_NumeroIP_DerivaSufijoDelCode(t *testing.T) {
	// 'a' (97) → 7, '1' → 1, 'b' (98) → 8, '2' → 2
	got := tracking.MaskPhone("050-1234-5678", "a1b2c3d4")
	assert.Equal(t, "050-1234-7182", got)
}

func TestMaskPhone_NumeroIP_CodeSoloDigitos(t *testing.T) {
	got := tracking.MaskPhone("050-9876-5432", "12345678")
	assert.Equal(t, "050-9876-1234", got)
}

func TestMaskPhone_NumeroIP_MismoNumeroDistintoCode(t *testing.T) {
	a := tracking.MaskPhone("050-1234-5678", "a1b2c3d4")
	b := tracking.MaskPhone("050-1234-5678", "ffff0000")
	assert.NotEqual(t, a, b, "codes distintos deben producir sufijos distintos")
	assert.Equal(t, a[:9], b[:9], "prefijo y grupo medio no dependen del code")
}

// Caso 2: free-call (0120/0800) → sin sufijo por enlace, solo se limpia.
func TestMaskPhone_FreeCall_PasaLimpio(t *testing.T) {
	assert.Equal(t, "0120123456", tracking.MaskPhone("0120-123-456", "a1b2c3d4"))
	assert.Equal(t, "0800555666", tracking.MaskPhone("0800-555-666", "a1b2c3d4"))
}

// Caso 3: cualquier otro número → limpio tal cual.
func TestMaskPhone_NumeroGeografico_PasaLimpio(t *testing.T) {
	assert.Equal(t, "0312345678", tracking.MaskPhone("03-1234-5678", "a1b2c3d4"))
}

func TestMaskPhone_BaseVacia_DevuelveVacio(t *testing.T) {
	assert.Equal(t, "", tracking.MaskPhone("", "a1b2c3d4"))
	assert.Equal(t, "", tracking.MaskPhone("---", "a1b2c3d4"))
}
