package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// La máquina de estados del ledger: pending → approved | rejected,
// approved → paid. Todo lo demás está prohibido.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.ConversionPending, entity.ConversionApproved, true},
		{entity.ConversionPending, entity.ConversionRejected, true},
		{entity.ConversionApproved, entity.ConversionPaid, true},

		{entity.ConversionPending, entity.ConversionPaid, false},
		{entity.ConversionPending, entity.ConversionPending, false},
		{entity.ConversionApproved, entity.ConversionRejected, false},
		{entity.ConversionApproved, entity.ConversionPending, false},
		{entity.ConversionRejected, entity.ConversionApproved, false},
		{entity.ConversionRejected, entity.ConversionPaid, false},
		{entity.ConversionPaid, entity.ConversionApproved, false},
		{entity.ConversionPaid, entity.ConversionPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.CanTransition(c.from, c.to),
			"transición %s → %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidStatus("pending"))
	assert.True(t, entity.ValidStatus("approved"))
	assert.True(t, entity.ValidStatus("rejected"))
	assert.True(t, entity.ValidStatus("paid"))
	assert.False(t, entity.ValidStatus("cancelled"))
	assert.False(t, entity.ValidStatus(""))
	assert.False(t, entity.ValidStatus("APPROVED"))
}
