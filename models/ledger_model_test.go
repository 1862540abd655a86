package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerEntryIsAppendOnly(t *testing.T) {
	entry := &LedgerEntry{QuantityDelta: 5}

	assert.ErrorIs(t, entry.BeforeUpdate(nil), ErrLedgerImmutable)
	assert.ErrorIs(t, entry.BeforeDelete(nil), ErrLedgerImmutable)
}

func TestMovementTypeValid(t *testing.T) {
	for _, m := range []MovementType{
		MovementInbound, MovementOutbound, MovementAdjustment,
		MovementReturn, MovementDamage, MovementTransfer,
	} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, MovementType("teleport").Valid())
	assert.False(t, MovementType("").Valid())
}
