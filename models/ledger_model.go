package models

import (
	"errors"
	"time"

	"inventory-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MovementType string

const (
	MovementInbound    MovementType = "inbound"
	MovementOutbound   MovementType = "outbound"
	MovementAdjustment MovementType = "adjustment"
	MovementReturn     MovementType = "return"
	MovementDamage     MovementType = "damage"
	MovementTransfer   MovementType = "transfer"
)

func (m MovementType) Valid() bool {
	switch m {
	case MovementInbound, MovementOutbound, MovementAdjustment,
		MovementReturn, MovementDamage, MovementTransfer:
		return true
	}
	return false
}

// LedgerEntry is the immutable audit record of one stock quantity change.
// Entries are only ever appended; the sum of QuantityDelta over an item's
// entries must always equal the item's CurrentStock.
type LedgerEntry struct {
	ID               types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	ItemID           types.SnowflakeID `json:"item_id" gorm:"index;not null"`
	Type             MovementType      `json:"type" gorm:"size:20;not null"`
	QuantityDelta    int               `json:"quantity_delta" gorm:"not null"`
	PreviousQuantity int               `json:"previous_quantity" gorm:"not null"`
	NewQuantity      int               `json:"new_quantity" gorm:"not null"`
	Reason           string            `json:"reason"`
	Reference        string            `json:"reference" gorm:"index"`
	Cost             *decimal.Decimal  `json:"cost" gorm:"type:decimal(20,4);default:null"`
	PerformedBy      string            `json:"performed_by" gorm:"not null"`
	IdempotencyKey   *string           `json:"-" gorm:"uniqueIndex;size:191;default:null"`
	CreatedAt        time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

var ErrLedgerImmutable = errors.New("ledger entries are append-only")

// The ledger is an audit trail. Reject any update or delete that reaches
// the ORM layer, whatever code path tried it.
func (e *LedgerEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrLedgerImmutable
}

func (e *LedgerEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrLedgerImmutable
}
