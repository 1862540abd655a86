package services

import (
	"context"
	"errors"
	"fmt"

	"inventory-app/config"
	"inventory-app/controllers/idgen"
	"inventory-app/models"
	"inventory-app/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// maxMovementRetries bounds the internal optimistic-lock retry loop.
// The per-item mutex already serializes in-process callers, so the
// version check only trips when another process writes the same row.
const maxMovementRetries = 3

// StockService is the only writer of StockItem.CurrentStock. Every
// quantity change appends exactly one ledger entry and updates the
// item in the same atomic unit, serialized per item.
type StockService struct {
	store StockStore
	locks *KeyedMutex
	log   *logrus.Logger
}

func NewStockService(store StockStore) *StockService {
	return &StockService{
		store: store,
		locks: NewKeyedMutex(),
		log:   config.GetLogger(),
	}
}

type ReceiveStockInput struct {
	ItemID         types.SnowflakeID
	Quantity       int
	UnitCost       *decimal.Decimal
	NewCostPrice   *decimal.Decimal
	Reference      string
	Notes          string
	PerformedBy    string
	IdempotencyKey string
}

type IssueStockInput struct {
	ItemID         types.SnowflakeID
	Quantity       int
	Reference      string
	Notes          string
	PerformedBy    string
	IdempotencyKey string
}

type AdjustStockInput struct {
	ItemID         types.SnowflakeID
	Delta          int
	Type           models.MovementType
	Reason         string
	Reference      string
	Notes          string
	PerformedBy    string
	IdempotencyKey string
}

// movement is the normalized form all three operations reduce to.
type movement struct {
	itemID       types.SnowflakeID
	delta        int
	movementType models.MovementType
	reason       string
	reference    string
	cost         *decimal.Decimal
	newCostPrice *decimal.Decimal
	performedBy  string
	key          string
}

// Receive records an inbound movement. Increases are unbounded.
// NewCostPrice, when set, overwrites the item cost price; the service
// never averages costs on its own.
func (s *StockService) Receive(ctx context.Context, in ReceiveStockInput) (*models.StockItem, *models.LedgerEntry, error) {
	if in.Quantity <= 0 {
		return nil, nil, NewValidationError("quantity", "must be greater than zero")
	}
	if in.PerformedBy == "" {
		return nil, nil, NewValidationError("performed_by", "actor is required")
	}
	return s.apply(ctx, movement{
		itemID:       in.ItemID,
		delta:        in.Quantity,
		movementType: models.MovementInbound,
		reason:       in.Notes,
		reference:    in.Reference,
		cost:         in.UnitCost,
		newCostPrice: in.NewCostPrice,
		performedBy:  in.PerformedBy,
		key:          in.IdempotencyKey,
	})
}

// Issue records an outbound movement. Fails with ErrInsufficientStock
// when the on-hand quantity cannot cover it; nothing is written then.
func (s *StockService) Issue(ctx context.Context, in IssueStockInput) (*models.StockItem, *models.LedgerEntry, error) {
	if in.Quantity <= 0 {
		return nil, nil, NewValidationError("quantity", "must be greater than zero")
	}
	if in.PerformedBy == "" {
		return nil, nil, NewValidationError("performed_by", "actor is required")
	}
	return s.apply(ctx, movement{
		itemID:       in.ItemID,
		delta:        -in.Quantity,
		movementType: models.MovementOutbound,
		reason:       in.Notes,
		reference:    in.Reference,
		performedBy:  in.PerformedBy,
		key:          in.IdempotencyKey,
	})
}

// Adjust records a signed correction. The movement type tags the entry
// as adjustment, return, damage or transfer; all four share this path.
func (s *StockService) Adjust(ctx context.Context, in AdjustStockInput) (*models.StockItem, *models.LedgerEntry, error) {
	if in.Delta == 0 {
		return nil, nil, NewValidationError("delta", "must not be zero")
	}
	if in.PerformedBy == "" {
		return nil, nil, NewValidationError("performed_by", "actor is required")
	}
	movementType := in.Type
	if movementType == "" {
		movementType = models.MovementAdjustment
	}
	switch movementType {
	case models.MovementAdjustment, models.MovementReturn, models.MovementDamage, models.MovementTransfer:
	default:
		return nil, nil, NewValidationError("type", "unsupported movement type %q", in.Type)
	}
	return s.apply(ctx, movement{
		itemID:       in.ItemID,
		delta:        in.Delta,
		movementType: movementType,
		reason:       in.Reason,
		reference:    in.Reference,
		performedBy:  in.PerformedBy,
		key:          in.IdempotencyKey,
	})
}

// HasMovementKey reports whether an idempotency key was already applied.
func (s *StockService) HasMovementKey(ctx context.Context, key string) (bool, error) {
	return s.store.HasLedgerKey(ctx, key)
}

// apply runs the read-compute-write protocol under the per-item lock:
// load the snapshot, compute the new quantity, reject negatives, then
// persist entry and item together with a version check.
func (s *StockService) apply(ctx context.Context, m movement) (*models.StockItem, *models.LedgerEntry, error) {
	unlock := s.locks.Lock(m.itemID.Int64())
	defer unlock()

	for attempt := 0; attempt < maxMovementRetries; attempt++ {
		item, err := s.store.GetItem(ctx, m.itemID)
		if err != nil {
			return nil, nil, err
		}

		if m.key != "" {
			applied, err := s.store.HasLedgerKey(ctx, m.key)
			if err != nil {
				return nil, nil, fmt.Errorf("idempotency check: %w", err)
			}
			if applied {
				return item, nil, ErrDuplicateReceipt
			}
		}

		newQuantity := item.CurrentStock + m.delta
		if newQuantity < 0 {
			return nil, nil, fmt.Errorf("item %s has %d on hand, movement of %d: %w",
				item.PartNumber, item.CurrentStock, m.delta, ErrInsufficientStock)
		}

		entry := &models.LedgerEntry{
			ID:               types.SnowflakeID(idgen.GenerateID()),
			ItemID:           item.ID,
			Type:             m.movementType,
			QuantityDelta:    m.delta,
			PreviousQuantity: item.CurrentStock,
			NewQuantity:      newQuantity,
			Reason:           m.reason,
			Reference:        m.reference,
			Cost:             m.cost,
			PerformedBy:      m.performedBy,
		}
		if m.key != "" {
			key := m.key
			entry.IdempotencyKey = &key
		}

		expectedVersion := item.Version
		item.CurrentStock = newQuantity
		item.Version = expectedVersion + 1
		item.UpdatedBy = m.performedBy
		if m.newCostPrice != nil {
			item.CostPrice = *m.newCostPrice
		}

		err = s.store.ApplyMovement(ctx, item, entry, expectedVersion)
		if errors.Is(err, ErrConcurrencyConflict) {
			s.log.WithFields(logrus.Fields{
				"item_id": item.ID.String(),
				"attempt": attempt + 1,
			}).Warn("stock movement version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		s.log.WithFields(logrus.Fields{
			"item_id":      item.ID.String(),
			"type":         string(m.movementType),
			"delta":        m.delta,
			"new_quantity": newQuantity,
			"reference":    m.reference,
			"performed_by": m.performedBy,
		}).Info("stock movement applied")

		return item, entry, nil
	}

	return nil, nil, ErrConcurrencyConflict
}
