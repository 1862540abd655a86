package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-app/config"
	"inventory-app/models"
	"inventory-app/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReceivingService reconciles received quantities against a purchase
// order: it applies each line through the StockService and recomputes
// the order status. It shares the per-order locks of the
// PurchaseOrderService so a receive cannot race a cancel.
type ReceivingService struct {
	orders OrderStore
	stock  *StockService
	locks  *KeyedMutex
	log    *logrus.Logger
}

func NewReceivingService(orders OrderStore, stock *StockService, orderLocks *KeyedMutex) *ReceivingService {
	return &ReceivingService{
		orders: orders,
		stock:  stock,
		locks:  orderLocks,
		log:    config.GetLogger(),
	}
}

type ReceivedLine struct {
	ItemID   types.SnowflakeID `json:"item_id"`
	Quantity int               `json:"quantity"`
}

// Receive applies a batch of received quantities to the order.
//
// All lines are validated before any stock mutation; a malformed batch
// is rejected whole. Each line's stock movement carries an idempotency
// key derived from receiptID, so a retry of the same receipt after a
// mid-batch failure re-applies only the lines that did not make it:
// already-applied lines are detected as duplicates and their received
// quantity is reconciled onto the order without touching stock again.
// When the entire receipt turns out to be already applied, the call
// returns the order together with ErrDuplicateReceipt, which callers
// treat as a no-op success.
func (s *ReceivingService) Receive(ctx context.Context, poID types.SnowflakeID, lines []ReceivedLine, performedBy, receiptID string) (*models.PurchaseOrder, error) {
	if performedBy == "" {
		return nil, NewValidationError("performed_by", "actor is required")
	}
	if len(lines) == 0 {
		return nil, NewValidationError("lines", "at least one received line is required")
	}
	if receiptID == "" {
		receiptID = uuid.NewString()
	}

	unlock := s.locks.Lock(poID.Int64())
	defer unlock()

	po, err := s.orders.GetOrder(ctx, poID)
	if err != nil {
		return nil, err
	}
	if !po.Status.Receivable() {
		return nil, fmt.Errorf("cannot receive against order %s in status %s: %w",
			po.OrderNumber, po.Status, ErrInvalidTransition)
	}

	// Pre-validate the whole batch, and find out which lines a prior
	// attempt of this receipt already applied. Duplicate items are
	// rejected: the per-item idempotency key would suppress the second
	// stock movement while the order count still moved.
	seen := make(map[types.SnowflakeID]bool, len(lines))
	applied := make([]bool, len(lines))
	allApplied := true
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, NewValidationError("lines", "line %d: quantity must be greater than zero", i+1)
		}
		if seen[line.ItemID] {
			return nil, NewValidationError("lines", "line %d: duplicate item %s", i+1, line.ItemID.String())
		}
		seen[line.ItemID] = true
		poLine := po.FindLine(line.ItemID)
		if poLine == nil {
			return nil, NewValidationError("lines", "line %d: item %s is not on order %s", i+1, line.ItemID.String(), po.OrderNumber)
		}

		applied[i], err = s.stock.HasMovementKey(ctx, receiptKey(receiptID, line.ItemID))
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if applied[i] {
			// Applied lines passed this check on the attempt that wrote
			// them, and the order still carries its pre-receipt counts
			// because the order is only saved after all lines succeed.
			continue
		}
		allApplied = false

		if line.Quantity+poLine.QuantityReceived > poLine.QuantityOrdered {
			return nil, NewValidationError("lines",
				"line %d: receiving %d would exceed ordered quantity (%d of %d already received)",
				i+1, line.Quantity, poLine.QuantityReceived, poLine.QuantityOrdered)
		}
	}

	if allApplied {
		// Whole receipt was applied by a prior attempt that also
		// persisted the order (the order is saved last).
		return po, ErrDuplicateReceipt
	}

	for i, line := range lines {
		poLine := po.FindLine(line.ItemID)

		if !applied[i] {
			_, _, err := s.stock.Receive(ctx, ReceiveStockInput{
				ItemID:         line.ItemID,
				Quantity:       line.Quantity,
				UnitCost:       &poLine.UnitPrice,
				Reference:      po.OrderNumber,
				Notes:          "purchase order receipt",
				PerformedBy:    performedBy,
				IdempotencyKey: receiptKey(receiptID, line.ItemID),
			})
			if err != nil && !errors.Is(err, ErrDuplicateReceipt) {
				// Already-applied lines stay durable in the ledger; the
				// caller retries with the same receiptID to converge.
				return nil, fmt.Errorf("receive line for item %s: %w", line.ItemID.String(), err)
			}
		}

		// For duplicate lines the stock already moved on a prior attempt
		// that crashed before the order save, so the received quantity
		// still has to be reconciled here.
		poLine.QuantityReceived += line.Quantity
	}

	po.Status = po.ReceiptStatus()
	if po.Status == models.POStatusReceived && po.ActualDeliveryDate == nil {
		now := time.Now()
		po.ActualDeliveryDate = &now
	}
	po.UpdatedBy = performedBy

	expectedVersion := po.Version
	po.Version = expectedVersion + 1
	if err := s.orders.SaveOrder(ctx, po, expectedVersion); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": po.OrderNumber,
		"receipt_id":   receiptID,
		"lines":        len(lines),
		"status":       string(po.Status),
	}).Info("purchase order receipt applied")

	return po, nil
}

func receiptKey(receiptID string, itemID types.SnowflakeID) string {
	return "receipt:" + receiptID + ":" + itemID.String()
}
