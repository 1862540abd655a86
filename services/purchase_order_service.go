package services

import (
	"context"
	"fmt"
	"time"

	"inventory-app/config"
	"inventory-app/controllers/idgen"
	"inventory-app/models"
	"inventory-app/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PurchaseOrderService owns the order lifecycle: creation in draft and
// the send/confirm/cancel transitions. Receiving is handled by the
// ReceivingService, which shares this service's per-order locks so a
// receive and a cancel on the same order never interleave.
type PurchaseOrderService struct {
	orders    OrderStore
	stock     StockStore
	suppliers SupplierDirectory
	locks     *KeyedMutex
	log       *logrus.Logger
}

func NewPurchaseOrderService(orders OrderStore, stock StockStore, suppliers SupplierDirectory) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:    orders,
		stock:     stock,
		suppliers: suppliers,
		locks:     NewKeyedMutex(),
		log:       config.GetLogger(),
	}
}

// OrderLocks exposes the per-order lock map for the ReceivingService.
func (s *PurchaseOrderService) OrderLocks() *KeyedMutex {
	return s.locks
}

type OrderLineInput struct {
	ItemID    types.SnowflakeID `json:"item_id"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
}

type CreateOrderInput struct {
	SupplierID   types.SnowflakeID
	OrderNumber  string
	Lines        []OrderLineInput
	ExpectedDate *time.Time
	Tax          decimal.Decimal
	Shipping     decimal.Decimal
	Notes        string
	CreatedBy    string
}

// Create validates the input and persists a new order in draft status.
func (s *PurchaseOrderService) Create(ctx context.Context, in CreateOrderInput) (*models.PurchaseOrder, error) {
	supplier, err := s.suppliers.GetSupplier(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier %s: %w", in.SupplierID.String(), err)
	}
	if !supplier.IsActive {
		return nil, NewValidationError("supplier_id", "supplier %s is inactive", supplier.Name)
	}
	if len(in.Lines) == 0 {
		return nil, NewValidationError("lines", "at least one line is required")
	}
	if in.Tax.IsNegative() || in.Shipping.IsNegative() {
		return nil, NewValidationError("tax", "tax and shipping must not be negative")
	}

	seen := make(map[types.SnowflakeID]bool, len(in.Lines))
	lines := make([]models.PurchaseOrderLine, 0, len(in.Lines))
	for i, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, NewValidationError("lines", "line %d: quantity must be greater than zero", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return nil, NewValidationError("lines", "line %d: unit price must not be negative", i+1)
		}
		if seen[line.ItemID] {
			return nil, NewValidationError("lines", "line %d: duplicate item %s", i+1, line.ItemID.String())
		}
		seen[line.ItemID] = true

		item, err := s.stock.GetItem(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("line %d item %s: %w", i+1, line.ItemID.String(), err)
		}
		if !item.IsActive {
			return nil, NewValidationError("lines", "line %d: item %s is inactive", i+1, item.PartNumber)
		}

		lines = append(lines, models.PurchaseOrderLine{
			ID:              types.SnowflakeID(idgen.GenerateID()),
			ItemID:          line.ItemID,
			QuantityOrdered: line.Quantity,
			UnitPrice:       line.UnitPrice,
		})
	}

	orderNumber := in.OrderNumber
	if orderNumber == "" {
		orderNumber, err = s.orders.NextOrderNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate order number: %w", err)
		}
	}

	po := &models.PurchaseOrder{
		ID:           types.SnowflakeID(idgen.GenerateID()),
		OrderNumber:  orderNumber,
		SupplierID:   in.SupplierID,
		Status:       models.POStatusDraft,
		OrderDate:    time.Now(),
		ExpectedDate: in.ExpectedDate,
		Lines:        lines,
		Tax:          in.Tax,
		Shipping:     in.Shipping,
		Notes:        in.Notes,
		CreatedBy:    in.CreatedBy,
		UpdatedBy:    in.CreatedBy,
	}
	po.ComputeTotals()

	if err := s.orders.CreateOrder(ctx, po); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": po.OrderNumber,
		"supplier_id":  po.SupplierID.String(),
		"lines":        len(po.Lines),
		"total":        po.Total.String(),
	}).Info("purchase order created")

	return po, nil
}

// Send moves a draft order to sent.
func (s *PurchaseOrderService) Send(ctx context.Context, id types.SnowflakeID, actor string) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, actor, models.POStatusSent, func(status models.PurchaseOrderStatus) bool {
		return status.Sendable()
	})
}

// Confirm moves a sent order to confirmed.
func (s *PurchaseOrderService) Confirm(ctx context.Context, id types.SnowflakeID, actor string) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, actor, models.POStatusConfirmed, func(status models.PurchaseOrderStatus) bool {
		return status.Confirmable()
	})
}

// Cancel is allowed from draft, sent and confirmed. Nothing was
// received on those, so there are no stock side effects to unwind.
func (s *PurchaseOrderService) Cancel(ctx context.Context, id types.SnowflakeID, actor string) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, actor, models.POStatusCancelled, func(status models.PurchaseOrderStatus) bool {
		return status.Cancellable()
	})
}

func (s *PurchaseOrderService) transition(ctx context.Context, id types.SnowflakeID, actor string, target models.PurchaseOrderStatus, allowed func(models.PurchaseOrderStatus) bool) (*models.PurchaseOrder, error) {
	if actor == "" {
		return nil, NewValidationError("performed_by", "actor is required")
	}

	unlock := s.locks.Lock(id.Int64())
	defer unlock()

	po, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(po.Status) {
		return nil, fmt.Errorf("cannot move order %s from %s to %s: %w",
			po.OrderNumber, po.Status, target, ErrInvalidTransition)
	}

	previous := po.Status
	po.Status = target
	po.UpdatedBy = actor

	expectedVersion := po.Version
	po.Version = expectedVersion + 1
	if err := s.orders.SaveOrder(ctx, po, expectedVersion); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": po.OrderNumber,
		"from":         string(previous),
		"to":           string(target),
		"actor":        actor,
	}).Info("purchase order transition")

	return po, nil
}
