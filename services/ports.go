package services

import (
	"context"

	"inventory-app/models"
	"inventory-app/types"
)

// StockStore persists stock items together with their ledger. The
// gorm implementation lives in the repositories package; tests use
// in-memory fakes.
type StockStore interface {
	// GetItem returns the item or ErrNotFound.
	GetItem(ctx context.Context, id types.SnowflakeID) (*models.StockItem, error)

	// ApplyMovement persists a ledger entry and the updated item as one
	// atomic unit. The item row is only written when its stored version
	// still equals expectedVersion; otherwise ErrConcurrencyConflict is
	// returned and nothing is persisted. A duplicate idempotency key on
	// the entry yields ErrDuplicateReceipt.
	ApplyMovement(ctx context.Context, item *models.StockItem, entry *models.LedgerEntry, expectedVersion int) error

	// HasLedgerKey reports whether a ledger entry with the given
	// idempotency key already exists.
	HasLedgerKey(ctx context.Context, key string) (bool, error)
}

// ItemStore extends StockStore with the catalog operations that never
// touch CurrentStock.
type ItemStore interface {
	StockStore

	// GetItemByPartNumber returns the item or ErrNotFound.
	GetItemByPartNumber(ctx context.Context, partNumber string) (*models.StockItem, error)

	CreateItem(ctx context.Context, item *models.StockItem) error

	// SaveItem writes non-quantity fields. Implementations must not
	// write CurrentStock or Version through this path.
	SaveItem(ctx context.Context, item *models.StockItem) error
}

// OrderStore persists purchase orders with their lines.
type OrderStore interface {
	// GetOrder returns the order with lines preloaded, or ErrNotFound.
	GetOrder(ctx context.Context, id types.SnowflakeID) (*models.PurchaseOrder, error)

	CreateOrder(ctx context.Context, po *models.PurchaseOrder) error

	// SaveOrder writes the order and its lines, guarded by a version
	// check like StockStore.ApplyMovement.
	SaveOrder(ctx context.Context, po *models.PurchaseOrder, expectedVersion int) error

	// NextOrderNumber generates a new unique order number.
	NextOrderNumber(ctx context.Context) (string, error)
}

// SupplierDirectory resolves supplier references.
type SupplierDirectory interface {
	// GetSupplier returns the supplier or ErrNotFound.
	GetSupplier(ctx context.Context, id types.SnowflakeID) (*models.Supplier, error)
}
