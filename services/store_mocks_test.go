package services

import (
	"context"
	"fmt"
	"sync"

	"inventory-app/models"
	"inventory-app/types"
)

// memoryStockStore is an in-memory ItemStore used by the service
// tests. It mirrors the repository contract: copies out on read,
// version check on write, entry + item persisted together.
type memoryStockStore struct {
	mu      sync.Mutex
	items   map[types.SnowflakeID]*models.StockItem
	entries []*models.LedgerEntry
	keys    map[string]bool

	// failNextApply makes the next ApplyMovement for the item fail
	// once, to simulate a store outage mid-batch.
	failNextApply map[types.SnowflakeID]error
}

func newMemoryStockStore() *memoryStockStore {
	return &memoryStockStore{
		items:         make(map[types.SnowflakeID]*models.StockItem),
		keys:          make(map[string]bool),
		failNextApply: make(map[types.SnowflakeID]error),
	}
}

func (s *memoryStockStore) putItem(item *models.StockItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *item
	s.items[item.ID] = &copied
}

func (s *memoryStockStore) GetItem(ctx context.Context, id types.SnowflakeID) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("stock item %s: %w", id.String(), ErrNotFound)
	}
	copied := *item
	return &copied, nil
}

func (s *memoryStockStore) GetItemByPartNumber(ctx context.Context, partNumber string) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.PartNumber == partNumber {
			copied := *item
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("part number %s: %w", partNumber, ErrNotFound)
}

func (s *memoryStockStore) CreateItem(ctx context.Context, item *models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *memoryStockStore) SaveItem(ctx context.Context, item *models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("stock item %s: %w", item.ID.String(), ErrNotFound)
	}
	// Catalog fields only; stock and version stay as stored.
	currentStock, version := stored.CurrentStock, stored.Version
	copied := *item
	copied.CurrentStock = currentStock
	copied.Version = version
	s.items[item.ID] = &copied
	return nil
}

func (s *memoryStockStore) ApplyMovement(ctx context.Context, item *models.StockItem, entry *models.LedgerEntry, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failNextApply[item.ID]; ok {
		delete(s.failNextApply, item.ID)
		return err
	}

	stored, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("stock item %s: %w", item.ID.String(), ErrNotFound)
	}
	if stored.Version != expectedVersion {
		return ErrConcurrencyConflict
	}
	if entry.IdempotencyKey != nil {
		if s.keys[*entry.IdempotencyKey] {
			return ErrDuplicateReceipt
		}
		s.keys[*entry.IdempotencyKey] = true
	}

	entryCopy := *entry
	s.entries = append(s.entries, &entryCopy)
	itemCopy := *item
	s.items[item.ID] = &itemCopy
	return nil
}

func (s *memoryStockStore) HasLedgerKey(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *memoryStockStore) entriesForItem(id types.SnowflakeID) []*models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.LedgerEntry
	for _, e := range s.entries {
		if e.ItemID == id {
			out = append(out, e)
		}
	}
	return out
}

func (s *memoryStockStore) deltaSum(id types.SnowflakeID) int {
	total := 0
	for _, e := range s.entriesForItem(id) {
		total += e.QuantityDelta
	}
	return total
}

// memoryOrderStore is the in-memory OrderStore for the tests.
type memoryOrderStore struct {
	mu      sync.Mutex
	orders  map[types.SnowflakeID]*models.PurchaseOrder
	nextSeq int
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{orders: make(map[types.SnowflakeID]*models.PurchaseOrder)}
}

func copyOrder(po *models.PurchaseOrder) *models.PurchaseOrder {
	copied := *po
	copied.Lines = make([]models.PurchaseOrderLine, len(po.Lines))
	copy(copied.Lines, po.Lines)
	return &copied
}

func (s *memoryOrderStore) GetOrder(ctx context.Context, id types.SnowflakeID) (*models.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	po, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("purchase order %s: %w", id.String(), ErrNotFound)
	}
	return copyOrder(po), nil
}

func (s *memoryOrderStore) CreateOrder(ctx context.Context, po *models.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[po.ID] = copyOrder(po)
	return nil
}

func (s *memoryOrderStore) SaveOrder(ctx context.Context, po *models.PurchaseOrder, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[po.ID]
	if !ok {
		return fmt.Errorf("purchase order %s: %w", po.ID.String(), ErrNotFound)
	}
	if stored.Version != expectedVersion {
		return ErrConcurrencyConflict
	}
	s.orders[po.ID] = copyOrder(po)
	return nil
}

func (s *memoryOrderStore) NextOrderNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return fmt.Sprintf("PO-TEST-%04d", s.nextSeq), nil
}

// memorySupplierDirectory resolves suppliers from a fixed map.
type memorySupplierDirectory struct {
	suppliers map[types.SnowflakeID]*models.Supplier
}

func newMemorySupplierDirectory(suppliers ...*models.Supplier) *memorySupplierDirectory {
	dir := &memorySupplierDirectory{suppliers: make(map[types.SnowflakeID]*models.Supplier)}
	for _, s := range suppliers {
		dir.suppliers[s.ID] = s
	}
	return dir
}

func (d *memorySupplierDirectory) GetSupplier(ctx context.Context, id types.SnowflakeID) (*models.Supplier, error) {
	supplier, ok := d.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier %s: %w", id.String(), ErrNotFound)
	}
	copied := *supplier
	return &copied, nil
}
