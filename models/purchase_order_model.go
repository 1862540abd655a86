package models

import (
	"time"

	"inventory-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderStatus string

const (
	POStatusDraft             PurchaseOrderStatus = "draft"
	POStatusSent              PurchaseOrderStatus = "sent"
	POStatusConfirmed         PurchaseOrderStatus = "confirmed"
	POStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	POStatusReceived          PurchaseOrderStatus = "received"
	POStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// Sendable reports whether the order can move to sent.
func (s PurchaseOrderStatus) Sendable() bool {
	return s == POStatusDraft
}

// Confirmable reports whether the order can move to confirmed.
func (s PurchaseOrderStatus) Confirmable() bool {
	return s == POStatusSent
}

// Cancellable: once any quantity has been received the order can no
// longer be cancelled.
func (s PurchaseOrderStatus) Cancellable() bool {
	switch s {
	case POStatusDraft, POStatusSent, POStatusConfirmed:
		return true
	}
	return false
}

// Receivable reports whether goods may be received against the order.
func (s PurchaseOrderStatus) Receivable() bool {
	switch s {
	case POStatusSent, POStatusConfirmed, POStatusPartiallyReceived:
		return true
	}
	return false
}

type PurchaseOrder struct {
	ID                 types.SnowflakeID   `json:"ID" gorm:"primaryKey"`
	OrderNumber        string              `json:"order_number" gorm:"uniqueIndex;not null"`
	SupplierID         types.SnowflakeID   `json:"supplier_id" gorm:"index;not null"`
	Status             PurchaseOrderStatus `json:"status" gorm:"size:30;default:draft"`
	OrderDate          time.Time           `json:"order_date"`
	ExpectedDate       *time.Time          `json:"expected_date" gorm:"default:null"`
	ActualDeliveryDate *time.Time          `json:"actual_delivery_date" gorm:"default:null"`
	Lines              []PurchaseOrderLine `json:"lines" gorm:"foreignKey:PurchaseOrderID"`
	Subtotal           decimal.Decimal     `json:"subtotal" gorm:"type:decimal(20,4);default:0"`
	Tax                decimal.Decimal     `json:"tax" gorm:"type:decimal(20,4);default:0"`
	Shipping           decimal.Decimal     `json:"shipping" gorm:"type:decimal(20,4);default:0"`
	Total              decimal.Decimal     `json:"total" gorm:"type:decimal(20,4);default:0"`
	Notes              string              `json:"notes"`
	Version            int                 `json:"-" gorm:"default:0"`
	CreatedBy          string              `json:"created_by"`
	UpdatedBy          string              `json:"updated_by"`
	CreatedAt          time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt      `json:"-" gorm:"index"`
}

type PurchaseOrderLine struct {
	ID               types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	PurchaseOrderID  types.SnowflakeID `json:"purchase_order_id" gorm:"index;not null"`
	ItemID           types.SnowflakeID `json:"item_id" gorm:"index;not null"`
	QuantityOrdered  int               `json:"quantity_ordered" gorm:"not null"`
	QuantityReceived int               `json:"quantity_received" gorm:"default:0"`
	UnitPrice        decimal.Decimal   `json:"unit_price" gorm:"type:decimal(20,4);default:0"`
	CreatedAt        time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// Outstanding is the quantity still expected on this line.
func (l *PurchaseOrderLine) Outstanding() int {
	return l.QuantityOrdered - l.QuantityReceived
}

// ComputeTotals recalculates Subtotal and Total from the lines.
func (po *PurchaseOrder) ComputeTotals() {
	subtotal := decimal.Zero
	for _, line := range po.Lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantityOrdered))))
	}
	po.Subtotal = subtotal
	po.Total = subtotal.Add(po.Tax).Add(po.Shipping)
}

// FindLine returns the line for itemID, or nil.
func (po *PurchaseOrder) FindLine(itemID types.SnowflakeID) *PurchaseOrderLine {
	for i := range po.Lines {
		if po.Lines[i].ItemID == itemID {
			return &po.Lines[i]
		}
	}
	return nil
}

// ReceiptStatus derives the status implied by the lines' receipt state.
// It returns the current status unchanged when nothing has been received.
func (po *PurchaseOrder) ReceiptStatus() PurchaseOrderStatus {
	if len(po.Lines) == 0 {
		return po.Status
	}

	full := true
	any := false
	for _, line := range po.Lines {
		if line.QuantityReceived < line.QuantityOrdered {
			full = false
		}
		if line.QuantityReceived > 0 {
			any = true
		}
	}

	switch {
	case full:
		return POStatusReceived
	case any:
		return POStatusPartiallyReceived
	default:
		return po.Status
	}
}
