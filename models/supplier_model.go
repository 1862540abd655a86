package models

import (
	"time"

	"inventory-app/types"

	"gorm.io/gorm"
)

type Supplier struct {
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	Name          string            `json:"name" gorm:"uniqueIndex;not null"`
	ContactPerson string            `json:"contact_person"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	PaymentTerms  string            `json:"payment_terms"`
	Rating        int               `json:"rating" gorm:"default:3"`
	IsActive      bool              `json:"is_active" gorm:"default:true"`
	CreatedBy     string            `json:"created_by"`
	UpdatedBy     string            `json:"updated_by"`
	CreatedAt     time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt    `json:"-" gorm:"index"`
}
