package models

import (
	"time"

	"inventory-app/types"

	"gorm.io/gorm"
)

type User struct {
	ID        types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	Username  string            `json:"username" gorm:"uniqueIndex;not null"`
	Password  string            `json:"-" gorm:"not null"`
	Name      string            `json:"name"`
	Role      string            `json:"role" gorm:"default:staff"`
	IsActive  bool              `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt    `json:"-" gorm:"index"`
}
