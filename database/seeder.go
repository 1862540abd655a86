package database

import (
	"inventory-app/controllers/idgen"
	"inventory-app/models"
	"inventory-app/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser creates the default admin account on first boot.
func SeedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash seed password")
		return
	}

	admin := models.User{
		ID:       types.SnowflakeID(idgen.GenerateID()),
		Username: "admin",
		Password: string(hashed),
		Name:     "Administrator",
		Role:     "admin",
		IsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		logrus.WithError(err).Error("failed to seed admin user")
		return
	}
	logrus.Info("seeded default admin user")
}
