package controllers

import (
	"github.com/Deinys/SmartHome-Backend/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Controller{}, &models.Entry{})
}
