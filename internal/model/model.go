package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Flipbook":
		return db.AutoMigrate(Flipbook{})
	}
	return nil
}
