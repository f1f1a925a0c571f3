package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Company{},
		&domain.User{},
		&domain.Product{},
		&domain.Question{},
		&domain.Answer{},
		&domain.Report{},
	)
}
