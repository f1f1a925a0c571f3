package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report records one generation event. Rows are append-only.
type Report struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID         uuid.UUID      `gorm:"type:uuid;column:product_id;not null;index" json:"product_id"`
	CompanyID         *uuid.UUID     `gorm:"type:uuid;column:company_id;index" json:"company_id"`
	ReportJSON        datatypes.JSON `gorm:"column:report_json" json:"report_json"`
	TransparencyScore *float64       `gorm:"column:transparency_score" json:"transparency_score"`
	PDFURL            *string        `gorm:"column:pdf_url" json:"pdf_url"`
	CreatedAt         time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Report) TableName() string { return "reports" }

func (r *Report) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
