package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type ReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reports []*domain.Report) ([]*domain.Report, error)
	ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Report, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	repoLog := baseLog.With("repo", "ReportRepo")
	return &reportRepo{db: db, log: repoLog}
}

func (r *reportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*domain.Report) ([]*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(reports) == 0 {
		return []*domain.Report{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Report
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
