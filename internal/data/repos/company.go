package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type CompanyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, companies []*domain.Company) ([]*domain.Company, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, companyIDs []uuid.UUID) ([]*domain.Company, error)
}

type companyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
	repoLog := baseLog.With("repo", "CompanyRepo")
	return &companyRepo{db: db, log: repoLog}
}

func (r *companyRepo) Create(ctx context.Context, tx *gorm.DB, companies []*domain.Company) ([]*domain.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(companies) == 0 {
		return []*domain.Company{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, companyIDs []uuid.UUID) ([]*domain.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Company
	if len(companyIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", companyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
