package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*domain.Question) ([]*domain.Question, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*domain.Question, error)
	ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Question, error)
	ListTextsByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]string, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (r *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*domain.Question) ([]*domain.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(questions) == 0 {
		return []*domain.Question{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*domain.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Question
	if len(questionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Question
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("order_index ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListTextsByProductID returns the raw stored text of every question of the
// product, in no particular order.
func (r *questionRepo) ListTextsByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	texts := []string{}
	if err := transaction.WithContext(ctx).
		Model(&domain.Question{}).
		Where("product_id = ?", productID).
		Pluck("question_text", &texts).Error; err != nil {
		return nil, err
	}
	return texts, nil
}
