package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*domain.Answer) ([]*domain.Answer, error)
	ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Answer, error)
	ListWithQuestionText(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.AnswerWithQuestion, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (r *answerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*domain.Answer) ([]*domain.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(answers) == 0 {
		return []*domain.Answer{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Answer
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("answered_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListWithQuestionText left-joins questions so answers whose reference is
// null or dangling are still returned, with a nil QuestionText.
func (r *answerRepo) ListWithQuestionText(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*domain.AnswerWithQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.AnswerWithQuestion{}
	if err := transaction.WithContext(ctx).
		Table("answers AS a").
		Select("a.*, q.question_text AS question_text").
		Joins("LEFT JOIN questions AS q ON q.id = a.question_id").
		Where("a.product_id = ?", productID).
		Order("a.answered_at ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
