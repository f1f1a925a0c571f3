package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type AnswerInput struct {
	QuestionID *string
	AnswerText *string
	AnswerJSON json.RawMessage
}

type AnswerService interface {
	CreateBatch(ctx context.Context, productID uuid.UUID, inputs []AnswerInput) ([]*domain.Answer, error)
}

type answerService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	answerRepo  repos.AnswerRepo
	now         func() time.Time
}

func NewAnswerService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, answerRepo repos.AnswerRepo) AnswerService {
	return &answerService{
		db:          db,
		log:         log.With("service", "AnswerService"),
		productRepo: productRepo,
		answerRepo:  answerRepo,
		now:         time.Now,
	}
}

// CreateBatch stores all answers in one transaction. A question id that is
// not a well-formed uuid is stored as null rather than rejected. Answers in a
// batch get strictly increasing answered_at values in submission order.
func (as *answerService) CreateBatch(ctx context.Context, productID uuid.UUID, inputs []AnswerInput) ([]*domain.Answer, error) {
	ok, err := as.productRepo.Exists(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return nil, apierr.NotFound("product_not_found", errors.New("product not found"))
	}
	if len(inputs) == 0 {
		return []*domain.Answer{}, nil
	}

	answers := make([]*domain.Answer, 0, len(inputs))
	unlinked := 0
	base := as.now().UTC()
	for i, in := range inputs {
		a := &domain.Answer{
			ProductID:  productID,
			AnswerText: in.AnswerText,
			AnswerJSON: jsonOrNil(in.AnswerJSON),
			AnsweredAt: base.Add(time.Duration(i) * time.Microsecond),
		}
		if in.QuestionID != nil {
			if qid, ok := parseStrictUUID(*in.QuestionID); ok {
				a.QuestionID = &qid
			} else {
				unlinked++
			}
		}
		answers = append(answers, a)
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, cErr := as.answerRepo.Create(ctx, tx, answers)
		return cErr
	})
	if err != nil {
		return nil, fmt.Errorf("create answers: %w", err)
	}
	if unlinked > 0 {
		as.log.Debug("Stored answers without a question reference", "product_id", productID.String(), "count", unlinked)
	}
	return answers, nil
}
