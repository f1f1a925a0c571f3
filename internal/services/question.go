package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/transparency-backend/internal/data/db"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type CreateQuestionInput struct {
	QuestionText     string
	QuestionType     string
	Metadata         json.RawMessage
	OrderIndex       *int
	ParentQuestionID *uuid.UUID
}

// QuestionService inserts questions directly, bypassing ingestion dedupe.
// The storage unique index still rejects normalized duplicates.
type QuestionService interface {
	Create(ctx context.Context, productID uuid.UUID, in CreateQuestionInput) (*domain.Question, error)
}

type questionService struct {
	log          *logger.Logger
	productRepo  repos.ProductRepo
	questionRepo repos.QuestionRepo
}

func NewQuestionService(log *logger.Logger, productRepo repos.ProductRepo, questionRepo repos.QuestionRepo) QuestionService {
	return &questionService{
		log:          log.With("service", "QuestionService"),
		productRepo:  productRepo,
		questionRepo: questionRepo,
	}
}

func (qs *questionService) Create(ctx context.Context, productID uuid.UUID, in CreateQuestionInput) (*domain.Question, error) {
	if strings.TrimSpace(in.QuestionText) == "" || strings.TrimSpace(in.QuestionType) == "" {
		return nil, apierr.Validation("question_fields_required", errors.New("question_text and question_type required"))
	}

	ok, err := qs.productRepo.Exists(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return nil, apierr.NotFound("product_not_found", errors.New("product not found"))
	}

	q := &domain.Question{
		ProductID:        productID,
		QuestionText:     in.QuestionText,
		QuestionType:     domain.QuestionType(strings.TrimSpace(in.QuestionType)),
		Metadata:         jsonOrNil(in.Metadata),
		ParentQuestionID: in.ParentQuestionID,
	}
	if in.OrderIndex != nil {
		q.OrderIndex = *in.OrderIndex
	}

	if _, err := qs.questionRepo.Create(ctx, nil, []*domain.Question{q}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("question_exists", errors.New("question already exists for product"))
		}
		return nil, fmt.Errorf("create question: %w", err)
	}
	if !q.QuestionType.Known() {
		qs.log.Debug("Stored question with custom type", "product_id", productID.String(), "question_type", string(q.QuestionType))
	}
	return q, nil
}
