package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/clients/redis"
	"github.com/yungbote/transparency-backend/internal/data/db"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/platform/normalize"
)

// IngestResult is the outcome of one ingestion batch. Questions holds the
// admitted rows in admission order with OrderIndex 0..n-1.
type IngestResult struct {
	Questions     []*domain.Question
	AllDuplicates bool
	Attempted     int
}

type GenerateRequest struct {
	ProductID         string
	AnsweredQuestions []aigateway.AnsweredQuestion
	ContextText       *string
}

type IngestionService interface {
	// Ingest admits the candidates whose normalized text is new for the
	// product. On a mid-batch write failure it returns the committed result
	// together with a *PartialWriteError.
	Ingest(ctx context.Context, productID uuid.UUID, candidates []aigateway.Candidate) (*IngestResult, error)
	// GenerateQuestions enriches the answered questions, asks the gateway for
	// candidates and ingests them.
	GenerateQuestions(ctx context.Context, req GenerateRequest) (*IngestResult, error)
}

type ingestionService struct {
	log          *logger.Logger
	productRepo  repos.ProductRepo
	questionRepo repos.QuestionRepo
	gateway      aigateway.Gateway
	locker       redis.ProductLocker
}

func NewIngestionService(
	log *logger.Logger,
	productRepo repos.ProductRepo,
	questionRepo repos.QuestionRepo,
	gateway aigateway.Gateway,
	locker redis.ProductLocker,
) IngestionService {
	if locker == nil {
		locker = redis.NewNoopLocker()
	}
	return &ingestionService{
		log:          log.With("service", "IngestionService"),
		productRepo:  productRepo,
		questionRepo: questionRepo,
		gateway:      gateway,
		locker:       locker,
	}
}

func (s *ingestionService) GenerateQuestions(ctx context.Context, req GenerateRequest) (*IngestResult, error) {
	raw := strings.TrimSpace(req.ProductID)
	if raw == "" {
		return nil, apierr.Validation("product_id_required", errors.New("productId required"))
	}
	productID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierr.Validation("invalid_id", errors.New("productId must be a uuid"))
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	answered, err := s.enrich(ctx, req.AnsweredQuestions)
	if err != nil {
		return nil, err
	}

	candidates, err := s.gateway.GenerateQuestions(ctx, aigateway.GenerateQuestionsRequest{
		ProductID:         productID.String(),
		AnsweredQuestions: answered,
		ContextText:       req.ContextText,
	})
	if err != nil {
		s.log.WithContext(ctx).Warn("Question generation failed", "product_id", productID.String(), "error", err)
		return nil, apierr.Upstream("ai_unavailable", errors.New("AI service unavailable"))
	}

	return s.ingest(ctx, productID, candidates)
}

// enrich fills missing question text from storage with a single bulk lookup.
// Ids that do not resolve leave the text absent.
func (s *ingestionService) enrich(ctx context.Context, answered []aigateway.AnsweredQuestion) ([]aigateway.AnsweredQuestion, error) {
	out := make([]aigateway.AnsweredQuestion, len(answered))
	copy(out, answered)

	var ids []uuid.UUID
	seen := map[uuid.UUID]bool{}
	for _, a := range out {
		if a.QuestionText != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(a.QuestionID))
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return out, nil
	}

	found, err := s.questionRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup answered questions: %w", err)
	}
	texts := make(map[uuid.UUID]string, len(found))
	for _, q := range found {
		texts[q.ID] = q.QuestionText
	}
	for i := range out {
		if out[i].QuestionText != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(out[i].QuestionID))
		if err != nil {
			continue
		}
		if t, ok := texts[id]; ok {
			out[i].QuestionText = &t
		}
	}
	return out, nil
}

func (s *ingestionService) Ingest(ctx context.Context, productID uuid.UUID, candidates []aigateway.Candidate) (*IngestResult, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.ingest(ctx, productID, candidates)
}

func (s *ingestionService) requireProduct(ctx context.Context, productID uuid.UUID) error {
	ok, err := s.productRepo.Exists(ctx, nil, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return apierr.NotFound("product_not_found", errors.New("product not found"))
	}
	return nil
}

func (s *ingestionService) ingest(ctx context.Context, productID uuid.UUID, candidates []aigateway.Candidate) (*IngestResult, error) {
	result := &IngestResult{Questions: []*domain.Question{}, Attempted: len(candidates)}
	if len(candidates) == 0 {
		return result, nil
	}

	release, err := s.locker.Lock(ctx, productID)
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			return nil, apierr.Conflict("ingestion_in_progress", errors.New("question ingestion already running for product"))
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	defer release()

	existing, err := s.questionRepo.ListTextsByProductID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load seen set: %w", err)
	}
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, t := range existing {
		seen[normalize.QuestionKey(t)] = struct{}{}
	}

	next := 0
	raced := 0
	for _, c := range candidates {
		key := normalize.QuestionKey(c.QuestionText)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		qType := strings.TrimSpace(c.QuestionType)
		if qType == "" {
			qType = string(domain.QuestionTypeText)
		}
		q := &domain.Question{
			ProductID:    productID,
			QuestionText: c.QuestionText,
			QuestionType: domain.QuestionType(qType),
			Metadata:     jsonOrNil(c.Metadata),
			OrderIndex:   next,
		}
		if _, err := s.questionRepo.Create(ctx, nil, []*domain.Question{q}); err != nil {
			if db.IsUniqueViolation(err) {
				raced++
				continue
			}
			s.log.WithContext(ctx).Error("Question ingestion stopped mid-batch",
				"product_id", productID.String(),
				"committed", len(result.Questions),
				"error", err,
			)
			result.AllDuplicates = false
			return result, &PartialWriteError{Committed: len(result.Questions), Err: err}
		}
		result.Questions = append(result.Questions, q)
		next++
	}

	result.AllDuplicates = len(result.Questions) == 0
	s.log.WithContext(ctx).Info("Questions ingested",
		"product_id", productID.String(),
		"attempted", len(candidates),
		"admitted", len(result.Questions),
		"raced", raced,
	)
	return result, nil
}
