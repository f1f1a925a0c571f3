package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/ctxutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type CreateProductInput struct {
	Name      string
	SKU       *string
	Category  *string
	CompanyID *string
}

type ProductDetail struct {
	Product   *domain.Product    `json:"product"`
	Questions []*domain.Question `json:"questions"`
	Answers   []*domain.Answer   `json:"answers"`
}

type ProductService interface {
	Create(ctx context.Context, identity *ctxutil.Identity, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*ProductDetail, error)
}

type productService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	questionRepo repos.QuestionRepo
	answerRepo   repos.AnswerRepo
}

func NewProductService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	questionRepo repos.QuestionRepo,
	answerRepo repos.AnswerRepo,
) ProductService {
	return &productService{
		db:           db,
		log:          log.With("service", "ProductService"),
		productRepo:  productRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// Create attributes the product to the caller's company, falling back to the
// company id supplied in the body.
func (ps *productService) Create(ctx context.Context, identity *ctxutil.Identity, in CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("name_required", errors.New("name required"))
	}

	p := &domain.Product{
		Name:     name,
		SKU:      trimmedPtr(in.SKU),
		Category: trimmedPtr(in.Category),
	}
	if raw := trimmedPtr(in.CompanyID); raw != nil {
		cid, err := uuid.Parse(*raw)
		if err != nil {
			return nil, apierr.Validation("invalid_company_id", errors.New("companyId must be a uuid"))
		}
		p.CompanyID = &cid
	}
	if identity != nil {
		if identity.CompanyID != nil {
			cid := *identity.CompanyID
			p.CompanyID = &cid
		}
		uid := identity.UserID
		p.CreatedBy = &uid
	}

	if _, err := ps.productRepo.Create(ctx, nil, []*domain.Product{p}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	ps.log.Info("Product created", "product_id", p.ID.String(), "company_id", uuidString(p.CompanyID))
	return p, nil
}

func (ps *productService) Get(ctx context.Context, productID uuid.UUID) (*ProductDetail, error) {
	p, err := ps.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, apierr.NotFound("product_not_found", errors.New("product not found"))
	}
	questions, err := ps.questionRepo.ListByProductID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	answers, err := ps.answerRepo.ListByProductID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if questions == nil {
		questions = []*domain.Question{}
	}
	if answers == nil {
		answers = []*domain.Answer{}
	}
	return &ProductDetail{Product: p, Questions: questions, Answers: answers}, nil
}
