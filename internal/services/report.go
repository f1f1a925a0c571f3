package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/clients/gcp"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/render"
)

const unlinkedAnswerLabel = "Unlinked answer"

type ReportConfig struct {
	ScoreTimeout  time.Duration
	RenderTimeout time.Duration
}

type AssembleResult struct {
	Document    render.Document
	Report      *domain.Report
	Artifact    []byte
	ContentType string
}

type ReportService interface {
	Assemble(ctx context.Context, productID uuid.UUID) (*AssembleResult, error)
}

type reportMeta struct {
	GeneratedAt    string `json:"generatedAt"`
	AnswerCount    int    `json:"answerCount"`
	ScoreAvailable bool   `json:"scoreAvailable"`
}

type reportService struct {
	log         *logger.Logger
	productRepo repos.ProductRepo
	answerRepo  repos.AnswerRepo
	reportRepo  repos.ReportRepo
	gateway     aigateway.Gateway
	renderer    render.Renderer
	bucket      gcp.ReportBucket
	cfg         ReportConfig
	now         func() time.Time
}

// NewReportService builds the assembler. bucket may be nil, in which case
// artifacts are only returned inline.
func NewReportService(
	log *logger.Logger,
	productRepo repos.ProductRepo,
	answerRepo repos.AnswerRepo,
	reportRepo repos.ReportRepo,
	gateway aigateway.Gateway,
	renderer render.Renderer,
	bucket gcp.ReportBucket,
	cfg ReportConfig,
) ReportService {
	if cfg.ScoreTimeout <= 0 {
		cfg.ScoreTimeout = 15 * time.Second
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	return &reportService{
		log:         log.With("service", "ReportService"),
		productRepo: productRepo,
		answerRepo:  answerRepo,
		reportRepo:  reportRepo,
		gateway:     gateway,
		renderer:    renderer,
		bucket:      bucket,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Assemble(ctx context.Context, productID uuid.UUID) (*AssembleResult, error) {
	var (
		product *domain.Product
		rows    []*domain.AnswerWithQuestion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.productRepo.GetByID(gctx, nil, productID)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		r, err := s.answerRepo.ListWithQuestionText(gctx, nil, productID)
		if err != nil {
			return fmt.Errorf("load answers: %w", err)
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apierr.NotFound("product_not_found", errors.New("product not found"))
	}

	score := s.score(ctx, product, rows)
	doc := BuildDocument(product, rows, score, s.now())

	artifact, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}

	reportID := uuid.New()
	pdfURL := s.upload(ctx, productID, reportID, artifact)

	meta, err := json.Marshal(reportMeta{
		GeneratedAt:    doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AnswerCount:    len(rows),
		ScoreAvailable: score != nil,
	})
	if err != nil {
		return nil, fmt.Errorf("encode report metadata: %w", err)
	}
	report := &domain.Report{
		ID:                reportID,
		ProductID:         productID,
		CompanyID:         product.CompanyID,
		ReportJSON:        datatypes.JSON(meta),
		TransparencyScore: score,
		PDFURL:            pdfURL,
	}
	if _, err := s.reportRepo.Create(ctx, nil, []*domain.Report{report}); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	s.log.WithContext(ctx).Info("Report generated",
		"product_id", productID.String(),
		"report_id", reportID.String(),
		"answers", len(rows),
		"score_available", score != nil,
		"bytes", len(artifact),
	)
	return &AssembleResult{
		Document:    doc,
		Report:      report,
		Artifact:    artifact,
		ContentType: s.renderer.ContentType(),
	}, nil
}

// score never fails the assembly; any gateway error yields a nil score.
func (s *reportService) score(ctx context.Context, product *domain.Product, rows []*domain.AnswerWithQuestion) *float64 {
	sctx, cancel := context.WithTimeout(ctx, s.cfg.ScoreTimeout)
	defer cancel()

	v, err := s.gateway.TransparencyScore(sctx, buildScoreRequest(product, rows))
	if err != nil {
		s.log.WithContext(ctx).Warn("Transparency score unavailable", "product_id", product.ID.String(), "error", err)
		return nil
	}
	return v
}

func (s *reportService) render(ctx context.Context, doc render.Document) ([]byte, error) {
	rctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	out, err := s.renderer.Render(rctx, doc)
	if err != nil {
		s.log.Error("Report rendering failed", "error", err)
		return nil, apierr.Upstream("render_failed", errors.New("report rendering failed"))
	}
	return out, nil
}

func (s *reportService) upload(ctx context.Context, productID, reportID uuid.UUID, artifact []byte) *string {
	if s.bucket == nil {
		return nil
	}
	key := fmt.Sprintf("reports/%s/%s.pdf", productID, reportID)
	url, err := s.bucket.Upload(ctx, key, s.renderer.ContentType(), artifact)
	if err != nil {
		s.log.Warn("Report artifact upload failed", "product_id", productID.String(), "key", key, "error", err)
		return nil
	}
	return &url
}

// BuildDocument lays out product identity and answers in the order given.
func BuildDocument(product *domain.Product, rows []*domain.AnswerWithQuestion, score *float64, generatedAt time.Time) render.Document {
	doc := render.Document{
		Title: render.DefaultTitle,
		Product: render.ProductInfo{
			Name:     product.Name,
			SKU:      deref(product.SKU),
			Category: deref(product.Category),
		},
		Score:       score,
		GeneratedAt: generatedAt,
		Answers:     make([]render.DocumentAnswer, 0, len(rows)),
	}
	for _, r := range rows {
		doc.Answers = append(doc.Answers, render.DocumentAnswer{
			Label: answerLabel(r),
			Value: answerValue(&r.Answer),
		})
	}
	return doc
}

func answerLabel(r *domain.AnswerWithQuestion) string {
	if r.QuestionText != nil && strings.TrimSpace(*r.QuestionText) != "" {
		return *r.QuestionText
	}
	if r.QuestionID != nil {
		return "question " + r.QuestionID.String()
	}
	return unlinkedAnswerLabel
}

func answerValue(a *domain.Answer) string {
	if a.AnswerText != nil {
		return *a.AnswerText
	}
	raw := bytes.TrimSpace(a.AnswerJSON)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func buildScoreRequest(product *domain.Product, rows []*domain.AnswerWithQuestion) aigateway.ScoreRequest {
	req := aigateway.ScoreRequest{
		Product: aigateway.ScoreProduct{
			ID:       product.ID.String(),
			Name:     product.Name,
			SKU:      product.SKU,
			Category: product.Category,
		},
		Answers: make([]aigateway.ScoreAnswer, 0, len(rows)),
	}
	if product.CompanyID != nil {
		cid := product.CompanyID.String()
		req.Product.CompanyID = &cid
	}
	for _, r := range rows {
		sa := aigateway.ScoreAnswer{
			QuestionText: r.QuestionText,
			AnswerText:   r.AnswerText,
		}
		if r.QuestionID != nil {
			qid := r.QuestionID.String()
			sa.QuestionID = &qid
		}
		if len(r.AnswerJSON) > 0 {
			sa.AnswerJSON = json.RawMessage(r.AnswerJSON)
		}
		req.Answers = append(req.Answers, sa)
	}
	return req
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
