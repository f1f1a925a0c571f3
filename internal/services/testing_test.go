package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/data/repos/testutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/render"
)

type testDeps struct {
	db        *gorm.DB
	log       *logger.Logger
	products  repos.ProductRepo
	questions repos.QuestionRepo
	answers   repos.AnswerRepo
	reports   repos.ReportRepo
	users     repos.UserRepo
	companies repos.CompanyRepo
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testDeps{
		db:        db,
		log:       log,
		products:  repos.NewProductRepo(db, log),
		questions: repos.NewQuestionRepo(db, log),
		answers:   repos.NewAnswerRepo(db, log),
		reports:   repos.NewReportRepo(db, log),
		users:     repos.NewUserRepo(db, log),
		companies: repos.NewCompanyRepo(db, log),
	}
}

type fakeGateway struct {
	mu         sync.Mutex
	candidates []aigateway.Candidate
	genErr     error
	score      *float64
	scoreErr   error
	lastGen    aigateway.GenerateQuestionsRequest
	lastScore  aigateway.ScoreRequest
	genCalls   int
}

func (f *fakeGateway) GenerateQuestions(_ context.Context, req aigateway.GenerateQuestionsRequest) ([]aigateway.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls++
	f.lastGen = req
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.candidates, nil
}

func (f *fakeGateway) TransparencyScore(_ context.Context, req aigateway.ScoreRequest) (*float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastScore = req
	if f.scoreErr != nil {
		return nil, f.scoreErr
	}
	return f.score, nil
}

type fakeRenderer struct {
	err     error
	lastDoc render.Document
}

func (f *fakeRenderer) Render(ctx context.Context, doc render.Document) ([]byte, error) {
	f.lastDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte("%PDF-fake"), nil
}

func (f *fakeRenderer) ContentType() string { return "application/pdf" }

type fakeBucket struct {
	err  error
	keys []string
}

func (f *fakeBucket) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return f.PublicURL(key), nil
}

func (f *fakeBucket) PublicURL(key string) string { return "https://cdn.test/" + key }
func (f *fakeBucket) Close() error                { return nil }

var errBoom = errors.New("boom")

func candidates(texts ...string) []aigateway.Candidate {
	out := make([]aigateway.Candidate, 0, len(texts))
	for _, t := range texts {
		out = append(out, aigateway.Candidate{QuestionText: t, QuestionType: "text"})
	}
	return out
}

func strPtr(s string) *string { return &s }
