package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/data/repos"
	"github.com/yungbote/transparency-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/transparency-backend/internal/http/handlers"
	httpMW "github.com/yungbote/transparency-backend/internal/http/middleware"
	"github.com/yungbote/transparency-backend/internal/render"
	"github.com/yungbote/transparency-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	productRepo := repos.NewProductRepo(db, log)
	questionRepo := repos.NewQuestionRepo(db, log)
	answerRepo := repos.NewAnswerRepo(db, log)
	reportRepo := repos.NewReportRepo(db, log)
	gateway := aigateway.NewHeuristicGateway()

	authService := services.NewAuthService(db, log, repos.NewUserRepo(db, log), repos.NewCompanyRepo(db, log), services.AuthConfig{
		JWTSecret:  "router-test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	productService := services.NewProductService(db, log, productRepo, questionRepo, answerRepo)
	questionService := services.NewQuestionService(log, productRepo, questionRepo)
	answerService := services.NewAnswerService(db, log, productRepo, answerRepo)
	ingestionService := services.NewIngestionService(log, productRepo, questionRepo, gateway, nil)
	reportService := services.NewReportService(log, productRepo, answerRepo, reportRepo, gateway, render.NewPDFRenderer(), nil, services.ReportConfig{})

	return NewRouter(RouterConfig{
		Log:             log,
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, authService),
		HealthHandler:   httpH.NewHealthHandler(),
		AuthHandler:     httpH.NewAuthHandler(log, authService),
		ProductHandler:  httpH.NewProductHandler(log, productService),
		QuestionHandler: httpH.NewQuestionHandler(log, questionService),
		AnswerHandler:   httpH.NewAnswerHandler(log, answerService),
		ReportHandler:   httpH.NewReportHandler(log, reportService),
		AIHandler:       httpH.NewAIHandler(log, ingestionService),
	})
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func errorCode(body map[string]any) string {
	env, _ := body["error"].(map[string]any)
	code, _ := env["code"].(string)
	return code
}

func TestQuestionnaireFlow(t *testing.T) {
	r := newTestRouter(t)

	status, body := call(t, r, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || body["ok"] != true {
		t.Fatalf("health: %d %v", status, body)
	}

	status, _ = call(t, r, http.MethodPost, "/api/products", "", map[string]any{"name": "Oat Bar"})
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: %d", status)
	}

	status, body = call(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email": "Owner@Example.test", "password": "s3cret", "companyName": "Acme",
	})
	if status != http.StatusOK || body["token"] == "" {
		t.Fatalf("signup: %d %v", status, body)
	}
	status, body = call(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "owner@example.test", "password": "s3cret",
	})
	token, _ := body["token"].(string)
	if status != http.StatusOK || token == "" {
		t.Fatalf("login: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodPost, "/api/products", token, map[string]any{"name": "Oat Bar", "category": "Food"})
	productID, _ := body["id"].(string)
	if status != http.StatusOK || productID == "" {
		t.Fatalf("create product: %d %v", status, body)
	}

	gen := map[string]any{"productId": productID, "answeredQuestions": []any{}}
	status, body = call(t, r, http.MethodPost, "/api/ai/generate-questions", token, gen)
	if status != http.StatusOK {
		t.Fatalf("generate: %d %v", status, body)
	}
	questions, _ := body["questions"].([]any)
	if len(questions) != 3 || body["dedupedAll"] != false {
		t.Fatalf("first generate: %v", body)
	}
	first, _ := questions[0].(map[string]any)
	if first["order_index"] != float64(0) || first["question_text"] != "Provide a short product description." {
		t.Fatalf("unexpected first question: %v", first)
	}

	status, body = call(t, r, http.MethodPost, "/api/ai/generate-questions", token, gen)
	questions, _ = body["questions"].([]any)
	if status != http.StatusOK || len(questions) != 0 || body["dedupedAll"] != true {
		t.Fatalf("second generate should dedupe everything: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodPost, "/api/products/"+productID+"/questions", "", map[string]any{
		"question_text": "  provide a SHORT product description.", "question_type": "text",
	})
	if status != http.StatusConflict || errorCode(body) != "question_exists" {
		t.Fatalf("direct duplicate insert: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodPost, "/api/products/"+productID+"/answers", token, map[string]any{
		"answers": []any{
			map[string]any{"questionId": first["id"], "answerText": "A chewy oat bar."},
			map[string]any{"questionId": 42, "answerJson": true},
		},
	})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("answers: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodGet, "/api/products/"+productID, "", nil)
	if status != http.StatusOK {
		t.Fatalf("get product: %d %v", status, body)
	}
	answers, _ := body["answers"].([]any)
	if qs, _ := body["questions"].([]any); len(qs) != 3 || len(answers) != 2 {
		t.Fatalf("detail: %v", body)
	}
	nullRefs := 0
	for _, a := range answers {
		if m, _ := a.(map[string]any); m["question_id"] == nil {
			nullRefs++
		}
	}
	if nullRefs != 1 {
		t.Fatalf("expected one answer with a null question reference, got %d", nullRefs)
	}

	status, body = call(t, r, http.MethodPost, "/api/products/"+productID+"/generate-report", token, nil)
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("report: %d %v", status, body)
	}
	report, _ := body["report"].(map[string]any)
	pdf, err := base64.StdEncoding.DecodeString(report["pdf_base64"].(string))
	if err != nil || !strings.HasPrefix(string(pdf), "%PDF") {
		t.Fatalf("artifact is not a pdf: err=%v", err)
	}
	if report["transparency_score"] == nil || report["pdf_url"] != nil {
		t.Fatalf("unexpected report fields: %v", report)
	}
}

func TestRouterRejectsMalformedIDs(t *testing.T) {
	r := newTestRouter(t)

	status, body := call(t, r, http.MethodGet, "/api/products/not-a-uuid", "", nil)
	if status != http.StatusBadRequest || errorCode(body) != "invalid_id" {
		t.Fatalf("get: %d %v", status, body)
	}
	status, body = call(t, r, http.MethodPost, "/api/products/not-a-uuid/questions", "", map[string]any{
		"question_text": "Q", "question_type": "text",
	})
	if status != http.StatusBadRequest || errorCode(body) != "invalid_id" {
		t.Fatalf("questions: %d %v", status, body)
	}
	status, body = call(t, r, http.MethodGet, "/api/products/7f2c1d8e-3b4a-4c5d-9e6f-0a1b2c3d4e5f", "", nil)
	if status != http.StatusNotFound || errorCode(body) != "product_not_found" {
		t.Fatalf("unknown product: %d %v", status, body)
	}
}

func TestGenerateQuestionsAcceptsLooseAnsweredList(t *testing.T) {
	r := newTestRouter(t)

	_, body := call(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email": "loose@example.test", "password": "s3cret", "companyName": "Loose Co",
	})
	token, _ := body["token"].(string)
	_, body = call(t, r, http.MethodPost, "/api/products", token, map[string]any{"name": "Trail Mix"})
	productID, _ := body["id"].(string)
	if productID == "" {
		t.Fatalf("create product: %v", body)
	}

	status, body := call(t, r, http.MethodPost, "/api/ai/generate-questions", token, map[string]any{
		"productId": productID,
		"answeredQuestions": []any{
			map[string]any{"questionId": 42, "answerText": "yes"},
			"not an object",
		},
	})
	if status != http.StatusOK {
		t.Fatalf("numeric questionId: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodPost, "/api/ai/generate-questions", token, map[string]any{
		"productId":         productID,
		"answeredQuestions": map[string]any{},
	})
	if status != http.StatusOK {
		t.Fatalf("object answeredQuestions: %d %v", status, body)
	}

	status, body = call(t, r, http.MethodPost, "/api/ai/generate-questions", token, "not an object")
	if status != http.StatusBadRequest || errorCode(body) != "invalid_request" {
		t.Fatalf("malformed body: %d %v", status, body)
	}
	env, _ := body["error"].(map[string]any)
	if msg, _ := env["message"].(string); msg != "invalid request body" {
		t.Fatalf("bind failure should not expose decoder detail: %q", msg)
	}
}
