package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

func respond(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	RespondAPIError(c, logger.NewNop(), err)

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, env
}

func TestRespondAPIErrorMapsTaxonomy(t *testing.T) {
	code, env := respond(t, fmt.Errorf("wrapped: %w", apierr.NotFound("product_not_found", errors.New("product not found"))))
	if code != http.StatusNotFound || env.Error.Code != "product_not_found" || env.Error.Message != "product not found" {
		t.Fatalf("unexpected response %d %+v", code, env)
	}

	code, env = respond(t, apierr.Upstream("ai_unavailable", errors.New("AI service unavailable")))
	if code != http.StatusBadGateway || env.Error.Message != "AI service unavailable" {
		t.Fatalf("unexpected upstream response %d %+v", code, env)
	}
}

func TestRespondAPIErrorHidesInternals(t *testing.T) {
	code, env := respond(t, errors.New("pq: relation \"secret_table\" does not exist"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status=%d", code)
	}
	if env.Error.Message != "internal server error" || env.Error.Code != "internal_error" {
		t.Fatalf("leaked internals: %+v", env)
	}

	code, env = respond(t, apierr.Internal("db_down", errors.New("dial tcp 10.0.0.1:5432")))
	if code != http.StatusInternalServerError || env.Error.Message != "internal server error" {
		t.Fatalf("leaked internals: %d %+v", code, env)
	}
}
