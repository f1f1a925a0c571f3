package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/http/response"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type AIHandler struct {
	log              *logger.Logger
	ingestionService services.IngestionService
}

func NewAIHandler(log *logger.Logger, ingestionService services.IngestionService) *AIHandler {
	return &AIHandler{log: log.With("handler", "AIHandler"), ingestionService: ingestionService}
}

type answeredPayload struct {
	QuestionID   json.RawMessage `json:"questionId"`
	QuestionText json.RawMessage `json:"questionText"`
	AnswerText   json.RawMessage `json:"answerText"`
	AnswerJSON   json.RawMessage `json:"answerJson"`
}

// POST /api/ai/generate-questions
func (ah *AIHandler) GenerateQuestions(c *gin.Context) {
	var req struct {
		ProductID         json.RawMessage `json:"productId"`
		AnsweredQuestions json.RawMessage `json:"answeredQuestions"`
		ContextText       json.RawMessage `json:"contextText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	productID := ""
	if s := rawString(req.ProductID); s != nil {
		productID = *s
	}
	res, err := ah.ingestionService.GenerateQuestions(c.Request.Context(), services.GenerateRequest{
		ProductID:         productID,
		AnsweredQuestions: answeredQuestions(req.AnsweredQuestions),
		ContextText:       rawString(req.ContextText),
	})
	if err != nil {
		// Rows committed before a failure stay; the client retries and
		// dedupe skips them.
		response.RespondAPIError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"questions":  res.Questions,
		"dedupedAll": res.AllDuplicates,
	})
}

// answeredQuestions reads the answered list leniently. Anything other than an
// array is treated as empty, entries that are not objects are skipped, and
// fields of the wrong type are dropped.
func answeredQuestions(raw json.RawMessage) []aigateway.AnsweredQuestion {
	out := []aigateway.AnsweredQuestion{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var p answeredPayload
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		aq := aigateway.AnsweredQuestion{
			QuestionText: rawString(p.QuestionText),
			AnswerText:   rawString(p.AnswerText),
			AnswerJSON:   jsonValue(p.AnswerJSON),
		}
		if id := rawString(p.QuestionID); id != nil {
			aq.QuestionID = *id
		}
		out = append(out, aq)
	}
	return out
}

func jsonValue(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return raw
}
