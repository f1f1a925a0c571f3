package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/transparency-backend/internal/http/response"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type QuestionHandler struct {
	log             *logger.Logger
	questionService services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{log: log.With("handler", "QuestionHandler"), questionService: questionService}
}

// POST /api/products/:id/questions inserts one question without the
// similarity dedupe. A text that normalizes to an existing question of the
// product still answers 409 question_exists.
func (qh *QuestionHandler) CreateQuestion(c *gin.Context) {
	productID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, qh.log, err)
		return
	}
	var req struct {
		QuestionText     string          `json:"question_text"`
		QuestionType     string          `json:"question_type"`
		Metadata         json.RawMessage `json:"metadata"`
		OrderIndex       *int            `json:"order_index"`
		ParentQuestionID *uuid.UUID      `json:"parent_question_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	q, err := qh.questionService.Create(c.Request.Context(), productID, services.CreateQuestionInput{
		QuestionText:     req.QuestionText,
		QuestionType:     req.QuestionType,
		Metadata:         req.Metadata,
		OrderIndex:       req.OrderIndex,
		ParentQuestionID: req.ParentQuestionID,
	})
	if err != nil {
		response.RespondAPIError(c, qh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"id": q.ID})
}
