package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/http/response"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/services"
)

type AnswerHandler struct {
	log           *logger.Logger
	answerService services.AnswerService
}

func NewAnswerHandler(log *logger.Logger, answerService services.AnswerService) *AnswerHandler {
	return &AnswerHandler{log: log.With("handler", "AnswerHandler"), answerService: answerService}
}

type answerPayload struct {
	// QuestionID is kept raw so that non-string ids degrade to a null
	// reference instead of failing the batch.
	QuestionID json.RawMessage `json:"questionId"`
	AnswerText *string         `json:"answerText"`
	AnswerJSON json.RawMessage `json:"answerJson"`
}

// POST /api/products/:id/answers
func (ah *AnswerHandler) SubmitAnswers(c *gin.Context) {
	productID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, ah.log, err)
		return
	}
	var req struct {
		Answers []answerPayload `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	inputs := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		inputs = append(inputs, services.AnswerInput{
			QuestionID: rawString(a.QuestionID),
			AnswerText: a.AnswerText,
			AnswerJSON: a.AnswerJSON,
		})
	}
	if _, err := ah.answerService.CreateBatch(c.Request.Context(), productID, inputs); err != nil {
		response.RespondAPIError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func rawString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
