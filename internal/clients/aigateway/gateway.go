package aigateway

import (
	"context"
	"encoding/json"
)

// AnsweredQuestion is a prior answer sent as context for question generation.
type AnsweredQuestion struct {
	QuestionID   string          `json:"questionId,omitempty"`
	QuestionText *string         `json:"questionText,omitempty"`
	AnswerText   *string         `json:"answerText,omitempty"`
	AnswerJSON   json.RawMessage `json:"answerJson,omitempty"`
}

type GenerateQuestionsRequest struct {
	ProductID         string             `json:"productId"`
	AnsweredQuestions []AnsweredQuestion `json:"answeredQuestions"`
	ContextText       *string            `json:"contextText,omitempty"`
}

// Candidate is a proposed question that has not been persisted. Metadata is
// carried through untouched.
type Candidate struct {
	QuestionText string          `json:"question_text"`
	QuestionType string          `json:"question_type"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

type ScoreProduct struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SKU       *string `json:"sku"`
	Category  *string `json:"category"`
	CompanyID *string `json:"company_id"`
}

type ScoreAnswer struct {
	QuestionID   *string         `json:"question_id"`
	QuestionText *string         `json:"question_text"`
	AnswerText   *string         `json:"answer_text"`
	AnswerJSON   json.RawMessage `json:"answer_json"`
}

type ScoreRequest struct {
	Product ScoreProduct  `json:"product"`
	Answers []ScoreAnswer `json:"answers"`
}

// Gateway is the question generation and scoring capability.
type Gateway interface {
	GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) ([]Candidate, error)
	// TransparencyScore returns nil when the service produced no score.
	TransparencyScore(ctx context.Context, req ScoreRequest) (*float64, error)
}
