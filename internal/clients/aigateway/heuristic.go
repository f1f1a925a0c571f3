package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/yungbote/transparency-backend/internal/platform/normalize"
)

const clarificationPrefix = "Please provide more specific details about: "

var sustainabilityHints = []string{"sustain", "eco", "green", "esg", "carbon"}

var descriptiveHints = []string{"description", "materials", "ingredients"}

type heuristic struct{}

// NewHeuristicGateway returns a deterministic local Gateway that needs no
// network access.
func NewHeuristicGateway() Gateway {
	return heuristic{}
}

func (heuristic) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []Candidate{
		{QuestionText: "Provide a short product description.", QuestionType: "text"},
		{QuestionText: "List key materials or ingredients.", QuestionType: "text"},
		{QuestionText: "Does the product comply with relevant safety/compliance regulations?", QuestionType: "boolean"},
	}

	ctxText := ""
	if req.ContextText != nil {
		ctxText = strings.ToLower(*req.ContextText)
	}
	if containsAny(ctxText, sustainabilityHints) {
		out = append(out, Candidate{
			QuestionText: "Is the product certified by any sustainability standards?",
			QuestionType: "select",
			Metadata:     json.RawMessage(`{"options":["Yes","No","In progress"]}`),
		})
	}

	for _, a := range req.AnsweredQuestions {
		if a.AnswerText == nil || strings.TrimSpace(*a.AnswerText) == "" {
			continue
		}
		qText := "previous answer"
		if a.QuestionText != nil && *a.QuestionText != "" {
			qText = *a.QuestionText
		}
		lower := strings.ToLower(qText)
		if normalize.HasPrefixFold(qText, strings.TrimSuffix(clarificationPrefix, ": ")) {
			continue
		}
		if containsAny(lower, descriptiveHints) {
			continue
		}
		out = append(out, Candidate{QuestionText: clarificationPrefix + qText, QuestionType: "text"})
	}

	seen := map[string]struct{}{}
	dedup := make([]Candidate, 0, len(out))
	for _, c := range out {
		key := normalize.QuestionKey(c.QuestionText)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dedup = append(dedup, c)
	}
	return dedup, nil
}

func (heuristic) TransparencyScore(ctx context.Context, req ScoreRequest) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answered := 0
	for _, a := range req.Answers {
		if (a.AnswerText != nil && *a.AnswerText != "") || jsonTruthy(a.AnswerJSON) {
			answered++
		}
	}
	base := math.Min(100, 20+float64(answered)*8)
	if req.Product.Category != nil && *req.Product.Category != "" {
		base += 2.5
	}
	if req.Product.SKU != nil && *req.Product.SKU != "" {
		base += 2.5
	}
	score := math.Max(0, math.Min(100, base))
	score = math.Round(score*10) / 10
	return &score, nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// jsonTruthy reports whether raw holds a value other than null, false, zero,
// or an empty string, array or object.
func jsonTruthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", "0", `""`, "[]", "{}":
		return false
	}
	var probe any
	if err := json.Unmarshal(v, &probe); err != nil {
		return false
	}
	switch t := probe.(type) {
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case float64:
		return t != 0
	}
	return true
}
