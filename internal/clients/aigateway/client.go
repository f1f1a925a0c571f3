package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/transparency-backend/internal/platform/httpx"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewHTTPGateway(cfg Config, log *logger.Logger) (Gateway, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing AI service url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &client{
		log:        log.With("service", "AIGatewayClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		backoff:    backoff,
	}, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpx.StatusError{Service: "ai-service", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			return raw, nil
		}

		if !httpx.IsRetryableError(err) {
			return nil, err
		}
		if attempt == c.maxRetries {
			return nil, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("AI service request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return nil, err
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}

func (c *client) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) ([]Candidate, error) {
	if req.AnsweredQuestions == nil {
		req.AnsweredQuestions = []AnsweredQuestion{}
	}
	raw, err := c.do(ctx, http.MethodPost, "/generate-questions", req)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.log.Warn("AI service returned a non-array question list", "bytes", len(raw))
		return []Candidate{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}
	out := make([]Candidate, 0, len(items))
	skipped := 0
	for _, item := range items {
		var cand Candidate
		if err := json.Unmarshal(item, &cand); err != nil {
			skipped++
			continue
		}
		out = append(out, cand)
	}
	if skipped > 0 {
		c.log.Warn("AI service returned malformed questions", "skipped", skipped, "kept", len(out))
	}
	return out, nil
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

func (c *client) TransparencyScore(ctx context.Context, req ScoreRequest) (*float64, error) {
	if req.Answers == nil {
		req.Answers = []ScoreAnswer{}
	}
	raw, err := c.do(ctx, http.MethodPost, "/transparency-score", req)
	if err != nil {
		return nil, fmt.Errorf("transparency score: %w", err)
	}
	var resp scoreResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode transparency score: %w", err)
	}
	return resp.Score, nil
}
