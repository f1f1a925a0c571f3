package render

import (
	"context"
	"strconv"
	"time"
)

const DefaultTitle = "Product Transparency Report"

type ProductInfo struct {
	Name     string
	SKU      string
	Category string
}

type DocumentAnswer struct {
	Label string
	Value string
}

// Document is the renderer-neutral form of a report.
type Document struct {
	Title       string
	Product     ProductInfo
	Score       *float64
	GeneratedAt time.Time
	Answers     []DocumentAnswer
}

// Renderer turns a Document into a binary artifact.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	ContentType() string
}

// FormatScore prints the score the way it is shown to readers, or "N/A".
func FormatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
