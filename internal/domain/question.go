package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/platform/normalize"
)

type QuestionType string

const (
	QuestionTypeText    QuestionType = "text"
	QuestionTypeBoolean QuestionType = "boolean"
	QuestionTypeSelect  QuestionType = "select"
)

// Known reports whether t is one of the built-in types. Unknown types are
// still stored verbatim.
func (t QuestionType) Known() bool {
	switch t {
	case QuestionTypeText, QuestionTypeBoolean, QuestionTypeSelect:
		return true
	default:
		return false
	}
}

// Question belongs to a product. QuestionKey holds the normalized text and is
// unique per product.
type Question struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;column:product_id;not null;uniqueIndex:ux_questions_product_key,priority:1" json:"product_id"`
	QuestionText     string         `gorm:"column:question_text;not null" json:"question_text"`
	QuestionKey      string         `gorm:"column:question_key;not null;uniqueIndex:ux_questions_product_key,priority:2" json:"-"`
	QuestionType     QuestionType   `gorm:"column:question_type;not null" json:"question_type"`
	Metadata         datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	OrderIndex       int            `gorm:"column:order_index;not null;default:0" json:"order_index"`
	ParentQuestionID *uuid.UUID     `gorm:"type:uuid;column:parent_question_id;index" json:"parent_question_id,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Question) TableName() string { return "questions" }

func (q *Question) BeforeCreate(*gorm.DB) error {
	ensureID(&q.ID)
	q.QuestionKey = normalize.QuestionKey(q.QuestionText)
	return nil
}

// TypedMetadata decodes the stored payload according to the question type.
func (q *Question) TypedMetadata() Metadata {
	return ParseMetadata(q.QuestionType, q.Metadata)
}
