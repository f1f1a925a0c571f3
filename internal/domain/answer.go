package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Answer may reference no question when the client supplied an unusable id.
// Several answers per question are allowed.
type Answer struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;column:product_id;not null;index" json:"product_id"`
	QuestionID *uuid.UUID     `gorm:"type:uuid;column:question_id;index" json:"question_id"`
	AnswerText *string        `gorm:"column:answer_text" json:"answer_text"`
	AnswerJSON datatypes.JSON `gorm:"column:answer_json" json:"answer_json"`
	AnsweredAt time.Time      `gorm:"column:answered_at;not null;autoCreateTime;index" json:"answered_at"`
}

func (Answer) TableName() string { return "answers" }

func (a *Answer) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// AnswerWithQuestion is an answer row joined with its question's text, which
// is nil when the reference does not resolve.
type AnswerWithQuestion struct {
	Answer
	QuestionText *string `gorm:"column:question_text" json:"question_text"`
}
