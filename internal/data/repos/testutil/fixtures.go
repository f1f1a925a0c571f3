package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/transparency-backend/internal/domain"
)

func SeedCompany(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Company {
	tb.Helper()
	c := &domain.Company{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed company: %v", err)
	}
	return c
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, companyID *uuid.UUID) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "pw",
		CompanyID:    companyID,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Product {
	tb.Helper()
	category := "Food"
	p := &domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: &category,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uuid.UUID, text string, orderIndex int) *domain.Question {
	tb.Helper()
	q := &domain.Question{
		ID:           uuid.New(),
		ProductID:    productID,
		QuestionText: text,
		QuestionType: domain.QuestionTypeText,
		OrderIndex:   orderIndex,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

// SeedAnswer stores a text answer at an explicit time so ordering is
// deterministic.
func SeedAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uuid.UUID, questionID *uuid.UUID, text string, at time.Time) *domain.Answer {
	tb.Helper()
	a := &domain.Answer{
		ID:         uuid.New(),
		ProductID:  productID,
		QuestionID: questionID,
		AnswerText: &text,
		AnsweredAt: at,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed answer: %v", err)
	}
	return a
}
