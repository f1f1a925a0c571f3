package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/transparency-backend/internal/data/repos/testutil"
	"github.com/yungbote/transparency-backend/internal/domain"
)

func TestAnswerRepoListWithQuestionText(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAnswerRepo(db, testutil.Logger(t))

	p := testutil.SeedProduct(t, ctx, tx, "Granola")
	q := testutil.SeedQuestion(t, ctx, tx, p.ID, "Where is it made?", 0)
	dangling := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	testutil.SeedAnswer(t, ctx, tx, p.ID, nil, "loose", base.Add(2*time.Minute))
	testutil.SeedAnswer(t, ctx, tx, p.ID, &q.ID, "Portugal", base)
	testutil.SeedAnswer(t, ctx, tx, p.ID, &dangling, "ghost", base.Add(time.Minute))

	rows, err := repo.ListWithQuestionText(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListWithQuestionText: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].QuestionText == nil || *rows[0].QuestionText != "Where is it made?" {
		t.Fatalf("row 0: expected joined text, got %v", rows[0].QuestionText)
	}
	if rows[0].AnswerText == nil || *rows[0].AnswerText != "Portugal" {
		t.Fatalf("row 0: unexpected answer %v", rows[0].AnswerText)
	}
	if rows[1].QuestionText != nil || rows[1].QuestionID == nil || *rows[1].QuestionID != dangling {
		t.Fatalf("row 1: expected dangling reference, got %+v", rows[1])
	}
	if rows[2].QuestionText != nil || rows[2].QuestionID != nil {
		t.Fatalf("row 2: expected unlinked answer, got %+v", rows[2])
	}
}

func TestAnswerRepoCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAnswerRepo(db, testutil.Logger(t))
	p := testutil.SeedProduct(t, ctx, tx, "Granola")

	created, err := repo.Create(ctx, tx, []*domain.Answer{
		{ProductID: p.ID, AnswerJSON: datatypes.JSON([]byte(`{"a":1}`))},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].ID == uuid.Nil || created[0].AnsweredAt.IsZero() {
		t.Fatalf("Create: expected id and timestamp, got %+v", created[0])
	}

	list, err := repo.ListByProductID(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListByProductID: %v", err)
	}
	if len(list) != 1 || string(list[0].AnswerJSON) != `{"a":1}` {
		t.Fatalf("ListByProductID: unexpected %+v", list)
	}
}
