package repos

import (
	"context"
	"testing"
	"time"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

func TestCommentRepo_InsertionOrder(t *testing.T) {
	repo := NewCommentRepo(storage.NewMemoryStore())

	for _, id := range []string{"comment_1", "comment_2", "comment_3"} {
		if err := repo.Add(context.Background(), models.Comment{
			Id:        id,
			EstateId:  "estate_1",
			UserId:    "user_1",
			Content:   "innhold",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	comments, err := repo.List(context.Background(), "estate_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	for i, id := range []string{"comment_1", "comment_2", "comment_3"} {
		if comments[i].Id != id {
			t.Errorf("expected %s at position %d, got %s", id, i, comments[i].Id)
		}
	}
}

func TestCommentRepo_TaskFilter(t *testing.T) {
	repo := NewCommentRepo(storage.NewMemoryStore())

	taskA := "1"
	taskB := "2"

	comments := []models.Comment{
		{Id: "comment_1", EstateId: "estate_1", TaskId: &taskA, Content: "a"},
		{Id: "comment_2", EstateId: "estate_1", Content: "general"},
		{Id: "comment_3", EstateId: "estate_1", TaskId: &taskB, Content: "b"},
		{Id: "comment_4", EstateId: "estate_1", TaskId: &taskA, Content: "a igjen"},
	}
	for _, comment := range comments {
		if err := repo.Add(context.Background(), comment); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	filtered, err := repo.List(context.Background(), "estate_1", &taskA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(filtered) != 2 {
		t.Fatalf("expected 2 comments for task, got %d", len(filtered))
	}
	if filtered[0].Id != "comment_1" || filtered[1].Id != "comment_4" {
		t.Errorf("unexpected filter result: %+v", filtered)
	}
}

func TestCommentRepo_ListEmptyEstate(t *testing.T) {
	repo := NewCommentRepo(storage.NewMemoryStore())

	comments, err := repo.List(context.Background(), "estate_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected empty list, got %+v", comments)
	}
}
