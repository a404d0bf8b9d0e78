package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

func TestTransactionRepo_BatchesConcatenate(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewTransactionRepo(store)

	first := []models.Transaction{
		{Id: "tx_1", Recipient: "Spotify AB", Amount: -129},
		{Id: "tx_2", Recipient: "Kiwi", Amount: -432.5},
	}
	second := []models.Transaction{
		{Id: "tx_3", Recipient: "Telenor ASA", Amount: -499},
	}

	if err := repo.SaveBatch(context.Background(), "estate_1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveBatch(context.Background(), "estate_1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transactions, err := repo.ListByEstate(context.Background(), "estate_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 3 {
		t.Errorf("expected 3 transactions across batches, got %d", len(transactions))
	}
}

func TestTransactionRepo_BatchesAreScopedToEstate(t *testing.T) {
	repo := NewTransactionRepo(storage.NewMemoryStore())

	if err := repo.SaveBatch(context.Background(), "estate_1", []models.Transaction{{Id: "tx_1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transactions, err := repo.ListByEstate(context.Background(), "estate_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no transactions for other estate, got %d", len(transactions))
	}
}

func TestTransactionRepo_Find(t *testing.T) {
	repo := NewTransactionRepo(storage.NewMemoryStore())

	if err := repo.SaveBatch(context.Background(), "estate_1", []models.Transaction{
		{Id: "tx_1", Recipient: "Spotify AB"},
		{Id: "tx_2", Recipient: "Netflix"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transaction, err := repo.Find(context.Background(), "estate_1", "tx_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transaction.Recipient != "Netflix" {
		t.Errorf("expected Netflix, got %s", transaction.Recipient)
	}

	if _, err := repo.Find(context.Background(), "estate_1", "tx_missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}
