package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/storage"
)

type fakeOcr struct {
	text string
	err  error
}

func (f *fakeOcr) ExtractText(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

type fakeAnalyzer struct {
	err   error
	calls int
}

func (f *fakeAnalyzer) AnalyzeTransaction(ctx context.Context, transaction *models.Transaction) error {
	f.calls++
	if f.err != nil {
		return f.err
	}

	transaction.Category = "streaming"
	transaction.IsSubscription = true
	return nil
}

func TestPipelineRun_PersistsBatch(t *testing.T) {
	store := storage.NewMemoryStore()
	transactionRepo := repos.NewTransactionRepo(store)

	ocr := &fakeOcr{text: "24.02.2024 Spotify AB -129,00 NOK\nikke en linje"}
	analyzer := &fakeAnalyzer{}
	pipeline := NewPipeline(ocr, analyzer, transactionRepo)

	transactions, skipped, err := pipeline.Run(context.Background(), "estate_1", []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", skipped)
	}
	if analyzer.calls != 1 {
		t.Errorf("expected 1 analyzer call, got %d", analyzer.calls)
	}
	if !strings.HasPrefix(transactions[0].Id, "tx_") {
		t.Errorf("expected tx_ id prefix, got %s", transactions[0].Id)
	}
	if transactions[0].Category != "streaming" {
		t.Errorf("expected analyzer category, got %s", transactions[0].Category)
	}

	stored, err := transactionRepo.ListByEstate(context.Background(), "estate_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 || stored[0].Id != transactions[0].Id {
		t.Errorf("stored batch does not match returned transactions: %+v", stored)
	}
}

func TestPipelineRun_AnalyzerFailureFallsBack(t *testing.T) {
	store := storage.NewMemoryStore()
	transactionRepo := repos.NewTransactionRepo(store)

	ocr := &fakeOcr{text: "24.02.2024 Spotify AB -129,00 NOK"}
	analyzer := &fakeAnalyzer{err: errors.New("model unavailable")}
	pipeline := NewPipeline(ocr, analyzer, transactionRepo)

	transactions, _, err := pipeline.Run(context.Background(), "estate_1", []byte("img"))
	if err != nil {
		t.Fatalf("analyzer failure should not fail the upload: %v", err)
	}

	if transactions[0].Category != "streaming" {
		t.Errorf("expected fallback category streaming, got %s", transactions[0].Category)
	}
	if !transactions[0].IsSubscription {
		t.Error("expected fallback to flag subscription")
	}
}

func TestPipelineRun_OcrFailureIsStageError(t *testing.T) {
	store := storage.NewMemoryStore()
	pipeline := NewPipeline(&fakeOcr{err: errors.New("no text found in image")}, &fakeAnalyzer{}, repos.NewTransactionRepo(store))

	_, _, err := pipeline.Run(context.Background(), "estate_1", []byte("img"))

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != "extract text from image" {
		t.Errorf("unexpected stage: %s", stageErr.Stage)
	}
	if !strings.HasPrefix(err.Error(), "Failed to extract text from image") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestPipelineRun_ParseFailureIsStageError(t *testing.T) {
	store := storage.NewMemoryStore()
	pipeline := NewPipeline(&fakeOcr{text: "31.02.2024 Spotify AB -129,00"}, &fakeAnalyzer{}, repos.NewTransactionRepo(store))

	_, _, err := pipeline.Run(context.Background(), "estate_1", []byte("img"))

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != "parse transactions" {
		t.Errorf("unexpected stage: %s", stageErr.Stage)
	}

	// Nothing is persisted on a failed upload.
	stored, err := repos.NewTransactionRepo(store).ListByEstate(context.Background(), "estate_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected no stored transactions, got %d", len(stored))
	}
}
