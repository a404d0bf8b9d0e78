// Package ingest turns an uploaded bank-statement image into persisted
// transaction records: OCR, line parse, AI categorization with a static
// fallback, then one batch document per upload.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/repos"
)

// OCR extracts raw text from an image, failing when no text is found.
type OCR interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Analyzer enriches a parsed transaction with category and subscription
// details. Any error falls back to the static classifier; it is never fatal.
type Analyzer interface {
	AnalyzeTransaction(ctx context.Context, transaction *models.Transaction) error
}

// StageError marks which pipeline stage rejected the upload. These surface
// as 400s with the stage named in the message.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Pipeline struct {
	ocr          OCR
	analyzer     Analyzer
	transactions *repos.TransactionRepo
}

func NewPipeline(ocr OCR, analyzer Analyzer, transactions *repos.TransactionRepo) *Pipeline {
	return &Pipeline{
		ocr:          ocr,
		analyzer:     analyzer,
		transactions: transactions,
	}
}

// Run processes one upload end to end and persists the resulting batch.
// It returns the stored transactions and the number of dropped lines.
func (p *Pipeline) Run(ctx context.Context, estateId string, image []byte) ([]models.Transaction, int, error) {
	text, err := p.ocr.ExtractText(ctx, image)
	if err != nil {
		return nil, 0, &StageError{Stage: "extract text from image", Err: err}
	}

	transactions, skipped, err := ParseStatement(text)
	if err != nil {
		return nil, 0, &StageError{Stage: "parse transactions", Err: err}
	}

	for i := range transactions {
		if err := p.analyzer.AnalyzeTransaction(ctx, &transactions[i]); err != nil {
			log.Warn().Err(err).Str("recipient", transactions[i].Recipient).
				Msg("Transaction analysis failed, using fallback classifier")
			ClassifyFallback(&transactions[i])
		}
		transactions[i].Id = "tx_" + uuid.NewString()
	}

	if err := p.transactions.SaveBatch(ctx, estateId, transactions); err != nil {
		return nil, 0, err
	}

	return transactions, skipped, nil
}
