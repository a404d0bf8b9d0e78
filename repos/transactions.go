package repos

import (
	"context"
	"errors"
	"time"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const uploadStampLayout = "20060102150405"

type TransactionRepo struct {
	store storage.Store
}

func NewTransactionRepo(store storage.Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// SaveBatch persists one upload as a single document keyed by estate id and
// upload timestamp.
func (r *TransactionRepo) SaveBatch(ctx context.Context, estateId string, transactions []models.Transaction) error {
	batch := models.TransactionBatch{
		EstateId:     estateId,
		Transactions: transactions,
	}

	stamp := time.Now().UTC().Format(uploadStampLayout)
	return r.store.Put(ctx, batchKey(estateId, stamp), batch, storage.AnyRevision)
}

// ListByEstate concatenates every stored batch for the estate in upload order.
func (r *TransactionRepo) ListByEstate(ctx context.Context, estateId string) ([]models.Transaction, error) {
	keys, err := r.store.List(ctx, batchPrefix(estateId))
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0)
	for _, key := range keys {
		batch := new(models.TransactionBatch)
		if _, err := r.store.Get(ctx, key, batch); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		transactions = append(transactions, batch.Transactions...)
	}
	return transactions, nil
}

// Find locates a transaction by id across the estate's batches.
func (r *TransactionRepo) Find(ctx context.Context, estateId, transactionId string) (*models.Transaction, error) {
	transactions, err := r.ListByEstate(ctx, estateId)
	if err != nil {
		return nil, err
	}

	for i := range transactions {
		if transactions[i].Id == transactionId {
			return &transactions[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}
