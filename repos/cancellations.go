package repos

import (
	"context"
	"errors"
	"time"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

var ErrCancellationNotFound = errors.New("cancellation not found")

type CancellationRepo struct {
	store storage.Store
}

func NewCancellationRepo(store storage.Store) *CancellationRepo {
	return &CancellationRepo{store: store}
}

func (r *CancellationRepo) Create(ctx context.Context, cancellation *models.Cancellation) error {
	key := cancellationKey(cancellation.EstateId, cancellation.TransactionId)
	return r.store.Put(ctx, key, cancellation, storage.AnyRevision)
}

func (r *CancellationRepo) Get(ctx context.Context, estateId, transactionId string) (*models.Cancellation, int64, error) {
	cancellation := new(models.Cancellation)
	rev, err := r.store.Get(ctx, cancellationKey(estateId, transactionId), cancellation)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, 0, ErrCancellationNotFound
		}
		return nil, 0, err
	}
	return cancellation, rev, nil
}

// UpdateStatus overwrites the current status and appends exactly one history
// entry. Prior entries are never touched.
func (r *CancellationRepo) UpdateStatus(ctx context.Context, estateId, transactionId, status, comment string) (*models.Cancellation, error) {
	cancellation, rev, err := r.Get(ctx, estateId, transactionId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cancellation.Status = status
	cancellation.LastUpdated = now
	cancellation.StatusHistory = append(cancellation.StatusHistory, models.CancellationStatusEntry{
		Status:    status,
		Timestamp: now,
		Comment:   comment,
	})

	key := cancellationKey(estateId, transactionId)
	if err := r.store.Put(ctx, key, cancellation, rev); err != nil {
		return nil, err
	}
	return cancellation, nil
}
