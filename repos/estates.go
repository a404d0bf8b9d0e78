package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

var ErrEstateNotFound = errors.New("estate not found")

type EstateRepo struct {
	store storage.Store
}

func NewEstateRepo(store storage.Store) *EstateRepo {
	return &EstateRepo{store: store}
}

func (r *EstateRepo) Create(ctx context.Context, userId string) (*models.Estate, error) {
	now := time.Now().UTC()
	estate := &models.Estate{
		Id:          "estate_" + uuid.NewString(),
		UserId:      userId,
		Status:      models.EstateStatusDraft,
		CurrentStep: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
		Heirs:       []models.Person{},
		Assets:      []models.Asset{},
		Debts:       []models.Debt{},
		EstateName:  "Nytt arveoppgjør",
		Progress:    0,
		Tasks:       models.DefaultTasks(),
	}

	if err := r.store.Put(ctx, estateKey(estate.Id), estate, storage.AnyRevision); err != nil {
		return nil, err
	}
	return estate, nil
}

func (r *EstateRepo) Get(ctx context.Context, estateId string) (*models.Estate, int64, error) {
	estate := new(models.Estate)
	rev, err := r.store.Get(ctx, estateKey(estateId), estate)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, 0, ErrEstateNotFound
		}
		return nil, 0, err
	}
	return estate, rev, nil
}

func (r *EstateRepo) Put(ctx context.Context, estate *models.Estate, rev int64) error {
	return r.store.Put(ctx, estateKey(estate.Id), estate, rev)
}

// Delete removes the estate and cascades to its role and comment documents.
// Missing cascade documents are not an error; a missing estate is.
func (r *EstateRepo) Delete(ctx context.Context, estateId string) error {
	if err := r.store.Delete(ctx, estateKey(estateId)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrEstateNotFound
		}
		return err
	}

	for _, key := range []string{rolesKey(estateId), commentsKey(estateId)} {
		if err := r.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}

// List returns every stored estate; access filtering happens in the caller.
func (r *EstateRepo) List(ctx context.Context) ([]models.Estate, error) {
	keys, err := r.store.List(ctx, "estates_")
	if err != nil {
		return nil, err
	}

	estates := make([]models.Estate, 0, len(keys))
	for _, key := range keys {
		estate := new(models.Estate)
		if _, err := r.store.Get(ctx, key, estate); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		estates = append(estates, *estate)
	}
	return estates, nil
}

// UpdateStatus is used by the payment webhook to flip an estate between
// paid and payment_failed.
func (r *EstateRepo) UpdateStatus(ctx context.Context, estateId, status string) error {
	estate, rev, err := r.Get(ctx, estateId)
	if err != nil {
		return err
	}

	estate.Status = status
	estate.UpdatedAt = time.Now().UTC()

	return r.Put(ctx, estate, rev)
}
