package repos

import (
	"context"
	"errors"
	"time"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

var ErrInvitationNotFound = errors.New("invitation not found")

type RoleRepo struct {
	store storage.Store
}

func NewRoleRepo(store storage.Store) *RoleRepo {
	return &RoleRepo{store: store}
}

// List returns the estate's role list and its document revision. An absent
// document reads as an empty list with AnyRevision, so the first Add creates it.
func (r *RoleRepo) List(ctx context.Context, estateId string) ([]models.Role, int64, error) {
	roles := make([]models.Role, 0)
	rev, err := r.store.Get(ctx, rolesKey(estateId), &roles)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return roles, storage.AnyRevision, nil
		}
		return nil, 0, err
	}
	return roles, rev, nil
}

// Add appends a pending invitation. Duplicate pending invitations for the
// same email are not prevented.
func (r *RoleRepo) Add(ctx context.Context, estateId string, role models.Role) error {
	roles, rev, err := r.List(ctx, estateId)
	if err != nil {
		return err
	}

	roles = append(roles, role)
	return r.store.Put(ctx, rolesKey(estateId), roles, rev)
}

// Accept binds the principal to the first pending invitation matching email
// exactly. An already-accepted invitation no longer matches, so accepting
// twice fails with ErrInvitationNotFound.
func (r *RoleRepo) Accept(ctx context.Context, estateId, userId, email string) (*models.Role, error) {
	roles, rev, err := r.List(ctx, estateId)
	if err != nil {
		return nil, err
	}

	for i := range roles {
		if roles[i].Email != email || roles[i].Status != models.RoleStatusPending {
			continue
		}

		now := time.Now().UTC()
		roles[i].Status = models.RoleStatusAccepted
		roles[i].UserId = userId
		roles[i].AcceptedAt = &now

		if err := r.store.Put(ctx, rolesKey(estateId), roles, rev); err != nil {
			return nil, err
		}
		return &roles[i], nil
	}

	return nil, ErrInvitationNotFound
}
