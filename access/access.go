// Package access decides whether a principal may act on an estate. Every
// controller goes through Authorize instead of repeating ownership checks.
package access

import (
	"errors"

	"github.com/skifte/skifte-server/models"
)

type Level int

const (
	// Read: the owner or any accepted collaborator.
	Read Level = iota
	// Edit: the owner or an accepted collaborator that is not a viewer.
	Edit
	// Admin: the owner or an accepted admin collaborator.
	Admin
)

var ErrForbidden = errors.New("unauthorized access to estate")

// Authorize fails closed: no matching accepted role means deny. The owner
// passes every level regardless of the role list.
func Authorize(userId string, estate *models.Estate, roles []models.Role, level Level) error {
	if estate.UserId == userId {
		return nil
	}

	for _, role := range roles {
		if role.UserId != userId || role.Status != models.RoleStatusAccepted {
			continue
		}

		switch level {
		case Read:
			return nil
		case Edit:
			if role.Role != models.RoleViewer {
				return nil
			}
		case Admin:
			if role.Role == models.RoleAdmin {
				return nil
			}
		}
	}

	return ErrForbidden
}
