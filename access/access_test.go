package access

import (
	"errors"
	"testing"

	"github.com/skifte/skifte-server/models"
)

func accepted(userId, role string) models.Role {
	return models.Role{
		EstateId: "estate_1",
		UserId:   userId,
		Role:     role,
		Status:   models.RoleStatusAccepted,
	}
}

func TestAuthorize_OwnerPassesEveryLevel(t *testing.T) {
	estate := &models.Estate{Id: "estate_1", UserId: "owner"}

	for _, level := range []Level{Read, Edit, Admin} {
		if err := Authorize("owner", estate, nil, level); err != nil {
			t.Errorf("owner denied at level %d: %v", level, err)
		}
	}
}

func TestAuthorize_CollaboratorLevels(t *testing.T) {
	estate := &models.Estate{Id: "estate_1", UserId: "owner"}

	cases := []struct {
		name  string
		role  string
		level Level
		allow bool
	}{
		{"viewer can read", models.RoleViewer, Read, true},
		{"viewer cannot edit", models.RoleViewer, Edit, false},
		{"viewer is not admin", models.RoleViewer, Admin, false},
		{"editor can read", models.RoleEditor, Read, true},
		{"editor can edit", models.RoleEditor, Edit, true},
		{"editor is not admin", models.RoleEditor, Admin, false},
		{"admin can read", models.RoleAdmin, Read, true},
		{"admin can edit", models.RoleAdmin, Edit, true},
		{"admin is admin", models.RoleAdmin, Admin, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roles := []models.Role{accepted("collab", tc.role)}
			err := Authorize("collab", estate, roles, tc.level)

			if tc.allow && err != nil {
				t.Errorf("expected access, got %v", err)
			}
			if !tc.allow && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestAuthorize_PendingRoleGrantsNothing(t *testing.T) {
	estate := &models.Estate{Id: "estate_1", UserId: "owner"}
	roles := []models.Role{{
		EstateId: "estate_1",
		UserId:   "collab",
		Role:     models.RoleAdmin,
		Status:   models.RoleStatusPending,
	}}

	if err := Authorize("collab", estate, roles, Read); !errors.Is(err, ErrForbidden) {
		t.Errorf("pending role granted read access: %v", err)
	}
}

func TestAuthorize_StrangerIsDenied(t *testing.T) {
	estate := &models.Estate{Id: "estate_1", UserId: "owner"}
	roles := []models.Role{accepted("collab", models.RoleAdmin)}

	if err := Authorize("stranger", estate, roles, Read); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorize_OtherUsersRoleDoesNotLeak(t *testing.T) {
	estate := &models.Estate{Id: "estate_1", UserId: "owner"}
	roles := []models.Role{
		accepted("collab", models.RoleViewer),
		accepted("other", models.RoleAdmin),
	}

	if err := Authorize("collab", estate, roles, Admin); !errors.Is(err, ErrForbidden) {
		t.Errorf("viewer escalated through another user's role: %v", err)
	}
}
