package models

import "time"

// Collaborator roles, weakest to strongest.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

const (
	RoleStatusPending  = "pending"
	RoleStatusAccepted = "accepted"
)

// Role is one collaborator's invitation/permission record for an estate.
// UserId stays empty until the invitee accepts.
type Role struct {
	EstateId   string     `json:"estate_id"`
	UserId     string     `json:"user_id"`
	Role       string     `json:"role"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	InvitedBy  string     `json:"invited_by"`
	InvitedAt  time.Time  `json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

func ValidRole(role string) bool {
	return role == RoleViewer || role == RoleEditor || role == RoleAdmin
}
