package models

import "time"

// Comment is an append-only note on an estate, optionally tied to a task.
type Comment struct {
	Id        string     `json:"id"`
	EstateId  string     `json:"estate_id"`
	TaskId    *string    `json:"task_id,omitempty"`
	UserId    string     `json:"user_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
