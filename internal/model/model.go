// Package model defines the entity shapes consumed from the task-tracking API.
//
// The backend owns these definitions; nothing here is authoritative. Fields the
// backend returns as either a raw id or an embedded object are modeled as Ref.
package model

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Role names recognized by the access gate.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsDeleted   bool      `json:"is_deleted,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name,omitempty"`
	Mobile         string    `json:"mobile,omitempty"`
	Email          string    `json:"email,omitempty"`
	Role           Ref[Role] `json:"role,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Token          string    `json:"token,omitempty"`
	TokenExpiresAt string    `json:"token_expires_at,omitempty"`
	IsDeleted      bool      `json:"is_deleted,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// DisplayName returns the user's full name, falling back to the email and
// then the id when name fields are empty.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// RoleName resolves the role union: an embedded role object yields its name,
// a raw reference is taken to already be the role name.
func (u User) RoleName() string {
	if role, ok := u.Role.Obj(); ok && role.Name != "" {
		return role.Name
	}
	return u.Role.ID()
}

// Status is a named, ordered workflow stage. A nil Order sorts as 0.
type Status struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Order     *int      `json:"order,omitempty"`
	IsDeleted bool      `json:"is_deleted,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// OrderValue returns the sort key for column ordering.
func (s Status) OrderValue() int {
	if s.Order == nil {
		return 0
	}
	return *s.Order
}

type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      Ref[Status] `json:"status"`
	Assignee    Ref[User]   `json:"assignee,omitempty"`
	DueDate     string      `json:"dueDate,omitempty"`
	Priority    Priority    `json:"priority"`
	IsDeleted   bool        `json:"is_deleted,omitempty"`
	CreatedAt   time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt,omitempty"`
}

// StatusID returns the task's status id regardless of which union form the
// backend sent.
func (t Task) StatusID() string {
	return t.Status.ID()
}

// AssigneeLabel returns a printable assignee, preferring the embedded user's
// display name over the raw id.
func (t Task) AssigneeLabel() string {
	if u, ok := t.Assignee.Obj(); ok {
		return u.DisplayName()
	}
	return t.Assignee.ID()
}
