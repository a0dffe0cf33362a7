package models

import "time"

// Notification is an in-app notification shown to a tenant or owner.
// Email delivery is handled separately; this record only feeds the UI feed.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      EventKind `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
