package models

import "encoding/json"

// ActionLog is an append-only audit trail entry. Details holds an arbitrary
// JSON payload describing the change.
type ActionLog struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *int            `json:"entity_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
}
