// Package domain defines DTOs for the dead-letter API
package domain

// ResolveInput marks one dead letter as handled
type ResolveInput struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// Row is the API view of a dead letter
type Row struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Payload    any    `json:"payload"`
	Attempts   int    `json:"attempts"`
	LastError  string `json:"last_error"`
	State      string `json:"state"`
	CreatedAt  string `json:"created_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
}
