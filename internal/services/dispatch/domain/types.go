// Package domain defines dispatch intents, decisions and dead letters
package domain

import (
	"time"

	"github.com/google/uuid"

	listdom "flatfinder/internal/services/listings/domain"
)

// IntentKind discriminates dead-lettered intents
type IntentKind string

const (
	// IntentNotify is a notification intent
	IntentNotify IntentKind = "notify"
	// IntentApply is an application-queue intent
	IntentApply IntentKind = "apply"
)

// Decision is one scored user for a listing, with the dispatch settings
// the thresholds are checked against. The matcher builds these from the
// index candidates so the dispatcher never touches the preference store
type Decision struct {
	UserID             uuid.UUID
	Score              int
	NotifyThreshold    int
	Channels           []string
	AutoApply          bool
	AutoApplyThreshold int
}

// NotifyIntent is what the notification collaborator receives
type NotifyIntent struct {
	UserID   uuid.UUID       `json:"user_id"`
	Listing  listdom.Summary `json:"listing"`
	Score    int             `json:"score"`
	Channels []string        `json:"channels,omitempty"`
}

// ApplyIntent is what the application queue collaborator receives
type ApplyIntent struct {
	UserID  uuid.UUID       `json:"user_id"`
	Listing listdom.Summary `json:"listing"`
	Score   int             `json:"score"`
}

// DeadLetter is an intent that exhausted its retry budget. It is kept for
// manual review and re-driving, never silently dropped
type DeadLetter struct {
	ID         uuid.UUID
	Kind       IntentKind
	Payload    []byte // intent JSON
	Attempts   int
	LastError  string
	State      string // "open" or "resolved"
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Dead letter states
const (
	StateOpen     = "open"
	StateResolved = "resolved"
)
