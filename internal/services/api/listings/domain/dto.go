// Package domain holds DTOs for the listings http surface
package domain

import "encoding/json"

// Row is the API view of one canonical listing
type Row struct {
	ExternalID  string          `json:"external_id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Rooms       int             `json:"rooms"`
	SizeSqm     float64         `json:"size_sqm"`
	District    string          `json:"district"`
	PetFriendly string          `json:"pet_friendly,omitempty"`
	Balcony     string          `json:"balcony,omitempty"`
	Furnished   string          `json:"furnished,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
	FirstSeenAt string          `json:"first_seen_at"`
	LastSeenAt  string          `json:"last_seen_at"`
	IsActive    bool            `json:"is_active"`
}
