// Package domain holds DTOs for the matches http surface
package domain

// Row is the API view of one scored (user, listing) pair
type Row struct {
	UserID     string `json:"user_id"`
	ListingID  string `json:"listing_id"`
	Score      int    `json:"score"`
	ComputedAt string `json:"computed_at"`
}
