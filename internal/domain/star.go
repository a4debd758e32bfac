package domain

import "time"

// Star records that a user has favorited one external gif.
// The (UserID, GifID) pair is unique: a user cannot star the same gif twice.
type Star struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GifID     string    `json:"gif_id"` // Opaque provider identifier, never parsed
	CreatedAt time.Time `json:"created_at"`
}
