package domain

import "time"

// Tag is a user-private label. Names are unique per user, not globally:
// two users can both own a "funny" tag and never see each other's.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagStar is the association row joining a tag to a star (many-to-many).
// A link can only exist while its star does; unstarring cascades links away.
// Tag rows themselves are never deleted.
type TagStar struct {
	TagID     string    `json:"tag_id"`
	StarID    string    `json:"star_id"`
	CreatedAt time.Time `json:"created_at"`
}
