package domain

import "time"

// TitleMaxLen is the maximum accepted length of a post title.
const TitleMaxLen = 255

// Post is the core aggregate. UserID is immutable after creation and
// identifies the single owner allowed to mutate the post.
type Post struct {
	ID        int64          `json:"id" bson:"_id"`
	UserID    int64          `json:"user_id" bson:"user_id"`
	Title     string         `json:"title" bson:"title"`
	Content   string         `json:"content" bson:"content"`
	Published bool           `json:"published" bson:"published"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	Author    *AuthorSummary `json:"user,omitempty" bson:"-"`
}

// OwnedBy reports whether userID may mutate this post. This is the single
// authorization rule of the system: only the creator updates or deletes.
func (p *Post) OwnedBy(userID int64) bool {
	return p.UserID == userID
}
