package domain

import "time"

// User models a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// AuthorSummary is the minimal user view attached to post responses.
// It deliberately exposes only id, name and email.
type AuthorSummary struct {
	ID    int64  `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Summary projects a user down to the fields safe to embed in a post.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
