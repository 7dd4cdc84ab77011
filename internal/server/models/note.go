package models

import "time"

// Note is a titled text record owned by a user.
type Note struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteWithUser is a Note annotated with its owner's username. Username is
// empty when the owner no longer exists.
type NoteWithUser struct {
	Note
	Username string `json:"username,omitempty"`
}
