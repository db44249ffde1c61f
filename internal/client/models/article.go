package models

import "time"

// Article is a published health article. Content lives on the remote system;
// the client lists, filters and (for admins) deletes records.
type Article struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
