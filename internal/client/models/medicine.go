package models

// Medicine is a catalog record. SideEffect and Tags are entered by admins as
// comma-separated text and stored as lists.
type Medicine struct {
	ID         string   `json:"_id,omitempty"`
	Title      string   `json:"title"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Usage      string   `json:"usage"`
	SideEffect []string `json:"sideEffect,omitempty"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags,omitempty"`
}
