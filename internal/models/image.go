package models

import "time"

// Image is metadata for a media object stored in R2. The file itself
// lives in the bucket; deactivating a row hides it without deleting.
type Image struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	R2Key     string    `json:"r2_key"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}
