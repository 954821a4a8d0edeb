package models

import "time"

// Inquiry is a contact-form submission, retained for operator review.
// Fields hold the raw submitted text; escaping happens at render time.
type Inquiry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
