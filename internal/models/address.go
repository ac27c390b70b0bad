package models

import "github.com/google/uuid"

// Address rows are written once per order; both the shipping and billing
// pointers on the order reference the same row.
type Address struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Address1   string     `json:"address1"`
	Address2   string     `json:"address2,omitempty"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	Phone      string     `json:"phone"`
}
