package models

import "time"

type Lead struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	CompanyName       string    `json:"companyName,omitempty"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	ServiceInterested string    `json:"serviceInterested,omitempty"`
	Message           string    `json:"message,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
