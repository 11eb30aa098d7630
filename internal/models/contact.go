package models

import (
	"time"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Fullname  string    `json:"fullname" db:"fullname"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactInput is the request body for the contact form
type ContactInput struct {
	Fullname string `json:"fullname" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Message  string `json:"message" validate:"required"`
}
