package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	DateLogged   *time.Time `json:"dateLogged" db:"date_logged"` // NULL until the first login
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}
