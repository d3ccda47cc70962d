package model

import "time"

// Contact is the data structure for a person in a user's contact book.
// Every contact belongs to exactly one user; the owner is fixed at creation
// and never transfers.
type Contact struct {
	Id        int64   `json:"id"             db:"id"`
	FirstName string  `json:"first_name"     db:"firstname"`
	LastName  string  `json:"last_name"      db:"lastname"`
	Email     string  `json:"email"          db:"email"`
	Phone     string  `json:"phone"          db:"phone"`
	Birthday  Date    `json:"birthday"       db:"birthday"`
	Info      *string `json:"info,omitempty" db:"info"`
	UserId    int64   `json:"-"              db:"user_id"`
}

// User is an account that owns contacts.
type User struct {
	Id             int64     `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
}
