package repository

import (
	"database/sql"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt int64
}

type Profile struct {
	UserID    string
	FirstName string
	LastName  string
	UpdatedAt int64
}

type GoogleConnection struct {
	ID           string
	UserID       string
	GoogleID     string
	GoogleEmail  string
	RefreshToken string
	CreatedAt    int64
	UpdatedAt    int64
}

type UserPlan struct {
	ID        string
	UserID    string
	PlanName  string
	ExpiresAt sql.NullInt64
	UpdatedAt int64
}
