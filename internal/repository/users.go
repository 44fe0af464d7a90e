package repository

import (
	"context"
)

type CreateUserParams struct {
	ID        string
	Email     string
	Password  string
	CreatedAt int64
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password, created_at) VALUES (?, ?, ?, ?)`,
		params.ID, params.Email, params.Password, params.CreatedAt,
	)
	return err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	return user, err
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	return user, err
}

type UpsertProfileParams struct {
	UserID    string
	FirstName string
	LastName  string
	UpdatedAt int64
}

func (q *Queries) UpsertProfile(ctx context.Context, params UpsertProfileParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, first_name, last_name, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, updated_at = excluded.updated_at`,
		params.UserID, params.FirstName, params.LastName, params.UpdatedAt,
	)
	return err
}

func (q *Queries) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var profile Profile
	err := q.db.QueryRowContext(ctx,
		`SELECT user_id, first_name, last_name, updated_at FROM profiles WHERE user_id = ?`, userID,
	).Scan(&profile.UserID, &profile.FirstName, &profile.LastName, &profile.UpdatedAt)
	return profile, err
}
