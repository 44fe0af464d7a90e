package repository

import (
	"context"
)

type UpsertGoogleConnectionParams struct {
	ID           string
	UserID       string
	GoogleID     string
	GoogleEmail  string
	RefreshToken string
	Now          int64
}

// UpsertGoogleConnection keeps at most one connection per user. A re-auth
// without a fresh refresh token keeps the stored one, since Google only
// issues the refresh token on first consent.
func (q *Queries) UpsertGoogleConnection(ctx context.Context, params UpsertGoogleConnectionParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO google_connections (id, user_id, google_id, google_email, refresh_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			google_id = excluded.google_id,
			google_email = excluded.google_email,
			refresh_token = CASE WHEN excluded.refresh_token = '' THEN google_connections.refresh_token ELSE excluded.refresh_token END,
			updated_at = excluded.updated_at`,
		params.ID, params.UserID, params.GoogleID, params.GoogleEmail, params.RefreshToken, params.Now, params.Now,
	)
	return err
}

func (q *Queries) GetGoogleConnectionByUserID(ctx context.Context, userID string) (GoogleConnection, error) {
	var conn GoogleConnection
	err := q.db.QueryRowContext(ctx,
		`SELECT id, user_id, google_id, google_email, refresh_token, created_at, updated_at
		FROM google_connections WHERE user_id = ?`, userID,
	).Scan(&conn.ID, &conn.UserID, &conn.GoogleID, &conn.GoogleEmail, &conn.RefreshToken, &conn.CreatedAt, &conn.UpdatedAt)
	return conn, err
}

func (q *Queries) DeleteGoogleConnection(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM google_connections WHERE user_id = ?`, userID)
	return err
}
