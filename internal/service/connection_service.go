package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ConnectionService owns the per-user Google connection record. The
// refresh token lives here and only here, it never rides back to the
// browser once a user is attached to the exchange.
type ConnectionService struct {
	queries *repository.Queries
}

func NewConnectionService(queries *repository.Queries) *ConnectionService {
	return &ConnectionService{
		queries: queries,
	}
}

func (cs *ConnectionService) Init() error {
	return nil
}

func (cs *ConnectionService) Upsert(ctx context.Context, userID string, user config.GoogleUser, tokens config.TokenSet) error {
	err := cs.queries.UpsertGoogleConnection(ctx, repository.UpsertGoogleConnectionParams{
		ID:           uuid.NewString(),
		UserID:       userID,
		GoogleID:     user.ID,
		GoogleEmail:  user.Email,
		RefreshToken: tokens.RefreshToken,
		Now:          time.Now().Unix(),
	})

	if err != nil {
		return err
	}

	log.Info().Str("userId", userID).Str("googleEmail", user.Email).Bool("refreshToken", tokens.RefreshToken != "").Msg("Stored Google connection")
	return nil
}

func (cs *ConnectionService) Get(ctx context.Context, userID string) (repository.GoogleConnection, bool, error) {
	conn, err := cs.queries.GetGoogleConnectionByUserID(ctx, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return repository.GoogleConnection{}, false, nil
	}

	if err != nil {
		return repository.GoogleConnection{}, false, err
	}

	return conn, true, nil
}

func (cs *ConnectionService) Revoke(ctx context.Context, userID string) error {
	return cs.queries.DeleteGoogleConnection(ctx, userID)
}
