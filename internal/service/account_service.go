package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/repository"

	"github.com/google/uuid"
)

var ErrUnknownPlan = errors.New("unknown plan")

// AccountService covers the dashboard CRUD, profile and subscription
// plan per user.
type AccountService struct {
	queries *repository.Queries
}

func NewAccountService(queries *repository.Queries) *AccountService {
	return &AccountService{
		queries: queries,
	}
}

func (as *AccountService) Init() error {
	return nil
}

func (as *AccountService) GetProfile(ctx context.Context, userID string) (repository.Profile, error) {
	profile, err := as.queries.GetProfile(ctx, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return repository.Profile{UserID: userID}, nil
	}

	return profile, err
}

func (as *AccountService) UpdateProfile(ctx context.Context, userID string, firstName string, lastName string) error {
	return as.queries.UpsertProfile(ctx, repository.UpsertProfileParams{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		UpdatedAt: time.Now().Unix(),
	})
}

func (as *AccountService) Plans() []config.Plan {
	return config.Plans
}

func (as *AccountService) GetPlan(ctx context.Context, userID string) (repository.UserPlan, bool, error) {
	plan, err := as.queries.GetUserPlan(ctx, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return repository.UserPlan{}, false, nil
	}

	if err != nil {
		return repository.UserPlan{}, false, err
	}

	return plan, true, nil
}

func (as *AccountService) SelectPlan(ctx context.Context, userID string, planID string) error {
	var selected *config.Plan

	for _, plan := range config.Plans {
		if plan.ID == planID {
			selected = &plan
			break
		}
	}

	if selected == nil {
		return ErrUnknownPlan
	}

	var expiresAt sql.NullInt64

	// Paid plans run on a monthly cycle, the free tier never expires
	if selected.PriceCents > 0 {
		expiresAt = sql.NullInt64{Int64: time.Now().AddDate(0, 1, 0).Unix(), Valid: true}
	}

	return as.queries.UpsertUserPlan(ctx, repository.UpsertUserPlanParams{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanName:  selected.ID,
		ExpiresAt: expiresAt,
		UpdatedAt: time.Now().Unix(),
	})
}
