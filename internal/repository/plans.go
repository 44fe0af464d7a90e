package repository

import (
	"context"
	"database/sql"
)

type UpsertUserPlanParams struct {
	ID        string
	UserID    string
	PlanName  string
	ExpiresAt sql.NullInt64
	UpdatedAt int64
}

func (q *Queries) UpsertUserPlan(ctx context.Context, params UpsertUserPlanParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO user_plans (id, user_id, plan_name, expires_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET plan_name = excluded.plan_name, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		params.ID, params.UserID, params.PlanName, params.ExpiresAt, params.UpdatedAt,
	)
	return err
}

func (q *Queries) GetUserPlan(ctx context.Context, userID string) (UserPlan, error) {
	var plan UserPlan
	err := q.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan_name, expires_at, updated_at FROM user_plans WHERE user_id = ?`, userID,
	).Scan(&plan.ID, &plan.UserID, &plan.PlanName, &plan.ExpiresAt, &plan.UpdatedAt)
	return plan, err
}
