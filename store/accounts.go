// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Upgrade outcomes, one per space touched
const (
	UpgradeSpaceCreated       = "space_created"
	UpgradeAlreadyActive      = "already_active"
	UpgradeSubscriptionUpdate = "subscription_updated"
	UpgradeSubscriptionCreate = "subscription_created"
)

// ProPeriod is how long a manual pro upgrade lasts
const ProPeriod = 365 * 24 * time.Hour

type UpgradeStep struct {
	SpaceID        string
	SpaceName      string
	SubscriptionID string
	Outcome        string
}

type spaceRow struct {
	id           string
	name         string
	subID        sql.NullString
	activeStatus sql.NullBool
}

// UpgradeToPro gives every space of the user an active subscription. A user
// without spaces gets a new one, with the user as its admin.
func (s *Store) UpgradeToPro(ctx context.Context, email string, now time.Time) ([]UpgradeStep, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID, userName string
	err = tx.QueryRowContext(ctx, `SELECT id, name FROM app_user WHERE email = $1`, email).Scan(&userID, &userName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	spaces, err := userSpaces(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	steps := []UpgradeStep{}
	if len(spaces) == 0 {
		spaceID := uuid.NewString()
		spaceName := userName + "'s Space"
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO space (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)
		`, spaceID, spaceName, userID, now.UTC()); err != nil {
			return nil, fmt.Errorf("failed to create space: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO space_member (space_id, user_id, role) VALUES ($1, $2, 'ADMIN')
		`, spaceID, userID); err != nil {
			return nil, fmt.Errorf("failed to add space member: %w", err)
		}
		steps = append(steps, UpgradeStep{SpaceID: spaceID, SpaceName: spaceName, Outcome: UpgradeSpaceCreated})
		spaces = append(spaces, spaceRow{id: spaceID, name: spaceName})
	}

	for _, sp := range spaces {
		if sp.activeStatus.Valid && sp.activeStatus.Bool {
			steps = append(steps, UpgradeStep{SpaceID: sp.id, SpaceName: sp.name, SubscriptionID: sp.subID.String, Outcome: UpgradeAlreadyActive})
			continue
		}

		step, err := activateSubscription(ctx, tx, sp, userID, now)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return steps, nil
}

func userSpaces(ctx context.Context, tx *sql.Tx, userID string) ([]spaceRow, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT s.id, s.name, sub.id, sub.active
		FROM space s
		LEFT JOIN subscription sub ON sub.space_id = s.id
		WHERE s.owner_id = $1
		   OR s.id IN (SELECT space_id FROM space_member WHERE user_id = $1)
		ORDER BY s.created_at, s.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spaces: %w", err)
	}
	defer rows.Close()

	spaces := []spaceRow{}
	for rows.Next() {
		var sp spaceRow
		if err := rows.Scan(&sp.id, &sp.name, &sp.subID, &sp.activeStatus); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		spaces = append(spaces, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spaces: %w", err)
	}
	return spaces, nil
}

func activateSubscription(ctx context.Context, tx *sql.Tx, sp spaceRow, userID string, now time.Time) (UpgradeStep, error) {
	periodEnd := now.Add(ProPeriod).UTC()

	if sp.subID.Valid {
		if _, err := tx.ExecContext(ctx, `
			UPDATE subscription
			SET active = $1, status = 'active', period_end = $2
			WHERE id = $3
		`, true, periodEnd, sp.subID.String); err != nil {
			return UpgradeStep{}, fmt.Errorf("failed to update subscription: %w", err)
		}
		return UpgradeStep{SpaceID: sp.id, SpaceName: sp.name, SubscriptionID: sp.subID.String, Outcome: UpgradeSubscriptionUpdate}, nil
	}

	subID := "test_sub_" + uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO subscription (
			id, user_id, space_id, price_id, subscription_item_id, amount, currency,
			billing_interval, quantity, active, status, period_start, period_end, cancel_at_period_end
		)
		VALUES ($1, $2, $3, 'test_price_id', $4, 0, 'usd', 'month', 1, $5, 'active', $6, $7, $8)
	`, subID, userID, sp.id, "test_item_"+uuid.NewString(), true, now.UTC(), periodEnd, false); err != nil {
		return UpgradeStep{}, fmt.Errorf("failed to create subscription: %w", err)
	}
	return UpgradeStep{SpaceID: sp.id, SpaceName: sp.name, SubscriptionID: subID, Outcome: UpgradeSubscriptionCreate}, nil
}
