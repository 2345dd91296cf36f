package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

type subscribersStore struct {
	*MYSQLStore
}

// Subscribers returns an object implementing the Subscribers interface
func (ms *MYSQLStore) Subscribers() dependency.Subscribers {
	return &subscribersStore{
		MYSQLStore: ms,
	}
}

// Subscribe inserts a new subscription or reactivates a previously
// unsubscribed one. The row id survives unsubscribe/resubscribe cycles.
func (ms *MYSQLStore) Subscribe(ctx context.Context, email string) (int, error) {
	var id int
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		existing, err := QueryNamedOne[entity.Subscription](ctx, rep.DB(),
			"SELECT * FROM newsletter_subscription WHERE email = :email", map[string]any{
				"email": email,
			})
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("can't get subscription: %w", err)
		}
		if err == nil {
			if existing.IsActive {
				return gerr.ErrAlreadySubscribed
			}
			err = ExecNamed(ctx, rep.DB(), `
			UPDATE newsletter_subscription
			SET is_active = 1, subscribed_at = NOW(), unsubscribed_at = NULL
			WHERE id = :id`, map[string]any{
				"id": existing.Id,
			})
			if err != nil {
				return fmt.Errorf("can't reactivate subscription: %w", err)
			}
			id = existing.Id
			return nil
		}

		lastId, err := ExecNamedLastId(ctx, rep.DB(), `
		INSERT INTO newsletter_subscription (email, is_active, subscribed_at)
		VALUES (:email, 1, NOW())`, map[string]any{
			"email": email,
		})
		if err != nil {
			if rep.IsErrUniqueViolation(err) {
				return gerr.ErrAlreadySubscribed
			}
			return fmt.Errorf("can't insert subscription: %w", err)
		}
		id = lastId
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Unsubscribe soft-deletes the subscription so the row id is preserved.
func (ms *MYSQLStore) Unsubscribe(ctx context.Context, email string) error {
	affected, err := ExecNamedAffected(ctx, ms.db, `
	UPDATE newsletter_subscription
	SET is_active = 0, unsubscribed_at = NOW()
	WHERE email = :email AND is_active = 1`, map[string]any{
		"email": email,
	})
	if err != nil {
		return fmt.Errorf("can't unsubscribe: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotSubscribed
	}
	return nil
}

func (ms *MYSQLStore) IsSubscribed(ctx context.Context, email string) (bool, error) {
	count, err := QueryCountNamed(ctx, ms.db, `
	SELECT COUNT(*) FROM newsletter_subscription
	WHERE email = :email AND is_active = 1`, map[string]any{
		"email": email,
	})
	if err != nil {
		return false, fmt.Errorf("can't check subscription: %w", err)
	}
	return count > 0, nil
}

func (ms *MYSQLStore) GetActiveSubscribers(ctx context.Context) ([]entity.Subscription, error) {
	subs, err := QueryListNamed[entity.Subscription](ctx, ms.db, `
	SELECT * FROM newsletter_subscription
	WHERE is_active = 1
	ORDER BY subscribed_at DESC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list subscribers: %w", err)
	}
	if subs == nil {
		subs = []entity.Subscription{}
	}
	return subs, nil
}
