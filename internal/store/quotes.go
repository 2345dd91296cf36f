package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

type quotesStore struct {
	*MYSQLStore
}

// Quotes returns an object implementing the Quotes interface
func (ms *MYSQLStore) Quotes() dependency.Quotes {
	return &quotesStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) SubmitQuoteRequest(ctx context.Context, q *entity.QuoteRequestInsert) (string, error) {
	reference := uuid.New().String()
	query := `
	INSERT INTO quote_request
	(reference, first_name, last_name, email, phone, message,
	 destination_id, theme_id, type_id, departure_date, travelers_count, status)
	VALUES (:reference, :firstName, :lastName, :email, :phone, :message,
	 :destinationId, :themeId, :typeId, :departureDate, :travelersCount, :status)`

	err := ExecNamed(ctx, ms.db, query, map[string]any{
		"reference":      reference,
		"firstName":      q.FirstName,
		"lastName":       q.LastName,
		"email":          q.Email,
		"phone":          q.Phone,
		"message":        q.Message,
		"destinationId":  q.DestinationId,
		"themeId":        q.ThemeId,
		"typeId":         q.TypeId,
		"departureDate":  q.DepartureDate,
		"travelersCount": q.TravelersCount,
		"status":         entity.QuoteStatusNew,
	})
	if err != nil {
		return "", fmt.Errorf("can't insert quote request: %w", err)
	}
	return reference, nil
}

func (ms *MYSQLStore) GetQuoteRequestsPaged(ctx context.Context, limit, offset int, filters entity.QuoteRequestFilters) ([]entity.QuoteRequest, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var conds []string
	params := map[string]any{
		"limit":  limit,
		"offset": offset,
	}
	if filters.Status != nil {
		conds = append(conds, "status = :status")
		params["status"] = *filters.Status
	}
	if filters.Email != "" {
		conds = append(conds, "email = :email")
		params["email"] = filters.Email
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	count, err := QueryCountNamed(ctx, ms.db,
		"SELECT COUNT(*) FROM quote_request"+where, params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't count quote requests: %w", err)
	}

	query := "SELECT * FROM quote_request" + where +
		" ORDER BY created_at DESC, id DESC LIMIT :limit OFFSET :offset"
	qs, err := QueryListNamed[entity.QuoteRequest](ctx, ms.db, query, params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't list quote requests: %w", err)
	}
	if qs == nil {
		qs = []entity.QuoteRequest{}
	}
	return qs, count, nil
}

func (ms *MYSQLStore) UpdateQuoteRequestStatus(ctx context.Context, id int, status entity.QuoteStatus) error {
	affected, err := ExecNamedAffected(ctx, ms.db,
		"UPDATE quote_request SET status = :status WHERE id = :id", map[string]any{
			"id":     id,
			"status": status,
		})
	if err != nil {
		return fmt.Errorf("can't update quote request status: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotFound
	}
	return nil
}
