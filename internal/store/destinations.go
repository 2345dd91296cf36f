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

type destinationsStore struct {
	*MYSQLStore
}

// Destinations returns an object implementing the Destinations interface
func (ms *MYSQLStore) Destinations() dependency.Destinations {
	return &destinationsStore{
		MYSQLStore: ms,
	}
}

func destinationParams(d *entity.DestinationBody) map[string]any {
	return map[string]any{
		"title":           d.Title,
		"slug":            d.Slug,
		"description":     d.Description,
		"longDescription": d.LongDescription,
		"imageUrl":        d.ImageURL,
		"bannerUrl":       d.BannerURL,
		"priceFrom":       d.PriceFrom,
		"durationMinDays": d.DurationMinDays,
		"durationMaxDays": d.DurationMaxDays,
		"groupSizeMin":    d.GroupSizeMin,
		"groupSizeMax":    d.GroupSizeMax,
		"availableDates":  d.AvailableDatesJSON,
		"sortOrder":       d.SortOrder,
		"isActive":        d.IsActive,
	}
}

func (ms *MYSQLStore) AddDestination(ctx context.Context, d *entity.DestinationBody) (int, error) {
	query := `
	INSERT INTO destination
	(title, slug, description, long_description, image_url, banner_url, price_from,
	 duration_min_days, duration_max_days, group_size_min, group_size_max,
	 available_dates, sort_order, is_active)
	VALUES (:title, :slug, :description, :longDescription, :imageUrl, :bannerUrl, :priceFrom,
	 :durationMinDays, :durationMaxDays, :groupSizeMin, :groupSizeMax,
	 :availableDates, :sortOrder, :isActive)`

	id, err := ExecNamedLastId(ctx, ms.db, query, destinationParams(d))
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't insert destination: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdateDestination(ctx context.Context, d *entity.DestinationBody, id int) error {
	query := `
	UPDATE destination
	SET
		title = :title,
		slug = :slug,
		description = :description,
		long_description = :longDescription,
		image_url = :imageUrl,
		banner_url = :bannerUrl,
		price_from = :priceFrom,
		duration_min_days = :durationMinDays,
		duration_max_days = :durationMaxDays,
		group_size_min = :groupSizeMin,
		group_size_max = :groupSizeMax,
		available_dates = :availableDates,
		sort_order = :sortOrder,
		is_active = :isActive
	WHERE id = :id
	`
	params := destinationParams(d)
	params["id"] = id
	if err := ExecNamed(ctx, ms.db, query, params); err != nil {
		return fmt.Errorf("can't update destination: %w", err)
	}
	return nil
}

// DeleteDestinationById removes the destination and its offer links.
func (ms *MYSQLStore) DeleteDestinationById(ctx context.Context, id int) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), "DELETE FROM offer_destination WHERE destination_id = :id", map[string]any{
			"id": id,
		})
		if err != nil {
			return fmt.Errorf("can't delete destination links: %w", err)
		}
		affected, err := ExecNamedAffected(ctx, rep.DB(), "DELETE FROM destination WHERE id = :id", map[string]any{
			"id": id,
		})
		if err != nil {
			return fmt.Errorf("can't delete destination: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}

func (ms *MYSQLStore) GetDestinationBySlug(ctx context.Context, slug string, showInactive bool) (*entity.Destination, error) {
	query := `SELECT * FROM destination WHERE slug = :slug`
	if !showInactive {
		query += ` AND is_active = 1`
	}
	d, err := QueryNamedOne[entity.Destination](ctx, ms.db, query, map[string]any{
		"slug": slug,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get destination: %w", err)
	}
	return &d, nil
}

func (ms *MYSQLStore) ListDestinations(ctx context.Context, showInactive bool) ([]entity.Destination, error) {
	query := `SELECT * FROM destination`
	if !showInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY sort_order ASC, title ASC`

	ds, err := QueryListNamed[entity.Destination](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list destinations: %w", err)
	}
	if ds == nil {
		ds = []entity.Destination{}
	}
	return ds, nil
}
