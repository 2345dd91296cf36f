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

// taxonomiesStore serves both travel_type and travel_theme, which share a
// schema; the kind argument picks the table.
type taxonomiesStore struct {
	*MYSQLStore
}

// Taxonomies returns an object implementing the Taxonomies interface
func (ms *MYSQLStore) Taxonomies() dependency.Taxonomies {
	return &taxonomiesStore{
		MYSQLStore: ms,
	}
}

func taxonomyParams(t *entity.TaxonomyBody) map[string]any {
	return map[string]any{
		"title":       t.Title,
		"slug":        t.Slug,
		"description": t.Description,
		"imageUrl":    t.ImageURL,
		"bannerUrl":   t.BannerURL,
		"sortOrder":   t.SortOrder,
		"isActive":    t.IsActive,
	}
}

func (ms *MYSQLStore) AddTaxonomy(ctx context.Context, kind entity.TaxonomyKind, t *entity.TaxonomyBody) (int, error) {
	query := fmt.Sprintf(`
	INSERT INTO %s
	(title, slug, description, image_url, banner_url, sort_order, is_active)
	VALUES (:title, :slug, :description, :imageUrl, :bannerUrl, :sortOrder, :isActive)`, kind.Table())

	id, err := ExecNamedLastId(ctx, ms.db, query, taxonomyParams(t))
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't insert %s: %w", kind.Table(), err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdateTaxonomy(ctx context.Context, kind entity.TaxonomyKind, t *entity.TaxonomyBody, id int) error {
	query := fmt.Sprintf(`
	UPDATE %s
	SET
		title = :title,
		slug = :slug,
		description = :description,
		image_url = :imageUrl,
		banner_url = :bannerUrl,
		sort_order = :sortOrder,
		is_active = :isActive
	WHERE id = :id
	`, kind.Table())
	params := taxonomyParams(t)
	params["id"] = id
	if err := ExecNamed(ctx, ms.db, query, params); err != nil {
		return fmt.Errorf("can't update %s: %w", kind.Table(), err)
	}
	return nil
}

// DeleteTaxonomyById removes the row and its offer links.
func (ms *MYSQLStore) DeleteTaxonomyById(ctx context.Context, kind entity.TaxonomyKind, id int) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = :id", kind.JoinTable(), kind.JoinColumn())
		if err := ExecNamed(ctx, rep.DB(), query, map[string]any{"id": id}); err != nil {
			return fmt.Errorf("can't delete %s links: %w", kind.Table(), err)
		}
		query = fmt.Sprintf("DELETE FROM %s WHERE id = :id", kind.Table())
		affected, err := ExecNamedAffected(ctx, rep.DB(), query, map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't delete %s: %w", kind.Table(), err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}

func (ms *MYSQLStore) GetTaxonomyBySlug(ctx context.Context, kind entity.TaxonomyKind, slug string, showInactive bool) (*entity.Taxonomy, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE slug = :slug`, kind.Table())
	if !showInactive {
		query += ` AND is_active = 1`
	}
	t, err := QueryNamedOne[entity.Taxonomy](ctx, ms.db, query, map[string]any{
		"slug": slug,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get %s: %w", kind.Table(), err)
	}
	return &t, nil
}

func (ms *MYSQLStore) ListTaxonomies(ctx context.Context, kind entity.TaxonomyKind, showInactive bool) ([]entity.Taxonomy, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, kind.Table())
	if !showInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY sort_order ASC, title ASC`

	ts, err := QueryListNamed[entity.Taxonomy](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list %s: %w", kind.Table(), err)
	}
	if ts == nil {
		ts = []entity.Taxonomy{}
	}
	return ts, nil
}
