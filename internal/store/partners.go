package store

import (
	"context"
	"fmt"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

type partnersStore struct {
	*MYSQLStore
}

// Partners returns an object implementing the Partners interface
func (ms *MYSQLStore) Partners() dependency.Partners {
	return &partnersStore{
		MYSQLStore: ms,
	}
}

func partnerParams(p *entity.PartnerBody) map[string]any {
	return map[string]any{
		"name":      p.Name,
		"agency":    p.Agency,
		"imageUrl":  p.ImageURL,
		"sortOrder": p.SortOrder,
		"isActive":  p.IsActive,
	}
}

func (ms *MYSQLStore) AddPartner(ctx context.Context, p *entity.PartnerBody) (int, error) {
	query := `
	INSERT INTO partner
	(name, agency, image_url, sort_order, is_active)
	VALUES (:name, :agency, :imageUrl, :sortOrder, :isActive)`

	id, err := ExecNamedLastId(ctx, ms.db, query, partnerParams(p))
	if err != nil {
		return 0, fmt.Errorf("can't insert partner: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdatePartner(ctx context.Context, p *entity.PartnerBody, id int) error {
	query := `
	UPDATE partner
	SET
		name = :name,
		agency = :agency,
		image_url = :imageUrl,
		sort_order = :sortOrder,
		is_active = :isActive
	WHERE id = :id
	`
	params := partnerParams(p)
	params["id"] = id
	if err := ExecNamed(ctx, ms.db, query, params); err != nil {
		return fmt.Errorf("can't update partner: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeletePartnerById(ctx context.Context, id int) error {
	affected, err := ExecNamedAffected(ctx, ms.db, "DELETE FROM partner WHERE id = :id", map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete partner: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (ms *MYSQLStore) ListPartners(ctx context.Context, showInactive bool) ([]entity.Partner, error) {
	query := `SELECT * FROM partner`
	if !showInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	ps, err := QueryListNamed[entity.Partner](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list partners: %w", err)
	}
	if ps == nil {
		ps = []entity.Partner{}
	}
	return ps, nil
}
