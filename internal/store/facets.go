package store

import (
	"context"
	"fmt"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
)

// facetKind describes one filterable dimension of the offers listing and
// how it hangs off the offer table.
type facetKind struct {
	table      string
	joinTable  string
	joinColumn string
	paramName  string
}

var (
	facetDestination = facetKind{"destination", "offer_destination", "destination_id", "destinationSlug"}
	facetType        = facetKind{"travel_type", "offer_travel_type", "type_id", "typeSlug"}
	facetTheme       = facetKind{"travel_theme", "offer_travel_theme", "theme_id", "themeSlug"}
)

// GetOfferFacets computes, per facet kind, the values that still have at
// least one active matching offer under the pinned selection. A pinned
// facet is not recomputed; its list is returned empty. The active-filtering
// here must stay identical to ListOffers or the UI will propose facets
// with zero results.
func (ms *MYSQLStore) GetOfferFacets(ctx context.Context, pinned entity.FacetSelection) (*entity.OfferFacets, error) {
	facets := &entity.OfferFacets{
		Destinations: []entity.FacetValue{},
		Types:        []entity.FacetValue{},
		Themes:       []entity.FacetValue{},
	}

	var err error
	if pinned.DestinationSlug == "" {
		facets.Destinations, err = ms.facetValues(ctx, facetDestination, pinned)
		if err != nil {
			return nil, err
		}
	}
	if pinned.TypeSlug == "" {
		facets.Types, err = ms.facetValues(ctx, facetType, pinned)
		if err != nil {
			return nil, err
		}
	}
	if pinned.ThemeSlug == "" {
		facets.Themes, err = ms.facetValues(ctx, facetTheme, pinned)
		if err != nil {
			return nil, err
		}
	}
	return facets, nil
}

func (ms *MYSQLStore) facetValues(ctx context.Context, kind facetKind, pinned entity.FacetSelection) ([]entity.FacetValue, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT f.slug, f.title
		FROM %s f
		INNER JOIN %s j ON j.%s = f.id
		INNER JOIN offer o ON o.id = j.offer_id
		WHERE o.is_active = 1 AND f.is_active = 1`,
		kind.table, kind.joinTable, kind.joinColumn)

	params := map[string]any{}

	// restrict to offers that also match every *other* pinned facet
	if pinned.DestinationSlug != "" && kind.table != facetDestination.table {
		query += facetExistsClause(facetDestination)
		params[facetDestination.paramName] = pinned.DestinationSlug
	}
	if pinned.TypeSlug != "" && kind.table != facetType.table {
		query += facetExistsClause(facetType)
		params[facetType.paramName] = pinned.TypeSlug
	}
	if pinned.ThemeSlug != "" && kind.table != facetTheme.table {
		query += facetExistsClause(facetTheme)
		params[facetTheme.paramName] = pinned.ThemeSlug
	}

	query += ` ORDER BY f.title ASC`

	values, err := QueryListNamed[entity.FacetValue](ctx, ms.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get %s facets: %w", kind.table, err)
	}
	if values == nil {
		values = []entity.FacetValue{}
	}
	return values, nil
}

func facetExistsClause(kind facetKind) string {
	return fmt.Sprintf(`
		AND EXISTS (
			SELECT 1 FROM %s pj
			INNER JOIN %s pf ON pf.id = pj.%s
			WHERE pj.offer_id = o.id AND pf.slug = :%s AND pf.is_active = 1
		)`, kind.joinTable, kind.table, kind.joinColumn, kind.paramName)
}
