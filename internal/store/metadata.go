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

type metadataStore struct {
	*MYSQLStore
}

// Metadata returns an object implementing the Metadata interface
func (ms *MYSQLStore) Metadata() dependency.Metadata {
	return &metadataStore{
		MYSQLStore: ms,
	}
}

func metadataParams(mb *entity.PageMetadataBody) map[string]any {
	return map[string]any{
		"pageType":           mb.PageType,
		"pageSlug":           mb.PageSlug,
		"title":              mb.Title,
		"description":        mb.Description,
		"keywords":           mb.Keywords,
		"ogTitle":            mb.OGTitle,
		"ogDescription":      mb.OGDescription,
		"ogImage":            mb.OGImage,
		"twitterCard":        mb.TwitterCard,
		"twitterTitle":       mb.TwitterTitle,
		"twitterDescription": mb.TwitterDescription,
		"twitterImage":       mb.TwitterImage,
		"canonicalUrl":       mb.CanonicalURL,
		"robots":             mb.Robots,
	}
}

func (ms *MYSQLStore) AddPageMetadata(ctx context.Context, mb *entity.PageMetadataBody) (int, error) {
	query := `
	INSERT INTO page_metadata
	(page_type, page_slug, title, description, keywords,
	 og_title, og_description, og_image,
	 twitter_card, twitter_title, twitter_description, twitter_image,
	 canonical_url, robots)
	VALUES (:pageType, :pageSlug, :title, :description, :keywords,
	 :ogTitle, :ogDescription, :ogImage,
	 :twitterCard, :twitterTitle, :twitterDescription, :twitterImage,
	 :canonicalUrl, :robots)`

	id, err := ExecNamedLastId(ctx, ms.db, query, metadataParams(mb))
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't insert page metadata: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdatePageMetadata(ctx context.Context, mb *entity.PageMetadataBody, id int) error {
	query := `
	UPDATE page_metadata
	SET
		page_type = :pageType,
		page_slug = :pageSlug,
		title = :title,
		description = :description,
		keywords = :keywords,
		og_title = :ogTitle,
		og_description = :ogDescription,
		og_image = :ogImage,
		twitter_card = :twitterCard,
		twitter_title = :twitterTitle,
		twitter_description = :twitterDescription,
		twitter_image = :twitterImage,
		canonical_url = :canonicalUrl,
		robots = :robots
	WHERE id = :id
	`
	params := metadataParams(mb)
	params["id"] = id
	if err := ExecNamed(ctx, ms.db, query, params); err != nil {
		if ms.IsErrUniqueViolation(err) {
			return gerr.ErrAlreadyExists
		}
		return fmt.Errorf("can't update page metadata: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeletePageMetadataById(ctx context.Context, id int) error {
	affected, err := ExecNamedAffected(ctx, ms.db, "DELETE FROM page_metadata WHERE id = :id", map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete page metadata: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

// GetPageMetadata resolves the SEO row for a page. pageSlug is nil for pages
// keyed by type alone.
func (ms *MYSQLStore) GetPageMetadata(ctx context.Context, pageType string, pageSlug *string) (*entity.PageMetadata, error) {
	query := `SELECT * FROM page_metadata WHERE page_type = :pageType`
	params := map[string]any{
		"pageType": pageType,
	}
	if pageSlug == nil || *pageSlug == "" {
		query += ` AND page_slug IS NULL`
	} else {
		query += ` AND page_slug = :pageSlug`
		params["pageSlug"] = *pageSlug
	}

	md, err := QueryNamedOne[entity.PageMetadata](ctx, ms.db, query, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get page metadata: %w", err)
	}
	return &md, nil
}

func (ms *MYSQLStore) ListPageMetadata(ctx context.Context) ([]entity.PageMetadata, error) {
	mds, err := QueryListNamed[entity.PageMetadata](ctx, ms.db,
		`SELECT * FROM page_metadata ORDER BY page_type ASC, page_slug ASC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list page metadata: %w", err)
	}
	if mds == nil {
		mds = []entity.PageMetadata{}
	}
	return mds, nil
}
