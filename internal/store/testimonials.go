package store

import (
	"context"
	"fmt"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

type testimonialsStore struct {
	*MYSQLStore
}

// Testimonials returns an object implementing the Testimonials interface
func (ms *MYSQLStore) Testimonials() dependency.Testimonials {
	return &testimonialsStore{
		MYSQLStore: ms,
	}
}

func testimonialParams(t *entity.TestimonialBody) map[string]any {
	return map[string]any{
		"clientName":      t.ClientName,
		"clientAvatar":    t.ClientAvatar,
		"imageUrl":        t.ImageURL,
		"testimonialText": t.TestimonialText,
		"rating":          t.Rating,
		"destinationId":   t.DestinationId,
		"themeId":         t.ThemeId,
		"isFeatured":      t.IsFeatured,
		"isPublished":     t.IsPublished,
		"isActive":        t.IsActive,
	}
}

func (ms *MYSQLStore) AddTestimonial(ctx context.Context, t *entity.TestimonialBody) (int, error) {
	query := `
	INSERT INTO testimonial
	(client_name, client_avatar, image_url, testimonial_text, rating,
	 destination_id, theme_id, is_featured, is_published, is_active)
	VALUES (:clientName, :clientAvatar, :imageUrl, :testimonialText, :rating,
	 :destinationId, :themeId, :isFeatured, :isPublished, :isActive)`

	id, err := ExecNamedLastId(ctx, ms.db, query, testimonialParams(t))
	if err != nil {
		return 0, fmt.Errorf("can't insert testimonial: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdateTestimonial(ctx context.Context, t *entity.TestimonialBody, id int) error {
	query := `
	UPDATE testimonial
	SET
		client_name = :clientName,
		client_avatar = :clientAvatar,
		image_url = :imageUrl,
		testimonial_text = :testimonialText,
		rating = :rating,
		destination_id = :destinationId,
		theme_id = :themeId,
		is_featured = :isFeatured,
		is_published = :isPublished,
		is_active = :isActive
	WHERE id = :id
	`
	params := testimonialParams(t)
	params["id"] = id
	if err := ExecNamed(ctx, ms.db, query, params); err != nil {
		return fmt.Errorf("can't update testimonial: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteTestimonialById(ctx context.Context, id int) error {
	affected, err := ExecNamedAffected(ctx, ms.db, "DELETE FROM testimonial WHERE id = :id", map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete testimonial: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (ms *MYSQLStore) ListTestimonials(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error) {
	query := `SELECT * FROM testimonial`
	if publishedOnly {
		query += ` WHERE is_published = 1 AND is_active = 1`
	}
	query += ` ORDER BY is_featured DESC, created_at DESC`

	ts, err := QueryListNamed[entity.Testimonial](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list testimonials: %w", err)
	}
	if ts == nil {
		ts = []entity.Testimonial{}
	}
	return ts, nil
}
