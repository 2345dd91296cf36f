package entity

import (
	"strings"
	"time"
)

// TestimonialBody holds the scalar columns of the testimonial table.
// destination_id and theme_id are loose references: they are nullable and
// not cascaded when the referenced row is removed.
type TestimonialBody struct {
	ClientName      string  `db:"client_name" json:"client_name" valid:"required"`
	ClientAvatar    *string `db:"client_avatar" json:"client_avatar"`
	ImageURL        *string `db:"image_url" json:"image_url"`
	TestimonialText string  `db:"testimonial_text" json:"testimonial_text" valid:"required"`
	Rating          int     `db:"rating" json:"rating"`
	DestinationId   *int    `db:"destination_id" json:"destination_id"`
	ThemeId         *int    `db:"theme_id" json:"theme_id"`
	IsFeatured      bool    `db:"is_featured" json:"is_featured"`
	IsPublished     bool    `db:"is_published" json:"is_published"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

// Testimonial represents the testimonial table.
type Testimonial struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	TestimonialBody
}

// Validate checks required testimonial fields and the rating bounds.
func (tb *TestimonialBody) Validate() error {
	tb.ClientName = strings.TrimSpace(tb.ClientName)
	tb.TestimonialText = strings.TrimSpace(tb.TestimonialText)
	if tb.ClientName == "" || tb.TestimonialText == "" {
		return &ValidationError{Message: "Le nom du client et le témoignage sont requis"}
	}
	if tb.Rating < 0 || tb.Rating > 5 {
		return &ValidationError{Message: "La note doit être comprise entre 0 et 5"}
	}
	return nil
}
