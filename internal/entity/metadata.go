package entity

import (
	"strings"
	"time"
)

// PageMetadataBody holds the SEO columns of the page_metadata table.
// Rows are keyed by (page_type, page_slug); page_slug is null for
// non-parameterized pages like the home page.
type PageMetadataBody struct {
	PageType           string  `db:"page_type" json:"page_type" valid:"required"`
	PageSlug           *string `db:"page_slug" json:"page_slug"`
	Title              *string `db:"title" json:"title"`
	Description        *string `db:"description" json:"description"`
	Keywords           *string `db:"keywords" json:"keywords"`
	OGTitle            *string `db:"og_title" json:"og_title"`
	OGDescription      *string `db:"og_description" json:"og_description"`
	OGImage            *string `db:"og_image" json:"og_image"`
	TwitterCard        *string `db:"twitter_card" json:"twitter_card"`
	TwitterTitle       *string `db:"twitter_title" json:"twitter_title"`
	TwitterDescription *string `db:"twitter_description" json:"twitter_description"`
	TwitterImage       *string `db:"twitter_image" json:"twitter_image"`
	CanonicalURL       *string `db:"canonical_url" json:"canonical_url"`
	Robots             *string `db:"robots" json:"robots"`
}

// PageMetadata represents the page_metadata table.
type PageMetadata struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	PageMetadataBody
}

// Validate checks the metadata key fields.
func (mb *PageMetadataBody) Validate() error {
	mb.PageType = strings.TrimSpace(mb.PageType)
	if mb.PageType == "" {
		return &ValidationError{Message: "Le type de page est requis"}
	}
	return nil
}
