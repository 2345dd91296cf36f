package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DestinationBody holds the scalar columns of the destination table.
// available_dates is a legacy JSON-encoded column superseded by per-offer
// departure dates; it is carried through untouched for old clients.
type DestinationBody struct {
	Title              string              `db:"title" json:"title" valid:"required"`
	Slug               string              `db:"slug" json:"slug" valid:"required"`
	Description        *string             `db:"description" json:"description"`
	LongDescription    *string             `db:"long_description" json:"long_description"`
	ImageURL           *string             `db:"image_url" json:"image_url"`
	BannerURL          *string             `db:"banner_url" json:"banner_url"`
	PriceFrom          decimal.NullDecimal `db:"price_from" json:"price_from"`
	DurationMinDays    *int                `db:"duration_min_days" json:"duration_min_days"`
	DurationMaxDays    *int                `db:"duration_max_days" json:"duration_max_days"`
	GroupSizeMin       *int                `db:"group_size_min" json:"group_size_min"`
	GroupSizeMax       *int                `db:"group_size_max" json:"group_size_max"`
	AvailableDatesJSON *string             `db:"available_dates" json:"available_dates_legacy"`
	SortOrder          int                 `db:"sort_order" json:"sort_order"`
	IsActive           bool                `db:"is_active" json:"is_active"`
}

// Destination represents the destination table.
type Destination struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	DestinationBody
}

// TaxonomyBody holds the columns shared by the travel_type and travel_theme
// tables, which are structurally identical.
type TaxonomyBody struct {
	Title       string  `db:"title" json:"title" valid:"required"`
	Slug        string  `db:"slug" json:"slug" valid:"required"`
	Description *string `db:"description" json:"description"`
	ImageURL    *string `db:"image_url" json:"image_url"`
	BannerURL   *string `db:"banner_url" json:"banner_url"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// Taxonomy represents a travel_type or travel_theme row.
type Taxonomy struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	TaxonomyBody
}

// TaxonomyKind selects which of the two structurally identical tables a
// taxonomy operation targets.
type TaxonomyKind string

const (
	TaxonomyTravelType  TaxonomyKind = "travel_type"
	TaxonomyTravelTheme TaxonomyKind = "travel_theme"
)

var ValidTaxonomyKinds = map[TaxonomyKind]bool{
	TaxonomyTravelType:  true,
	TaxonomyTravelTheme: true,
}

// Table returns the underlying table name.
func (tk TaxonomyKind) Table() string {
	return string(tk)
}

// JoinTable returns the offer join table for this taxonomy kind.
func (tk TaxonomyKind) JoinTable() string {
	switch tk {
	case TaxonomyTravelTheme:
		return "offer_travel_theme"
	default:
		return "offer_travel_type"
	}
}

// JoinColumn returns the foreign key column of the join table.
func (tk TaxonomyKind) JoinColumn() string {
	switch tk {
	case TaxonomyTravelTheme:
		return "theme_id"
	default:
		return "type_id"
	}
}

// Validate checks required destination fields.
func (db *DestinationBody) Validate() error {
	db.Title = strings.TrimSpace(db.Title)
	db.Slug = strings.TrimSpace(db.Slug)
	if db.Title == "" || db.Slug == "" {
		return &ValidationError{Message: "Le titre et le slug sont requis"}
	}
	return nil
}

// Validate checks required taxonomy fields.
func (tb *TaxonomyBody) Validate() error {
	tb.Title = strings.TrimSpace(tb.Title)
	tb.Slug = strings.TrimSpace(tb.Slug)
	if tb.Title == "" || tb.Slug == "" {
		return &ValidationError{Message: "Le titre et le slug sont requis"}
	}
	return nil
}
