package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ImageType classifies rows of the offer_image table. One image per
// (offer, main) and (offer, banner) is treated as canonical; extra rows
// are tolerated and resolved by lowest (sort_order, id).
type ImageType string

const (
	ImageTypeMain    ImageType = "main"
	ImageTypeBanner  ImageType = "banner"
	ImageTypeGallery ImageType = "gallery"
)

var ValidImageTypes = map[ImageType]bool{
	ImageTypeMain:    true,
	ImageTypeBanner:  true,
	ImageTypeGallery: true,
}

// DateLayout is the wire format for departure dates.
const DateLayout = "2006-01-02"

// OfferBody holds the scalar columns of the offer table.
type OfferBody struct {
	Title            string              `db:"title" json:"title" valid:"required"`
	Slug             string              `db:"slug" json:"slug" valid:"required"`
	ShortDescription *string             `db:"short_description" json:"short_description"`
	LongDescription  *string             `db:"long_description" json:"long_description"`
	Price            decimal.NullDecimal `db:"price" json:"price"`
	Currency         string              `db:"currency" json:"currency"`
	PriceFrom        decimal.NullDecimal `db:"price_from" json:"-"`
	PromoPrice       decimal.NullDecimal `db:"promo_price" json:"promo_price"`
	PromoCurrency    *string             `db:"promo_currency" json:"promo_currency"`
	PromoStart       sql.NullTime        `db:"promo_start" json:"promo_start"`
	PromoEnd         sql.NullTime        `db:"promo_end" json:"promo_end"`
	PromoDescription *string             `db:"promo_description" json:"promo_description"`
	PriceIncludes    *string             `db:"price_includes" json:"price_includes"`
	PriceExcludes    *string             `db:"price_excludes" json:"price_excludes"`
	Label            *string             `db:"label" json:"label"`
	DurationDays     *int                `db:"duration_days" json:"duration_days"`
	DurationNights   *int                `db:"duration_nights" json:"duration_nights"`
	ImageMain        *string             `db:"image_main" json:"image_main"`
	ImageBanner      *string             `db:"image_banner" json:"image_banner"`
	IsActive         bool                `db:"is_active" json:"is_active"`
}

// Offer represents the offer table.
type Offer struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	OfferBody
}

// OfferImageInsert represents offer_image rows as submitted by the admin.
type OfferImageInsert struct {
	ImageURL  string    `db:"image_url" json:"image_url" valid:"required"`
	ImageType ImageType `db:"image_type" json:"image_type"`
	AltText   *string   `db:"alt_text" json:"alt_text"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
}

// OfferImage represents the offer_image table.
type OfferImage struct {
	Id      int `db:"id" json:"id"`
	OfferId int `db:"offer_id" json:"-"`
	OfferImageInsert
}

// OfferDate represents the offer_date table.
type OfferDate struct {
	Id            int       `db:"id" json:"-"`
	OfferId       int       `db:"offer_id" json:"-"`
	DepartureDate time.Time `db:"departure_date" json:"departure_date"`
}

// OfferLink is the compact relation shape (id + title + slug) attached to
// the single-offer view for destinations, travel types and travel themes.
type OfferLink struct {
	Id    int    `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	Slug  string `db:"slug" json:"slug"`
}

// OfferView is the denormalized list-view shape: offer scalars plus images,
// departure dates and the resolved image/price aliases.
type OfferView struct {
	Offer
	ImageURL       string              `json:"image_url"`
	BannerImageURL string              `json:"banner_image_url"`
	PriceFrom      decimal.NullDecimal `json:"price_from"`
	Images         []OfferImage        `json:"images"`
	AvailableDates []string            `json:"available_dates"`
}

// OfferFull is the single-offer view: the list shape plus relation arrays.
type OfferFull struct {
	OfferView
	TravelTypes  []OfferLink `json:"travel_types"`
	TravelThemes []OfferLink `json:"travel_themes"`
	Destinations []OfferLink `json:"destinations"`
}

// OfferNew carries an offer create/update payload: scalars plus the ids of
// related rows and the child rows to (re)insert wholesale.
type OfferNew struct {
	Offer          OfferBody          `json:"offer"`
	DestinationIds []int              `json:"destinationIds"`
	TypeIds        []int              `json:"typeIds"`
	ThemeIds       []int              `json:"themeIds"`
	AvailableDates []string           `json:"available_dates"`
	Images         []OfferImageInsert `json:"images"`
}

// OfferFilter narrows the public offers listing. Empty slugs mean no
// constraint on that facet. ShowInactive is set only by admin callers.
type OfferFilter struct {
	DestinationSlug string
	TypeSlug        string
	ThemeSlug       string
	ShowInactive    bool
}

// FacetValue is one selectable value in the offers browsing UI.
type FacetValue struct {
	Slug  string `db:"slug" json:"slug"`
	Title string `db:"title" json:"title"`
}

// FacetSelection is the subset of facets the user has already pinned.
type FacetSelection struct {
	DestinationSlug string
	TypeSlug        string
	ThemeSlug       string
}

// OfferFacets lists, per facet kind, the values that still match at least
// one active offer under the current selection. The pinned facet's list is
// left empty since the caller already holds its value.
type OfferFacets struct {
	Destinations []FacetValue `json:"destinations"`
	Types        []FacetValue `json:"types"`
	Themes       []FacetValue `json:"themes"`
}

// Validate checks the required offer fields and normalizes the payload.
func (on *OfferNew) Validate() error {
	if on.Offer.Title == "" || on.Offer.Slug == "" {
		return &ValidationError{Message: "Le titre et le slug sont requis"}
	}
	if on.Offer.Currency == "" {
		on.Offer.Currency = "EUR"
	}
	for i, img := range on.Images {
		if img.ImageURL == "" {
			return &ValidationError{Message: "L'URL de l'image est requise"}
		}
		if img.ImageType == "" {
			on.Images[i].ImageType = ImageTypeGallery
		} else if !ValidImageTypes[img.ImageType] {
			return &ValidationError{Message: "Type d'image invalide : " + string(img.ImageType)}
		}
	}
	for _, d := range on.AvailableDates {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return &ValidationError{Message: "Date de départ invalide : " + d}
		}
	}
	return nil
}
