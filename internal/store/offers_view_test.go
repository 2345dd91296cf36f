package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
)

func strPtr(s string) *string { return &s }

func img(id int, url string, typ entity.ImageType, sortOrder int) entity.OfferImage {
	return entity.OfferImage{
		Id: id,
		OfferImageInsert: entity.OfferImageInsert{
			ImageURL:  url,
			ImageType: typ,
			SortOrder: sortOrder,
		},
	}
}

func TestBuildOfferView(t *testing.T) {
	offer := entity.Offer{
		Id: 1,
		OfferBody: entity.OfferBody{
			Title:       "Safari au Kenya",
			Slug:        "safari-kenya",
			Price:       decimal.NullDecimal{Decimal: decimal.NewFromInt(2490), Valid: true},
			ImageMain:   strPtr("/uploads/old-main.jpg"),
			ImageBanner: strPtr("/uploads/old-banner.jpg"),
		},
	}
	images := []entity.OfferImage{
		img(1, "/uploads/banner.jpg", entity.ImageTypeBanner, 0),
		img(2, "/uploads/main.jpg", entity.ImageTypeMain, 0),
		img(3, "/uploads/gallery-1.jpg", entity.ImageTypeGallery, 1),
	}
	dates := []entity.OfferDate{
		{DepartureDate: time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)},
		{DepartureDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	view := buildOfferView(offer, images, dates)

	// image rows win over the populated legacy columns
	assert.Equal(t, "/uploads/main.jpg", view.ImageURL)
	assert.Equal(t, "/uploads/banner.jpg", view.BannerImageURL)
	// no explicit price_from: falls back to the base price
	assert.True(t, view.PriceFrom.Valid)
	assert.True(t, view.PriceFrom.Decimal.Equal(decimal.NewFromInt(2490)))
	assert.Equal(t, []string{"2026-10-01", "2026-11-15"}, view.AvailableDates)
	assert.Len(t, view.Images, 3)
}

func TestBuildOfferViewLegacyImageFallback(t *testing.T) {
	offer := entity.Offer{
		Id: 2,
		OfferBody: entity.OfferBody{
			Title:       "Riad à Marrakech",
			Slug:        "riad-marrakech",
			ImageMain:   strPtr("/uploads/legacy-main.jpg"),
			ImageBanner: strPtr("/uploads/legacy-banner.jpg"),
		},
	}

	view := buildOfferView(offer, nil, nil)

	assert.Equal(t, "/uploads/legacy-main.jpg", view.ImageURL)
	assert.Equal(t, "/uploads/legacy-banner.jpg", view.BannerImageURL)
	assert.NotNil(t, view.Images)
	assert.Empty(t, view.Images)
	assert.Empty(t, view.AvailableDates)
	assert.False(t, view.PriceFrom.Valid)
}

func TestBuildOfferViewExplicitPriceFrom(t *testing.T) {
	offer := entity.Offer{
		OfferBody: entity.OfferBody{
			Title:     "Circuit Japon",
			Slug:      "circuit-japon",
			Price:     decimal.NullDecimal{Decimal: decimal.NewFromInt(3900), Valid: true},
			PriceFrom: decimal.NullDecimal{Decimal: decimal.NewFromInt(3490), Valid: true},
		},
	}

	view := buildOfferView(offer, nil, nil)
	assert.True(t, view.PriceFrom.Decimal.Equal(decimal.NewFromInt(3490)))
}

func TestResolveImageURL(t *testing.T) {
	images := []entity.OfferImage{
		img(1, "/uploads/a.jpg", entity.ImageTypeGallery, 0),
		img(2, "/uploads/b.jpg", entity.ImageTypeMain, 1),
		img(3, "/uploads/c.jpg", entity.ImageTypeMain, 2),
	}

	// first main in slice order wins; the queries order by (sort_order, id)
	assert.Equal(t, "/uploads/b.jpg", resolveImageURL(images, entity.ImageTypeMain, nil))
	assert.Equal(t, "", resolveImageURL(images, entity.ImageTypeBanner, nil))
	assert.Equal(t, "/uploads/legacy.jpg", resolveImageURL(nil, entity.ImageTypeMain, strPtr("/uploads/legacy.jpg")))
}

func TestFormatDatesSorted(t *testing.T) {
	dates := []entity.OfferDate{
		{DepartureDate: time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)},
		{DepartureDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)},
		{DepartureDate: time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, []string{"2026-06-20", "2026-12-24", "2027-01-05"}, formatDates(dates))
}
