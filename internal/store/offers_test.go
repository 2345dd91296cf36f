package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

func seedCatalog(t *testing.T, db *MYSQLStore, ctx context.Context) (destId, typeId, themeId int) {
	t.Helper()

	destId, err := db.AddDestination(ctx, &entity.DestinationBody{
		Title: "Kenya", Slug: "kenya", IsActive: true,
	})
	require.NoError(t, err)
	typeId, err = db.AddTaxonomy(ctx, entity.TaxonomyTravelType, &entity.TaxonomyBody{
		Title: "Safari", Slug: "safari", IsActive: true,
	})
	require.NoError(t, err)
	themeId, err = db.AddTaxonomy(ctx, entity.TaxonomyTravelTheme, &entity.TaxonomyBody{
		Title: "Aventure", Slug: "aventure", IsActive: true,
	})
	require.NoError(t, err)
	return destId, typeId, themeId
}

func safariOffer(destId, typeId, themeId int) *entity.OfferNew {
	alt := "Lion au lever du soleil"
	return &entity.OfferNew{
		Offer: entity.OfferBody{
			Title:    "Safari au Kenya",
			Slug:     "safari-kenya",
			Price:    decimal.NullDecimal{Decimal: decimal.NewFromInt(2490), Valid: true},
			Currency: "EUR",
			IsActive: true,
		},
		DestinationIds: []int{destId},
		TypeIds:        []int{typeId},
		ThemeIds:       []int{themeId},
		AvailableDates: []string{"2026-11-15", "2026-10-01"},
		Images: []entity.OfferImageInsert{
			{ImageURL: "/uploads/kenya-main.jpg", ImageType: entity.ImageTypeMain},
			{ImageURL: "/uploads/kenya-banner.jpg", ImageType: entity.ImageTypeBanner},
			{ImageURL: "/uploads/kenya-1.jpg", ImageType: entity.ImageTypeGallery, AltText: &alt, SortOrder: 1},
		},
	}
}

func TestOffersRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	id, err := db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)
	require.NotZero(t, id)

	full, err := db.GetOfferBySlug(ctx, "safari-kenya")
	require.NoError(t, err)

	assert.Equal(t, "Safari au Kenya", full.Title)
	assert.Equal(t, "/uploads/kenya-main.jpg", full.ImageURL)
	assert.Equal(t, "/uploads/kenya-banner.jpg", full.BannerImageURL)
	assert.True(t, full.PriceFrom.Decimal.Equal(decimal.NewFromInt(2490)))
	assert.Equal(t, []string{"2026-10-01", "2026-11-15"}, full.AvailableDates)
	assert.Len(t, full.Images, 3)

	require.Len(t, full.Destinations, 1)
	assert.Equal(t, "kenya", full.Destinations[0].Slug)
	require.Len(t, full.TravelTypes, 1)
	assert.Equal(t, "safari", full.TravelTypes[0].Slug)
	require.Len(t, full.TravelThemes, 1)
	assert.Equal(t, "aventure", full.TravelThemes[0].Slug)
}

func TestAddOfferDuplicateIdsAreIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	offer := safariOffer(destId, typeId, themeId)
	offer.DestinationIds = []int{destId, destId, destId}
	offer.AvailableDates = []string{"2026-10-01", "2026-10-01"}

	_, err := db.AddOffer(ctx, offer)
	require.NoError(t, err)

	full, err := db.GetOfferBySlug(ctx, "safari-kenya")
	require.NoError(t, err)
	assert.Len(t, full.Destinations, 1)
	assert.Equal(t, []string{"2026-10-01", "2026-11-15"}, full.AvailableDates)
}

func TestAddOfferDuplicateSlug(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	_, err := db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	_, err = db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	assert.ErrorIs(t, err, gerr.ErrAlreadyExists)
}

func TestUpdateOfferReplacesChildren(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	id, err := db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	updated := safariOffer(destId, typeId, themeId)
	updated.Offer.Title = "Safari au Kenya et Tanzanie"
	updated.DestinationIds = nil
	updated.AvailableDates = []string{"2027-01-10"}
	updated.Images = []entity.OfferImageInsert{
		{ImageURL: "/uploads/kenya-v2.jpg", ImageType: entity.ImageTypeMain},
	}

	require.NoError(t, db.UpdateOffer(ctx, updated, id))

	full, err := db.GetOfferById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Safari au Kenya et Tanzanie", full.Title)
	assert.Empty(t, full.Destinations)
	assert.Equal(t, []string{"2027-01-10"}, full.AvailableDates)
	require.Len(t, full.Images, 1)
	assert.Equal(t, "/uploads/kenya-v2.jpg", full.ImageURL)
}

func TestDeleteOfferCascades(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	id, err := db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	require.NoError(t, db.DeleteOfferById(ctx, id))

	_, err = db.GetOfferById(ctx, id)
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	count, err := QueryCountNamed(ctx, db.db,
		"SELECT COUNT(*) FROM offer_image WHERE offer_id = :id", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, db.DeleteOfferById(ctx, id), gerr.ErrNotFound)
}

func TestListOffersFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)
	marocId, err := db.AddDestination(ctx, &entity.DestinationBody{
		Title: "Maroc", Slug: "maroc", IsActive: true,
	})
	require.NoError(t, err)

	_, err = db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	riad := safariOffer(marocId, typeId, themeId)
	riad.Offer.Title = "Riad à Marrakech"
	riad.Offer.Slug = "riad-marrakech"
	riad.TypeIds = nil
	riad.ThemeIds = nil
	_, err = db.AddOffer(ctx, riad)
	require.NoError(t, err)

	inactive := safariOffer(destId, typeId, themeId)
	inactive.Offer.Slug = "safari-inactif"
	inactive.Offer.IsActive = false
	_, err = db.AddOffer(ctx, inactive)
	require.NoError(t, err)

	all, err := db.ListOffers(ctx, entity.OfferFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	kenya, err := db.ListOffers(ctx, entity.OfferFilter{DestinationSlug: "kenya"})
	require.NoError(t, err)
	require.Len(t, kenya, 1)
	assert.Equal(t, "safari-kenya", kenya[0].Slug)

	safari, err := db.ListOffers(ctx, entity.OfferFilter{TypeSlug: "safari"})
	require.NoError(t, err)
	assert.Len(t, safari, 1)

	none, err := db.ListOffers(ctx, entity.OfferFilter{DestinationSlug: "maroc", TypeSlug: "safari"})
	require.NoError(t, err)
	assert.Empty(t, none)

	admin, err := db.ListOffers(ctx, entity.OfferFilter{ShowInactive: true})
	require.NoError(t, err)
	assert.Len(t, admin, 3)
}

func TestGetOfferBySlugHidesInactive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	offer := safariOffer(destId, typeId, themeId)
	offer.Offer.IsActive = false
	id, err := db.AddOffer(ctx, offer)
	require.NoError(t, err)

	_, err = db.GetOfferBySlug(ctx, "safari-kenya")
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	// the admin path still sees it
	full, err := db.GetOfferById(ctx, id)
	require.NoError(t, err)
	assert.False(t, full.IsActive)
}

func TestGetOfferByIdKeepsInactiveLinks(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)

	id, err := db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	// deactivate the linked destination; the join row stays behind
	require.NoError(t, db.UpdateDestination(ctx, &entity.DestinationBody{
		Title: "Kenya", Slug: "kenya", IsActive: false,
	}, destId))

	// the public view drops the link
	full, err := db.GetOfferBySlug(ctx, "safari-kenya")
	require.NoError(t, err)
	assert.Empty(t, full.Destinations)

	// the admin view keeps it, otherwise a replace-from-payload update
	// built from this view would lose the association
	full, err = db.GetOfferById(ctx, id)
	require.NoError(t, err)
	require.Len(t, full.Destinations, 1)
	assert.Equal(t, "kenya", full.Destinations[0].Slug)
	require.Len(t, full.TravelTypes, 1)
	assert.Equal(t, "safari", full.TravelTypes[0].Slug)
}

func TestGetOfferFacets(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	destId, typeId, themeId := seedCatalog(t, db, ctx)
	marocId, err := db.AddDestination(ctx, &entity.DestinationBody{
		Title: "Maroc", Slug: "maroc", IsActive: true,
	})
	require.NoError(t, err)
	cultureId, err := db.AddTaxonomy(ctx, entity.TaxonomyTravelTheme, &entity.TaxonomyBody{
		Title: "Culture", Slug: "culture", IsActive: true,
	})
	require.NoError(t, err)

	_, err = db.AddOffer(ctx, safariOffer(destId, typeId, themeId))
	require.NoError(t, err)

	riad := safariOffer(marocId, typeId, cultureId)
	riad.Offer.Slug = "riad-marrakech"
	_, err = db.AddOffer(ctx, riad)
	require.NoError(t, err)

	// no selection: every value with at least one active offer shows up
	facets, err := db.GetOfferFacets(ctx, entity.FacetSelection{})
	require.NoError(t, err)
	assert.Len(t, facets.Destinations, 2)
	assert.Len(t, facets.Types, 1)
	assert.Len(t, facets.Themes, 2)

	// pinning kenya narrows themes to those of the kenya offer
	facets, err = db.GetOfferFacets(ctx, entity.FacetSelection{DestinationSlug: "kenya"})
	require.NoError(t, err)
	assert.Empty(t, facets.Destinations)
	require.Len(t, facets.Themes, 1)
	assert.Equal(t, "aventure", facets.Themes[0].Slug)
}
