package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

func TestDestinationsCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	id, err := db.AddDestination(ctx, &entity.DestinationBody{
		Title: "Kenya", Slug: "kenya", IsActive: true,
	})
	require.NoError(t, err)

	// duplicate slug conflicts
	_, err = db.AddDestination(ctx, &entity.DestinationBody{
		Title: "Kenya bis", Slug: "kenya", IsActive: true,
	})
	assert.ErrorIs(t, err, gerr.ErrAlreadyExists)

	d, err := db.GetDestinationBySlug(ctx, "kenya", false)
	require.NoError(t, err)
	assert.Equal(t, "Kenya", d.Title)

	require.NoError(t, db.UpdateDestination(ctx, &entity.DestinationBody{
		Title: "Kenya", Slug: "kenya", IsActive: false,
	}, id))

	// inactive rows disappear from public reads
	_, err = db.GetDestinationBySlug(ctx, "kenya", false)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
	_, err = db.GetDestinationBySlug(ctx, "kenya", true)
	require.NoError(t, err)

	require.NoError(t, db.DeleteDestinationById(ctx, id))
	assert.ErrorIs(t, db.DeleteDestinationById(ctx, id), gerr.ErrNotFound)
}

func TestTaxonomiesCRUDBothKinds(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, kind := range []entity.TaxonomyKind{entity.TaxonomyTravelType, entity.TaxonomyTravelTheme} {
		id, err := db.AddTaxonomy(ctx, kind, &entity.TaxonomyBody{
			Title: "Safari", Slug: "safari", IsActive: true,
		})
		require.NoError(t, err)

		ts, err := db.ListTaxonomies(ctx, kind, false)
		require.NoError(t, err)
		require.Len(t, ts, 1)
		assert.Equal(t, "safari", ts[0].Slug)

		require.NoError(t, db.UpdateTaxonomy(ctx, kind, &entity.TaxonomyBody{
			Title: "Grand safari", Slug: "safari", IsActive: true,
		}, id))

		got, err := db.GetTaxonomyBySlug(ctx, kind, "safari", false)
		require.NoError(t, err)
		assert.Equal(t, "Grand safari", got.Title)

		require.NoError(t, db.DeleteTaxonomyById(ctx, kind, id))
	}
}

func TestPageMetadataUniqueKey(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	slug := "safari-kenya"
	title := "Safari au Kenya | Évasion Voyages"
	id, err := db.AddPageMetadata(ctx, &entity.PageMetadataBody{
		PageType: "offer", PageSlug: &slug, Title: &title,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	// same (page_type, page_slug) conflicts
	_, err = db.AddPageMetadata(ctx, &entity.PageMetadataBody{
		PageType: "offer", PageSlug: &slug,
	})
	assert.ErrorIs(t, err, gerr.ErrAlreadyExists)

	// home page keyed by type alone
	_, err = db.AddPageMetadata(ctx, &entity.PageMetadataBody{PageType: "home"})
	require.NoError(t, err)

	md, err := db.GetPageMetadata(ctx, "offer", &slug)
	require.NoError(t, err)
	require.NotNil(t, md.Title)
	assert.Equal(t, title, *md.Title)

	home, err := db.GetPageMetadata(ctx, "home", nil)
	require.NoError(t, err)
	assert.Nil(t, home.PageSlug)

	_, err = db.GetPageMetadata(ctx, "offer", nil)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestSettingsUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.SetSetting(ctx, "contact_email", "contact@example.com"))
	require.NoError(t, db.SetSetting(ctx, "contact_email", "hello@example.com"))
	require.NoError(t, db.SetSetting(ctx, "phone", "+33 1 23 45 67 89"))

	settings, err := db.GetSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "contact_email", settings[0].Key)
	assert.Equal(t, "hello@example.com", settings[0].Value)
}

func TestTestimonialsPublishedFilter(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := db.AddTestimonial(ctx, &entity.TestimonialBody{
		ClientName: "Paul", TestimonialText: "Superbe voyage", Rating: 5,
		IsPublished: true, IsActive: true,
	})
	require.NoError(t, err)
	draftId, err := db.AddTestimonial(ctx, &entity.TestimonialBody{
		ClientName: "Jeanne", TestimonialText: "En attente de relecture", Rating: 4,
		IsPublished: false, IsActive: true,
	})
	require.NoError(t, err)

	public, err := db.ListTestimonials(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Paul", public[0].ClientName)

	all, err := db.ListTestimonials(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, db.DeleteTestimonialById(ctx, draftId))
	assert.ErrorIs(t, db.DeleteTestimonialById(ctx, draftId), gerr.ErrNotFound)
}

func TestPartnersCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	id, err := db.AddPartner(ctx, &entity.PartnerBody{
		Name: "Air Océan", Agency: "Paris", IsActive: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.UpdatePartner(ctx, &entity.PartnerBody{
		Name: "Air Océan", Agency: "Lyon", IsActive: false,
	}, id))

	public, err := db.ListPartners(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := db.ListPartners(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lyon", all[0].Agency)

	require.NoError(t, db.DeletePartnerById(ctx, id))
}
