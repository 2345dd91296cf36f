package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferNewValidate(t *testing.T) {
	on := &OfferNew{
		Offer: OfferBody{Title: "Safari au Kenya", Slug: "safari-kenya"},
		Images: []OfferImageInsert{
			{ImageURL: "/uploads/kenya.jpg"},
		},
		AvailableDates: []string{"2026-10-01", "2026-11-15"},
	}
	require.NoError(t, on.Validate())
	assert.Equal(t, "EUR", on.Offer.Currency)
	assert.Equal(t, ImageTypeGallery, on.Images[0].ImageType)
}

func TestOfferNewValidateMissingTitle(t *testing.T) {
	on := &OfferNew{Offer: OfferBody{Slug: "safari-kenya"}}
	err := on.Validate()
	require.Error(t, err)
	assert.Equal(t, "Le titre et le slug sont requis", err.Error())
}

func TestOfferNewValidateBadImageType(t *testing.T) {
	on := &OfferNew{
		Offer: OfferBody{Title: "Safari", Slug: "safari"},
		Images: []OfferImageInsert{
			{ImageURL: "/uploads/a.jpg", ImageType: "thumbnail"},
		},
	}
	err := on.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type d'image invalide")
}

func TestOfferNewValidateBadDate(t *testing.T) {
	on := &OfferNew{
		Offer:          OfferBody{Title: "Safari", Slug: "safari"},
		AvailableDates: []string{"01/10/2026"},
	}
	err := on.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date de départ invalide")
}

func TestQuoteRequestValidate(t *testing.T) {
	q := &QuoteRequestInsert{
		FirstName: "  Marie ",
		LastName:  "Dupont",
		Email:     "marie@example.com",
	}
	require.NoError(t, q.Validate())
	assert.Equal(t, "Marie", q.FirstName)

	q = &QuoteRequestInsert{FirstName: "Marie", LastName: "Dupont", Email: "not-an-email"}
	err := q.Validate()
	require.Error(t, err)
	assert.Equal(t, "L'adresse e-mail est invalide", err.Error())

	q = &QuoteRequestInsert{Email: "marie@example.com"}
	err = q.Validate()
	require.Error(t, err)
	assert.Equal(t, "Le prénom et le nom sont requis", err.Error())
}

func TestTestimonialValidateRating(t *testing.T) {
	tb := &TestimonialBody{ClientName: "Paul", TestimonialText: "Superbe voyage", Rating: 6}
	err := tb.Validate()
	require.Error(t, err)
	assert.Equal(t, "La note doit être comprise entre 0 et 5", err.Error())

	tb.Rating = 5
	assert.NoError(t, tb.Validate())
}
