package frontend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

// stubRepo overrides only the accessors a test exercises; anything else
// panics, which keeps the stubs honest.
type stubRepo struct {
	dependency.Repository
	offers      dependency.Offers
	subscribers dependency.Subscribers
	quotes      dependency.Quotes
}

func (s *stubRepo) Offers() dependency.Offers           { return s.offers }
func (s *stubRepo) Subscribers() dependency.Subscribers { return s.subscribers }
func (s *stubRepo) Quotes() dependency.Quotes           { return s.quotes }

type stubOffers struct {
	dependency.Offers
	views []entity.OfferView
}

func (s *stubOffers) ListOffers(ctx context.Context, filter entity.OfferFilter) ([]entity.OfferView, error) {
	return s.views, nil
}

func (s *stubOffers) GetOfferBySlug(ctx context.Context, slug string) (*entity.OfferFull, error) {
	return nil, gerr.ErrNotFound
}

type stubSubscribers struct {
	dependency.Subscribers
	subscribeErr   error
	unsubscribed   string
	unsubscribeErr error
}

func (s *stubSubscribers) Subscribe(ctx context.Context, email string) (int, error) {
	if s.subscribeErr != nil {
		return 0, s.subscribeErr
	}
	return 42, nil
}

func (s *stubSubscribers) Unsubscribe(ctx context.Context, email string) error {
	if s.unsubscribeErr != nil {
		return s.unsubscribeErr
	}
	s.unsubscribed = email
	return nil
}

type stubQuotes struct {
	dependency.Quotes
}

func (s *stubQuotes) SubmitQuoteRequest(ctx context.Context, q *entity.QuoteRequestInsert) (string, error) {
	return "ref-123", nil
}

type noopMailer struct{}

func (noopMailer) SendNewSubscriber(ctx context.Context, to string) error        { return nil }
func (noopMailer) SendQuoteRequestAck(ctx context.Context, to, ref string) error { return nil }

func newTestRouter(repo dependency.Repository) http.Handler {
	r := chi.NewRouter()
	New(repo, noopMailer{}).Routes(r)
	return r
}

func TestListOffersEnvelope(t *testing.T) {
	repo := &stubRepo{offers: &stubOffers{views: []entity.OfferView{
		{Offer: entity.Offer{Id: 1, OfferBody: entity.OfferBody{Title: "Safari au Kenya", Slug: "safari-kenya"}}},
	}}}

	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/offers", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool               `json:"success"`
		Data    []entity.OfferView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "safari-kenya", body.Data[0].Slug)
}

func TestGetOfferNotFound(t *testing.T) {
	repo := &stubRepo{offers: &stubOffers{}}

	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/offers/inconnu", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	repo := &stubRepo{subscribers: &stubSubscribers{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(`{"email":"pas-un-email"}`))
	newTestRouter(repo).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "L'adresse e-mail est invalide")
}

func TestSubscribeConflict(t *testing.T) {
	repo := &stubRepo{subscribers: &stubSubscribers{subscribeErr: gerr.ErrAlreadySubscribed}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(`{"email":"marie@example.com"}`))
	newTestRouter(repo).ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "déjà inscrite")
}

func TestSubscribeOk(t *testing.T) {
	repo := &stubRepo{subscribers: &stubSubscribers{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(`{"email":"Marie@Example.com"}`))
	newTestRouter(repo).ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Data struct {
			Id int `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 42, body.Data.Id)
}

func TestUnsubscribeByQueryParam(t *testing.T) {
	subs := &stubSubscribers{}
	repo := &stubRepo{subscribers: subs}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/newsletter?email=Marie@Example.com", nil)
	newTestRouter(repo).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "marie@example.com", subs.unsubscribed)
}

func TestUnsubscribeUnknown(t *testing.T) {
	repo := &stubRepo{subscribers: &stubSubscribers{unsubscribeErr: gerr.ErrNotSubscribed}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/newsletter?email=personne@example.com", nil)
	newTestRouter(repo).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitQuoteRequestValidation(t *testing.T) {
	repo := &stubRepo{quotes: &stubQuotes{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(`{"email":"marie@example.com"}`))
	newTestRouter(repo).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Le prénom et le nom sont requis")
}

func TestSubmitQuoteRequestOk(t *testing.T) {
	repo := &stubRepo{quotes: &stubQuotes{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/quote-request",
		strings.NewReader(`{"first_name":"Marie","last_name":"Dupont","email":"marie@example.com"}`))
	newTestRouter(repo).ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ref-123")
}
