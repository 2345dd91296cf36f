// Package frontend implements the public site API: offer browsing, catalog
// listings, testimonials, page metadata, newsletter and quote requests.
package frontend

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/evasion-voyages/voyages-manager/internal/apisrv/httpx"
	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
)

// Server implements the public API.
type Server struct {
	repo   dependency.Repository
	mailer dependency.Mailer
}

func New(repo dependency.Repository, mailer dependency.Mailer) *Server {
	return &Server{
		repo:   repo,
		mailer: mailer,
	}
}

// Routes mounts all public endpoints.
func (s *Server) Routes(r chi.Router) {
	r.Get("/offers", s.listOffers)
	r.Get("/offers/filters", s.offerFilters)
	r.Get("/offers/{slug}", s.getOffer)

	r.Get("/destinations", s.listDestinations)
	r.Get("/destinations/{slug}", s.getDestination)
	r.Get("/travel-types", s.listTravelTypes)
	r.Get("/travel-types/{slug}", s.getTravelType)
	r.Get("/themes", s.listThemes)
	r.Get("/themes/{slug}", s.getTheme)

	r.Get("/partners", s.listPartners)
	r.Get("/testimonials", s.listTestimonials)
	r.Get("/metadata", s.getMetadata)

	r.Post("/newsletter", s.subscribe)
	r.Delete("/newsletter", s.unsubscribe)
	r.Post("/quote-request", s.submitQuoteRequest)
}

func (s *Server) listOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.OfferFilter{
		DestinationSlug: q.Get("destination"),
		TypeSlug:        q.Get("type"),
		ThemeSlug:       q.Get("theme"),
	}
	offers, err := s.repo.Offers().ListOffers(r.Context(), filter)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, offers)
}

func (s *Server) offerFilters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pinned := entity.FacetSelection{
		DestinationSlug: q.Get("destination"),
		TypeSlug:        q.Get("type"),
		ThemeSlug:       q.Get("theme"),
	}
	facets, err := s.repo.Offers().GetOfferFacets(r.Context(), pinned)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, facets)
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := s.repo.Offers().GetOfferBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, offer)
}

func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.repo.Destinations().ListDestinations(r.Context(), false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ds)
}

func (s *Server) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.repo.Destinations().GetDestinationBySlug(r.Context(), chi.URLParam(r, "slug"), false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, d)
}

func (s *Server) listTaxonomies(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	ts, err := s.repo.Taxonomies().ListTaxonomies(r.Context(), kind, false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ts)
}

func (s *Server) getTaxonomy(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	t, err := s.repo.Taxonomies().GetTaxonomyBySlug(r.Context(), kind, chi.URLParam(r, "slug"), false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, t)
}

func (s *Server) listTravelTypes(w http.ResponseWriter, r *http.Request) {
	s.listTaxonomies(w, r, entity.TaxonomyTravelType)
}

func (s *Server) getTravelType(w http.ResponseWriter, r *http.Request) {
	s.getTaxonomy(w, r, entity.TaxonomyTravelType)
}

func (s *Server) listThemes(w http.ResponseWriter, r *http.Request) {
	s.listTaxonomies(w, r, entity.TaxonomyTravelTheme)
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	s.getTaxonomy(w, r, entity.TaxonomyTravelTheme)
}

func (s *Server) listPartners(w http.ResponseWriter, r *http.Request) {
	ps, err := s.repo.Partners().ListPartners(r.Context(), false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ps)
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	ts, err := s.repo.Testimonials().ListTestimonials(r.Context(), true)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ts)
}

func (s *Server) getMetadata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageType := strings.TrimSpace(q.Get("page_type"))
	if pageType == "" {
		httpx.Error(w, http.StatusBadRequest, "Le type de page est requis")
		return
	}
	var pageSlug *string
	if slug := strings.TrimSpace(q.Get("page_slug")); slug != "" {
		pageSlug = &slug
	}
	md, err := s.repo.Metadata().GetPageMetadata(r.Context(), pageType, pageSlug)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, md)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !entity.IsValidEmail(req.Email) {
		httpx.Error(w, http.StatusBadRequest, "L'adresse e-mail est invalide")
		return
	}

	id, err := s.repo.Subscribers().Subscribe(r.Context(), req.Email)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}

	if err := s.mailer.SendNewSubscriber(r.Context(), req.Email); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't send welcome mail",
			slog.String("err", err.Error()),
		)
	}

	httpx.Data(w, http.StatusCreated, map[string]any{
		"id": id,
	})
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		var req subscribeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.FromError(w, r, err)
			return
		}
		email = req.Email
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !entity.IsValidEmail(email) {
		httpx.Error(w, http.StatusBadRequest, "L'adresse e-mail est invalide")
		return
	}
	if err := s.repo.Subscribers().Unsubscribe(r.Context(), email); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Désinscription confirmée")
}

func (s *Server) submitQuoteRequest(w http.ResponseWriter, r *http.Request) {
	var req entity.QuoteRequestInsert
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}

	reference, err := s.repo.Quotes().SubmitQuoteRequest(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}

	if err := s.mailer.SendQuoteRequestAck(r.Context(), req.Email, reference); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't send quote ack mail",
			slog.String("err", err.Error()),
		)
	}

	httpx.Data(w, http.StatusCreated, map[string]any{
		"reference": reference,
	})
}
