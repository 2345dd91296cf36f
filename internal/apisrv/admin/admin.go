// Package admin implements the token-gated management API: catalog CRUD,
// uploads, quote handling, settings and database maintenance.
package admin

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/evasion-voyages/voyages-manager/internal/apisrv/auth"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/httpx"
	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
)

const maxUploadBytes = 10 << 20

// Maintenance exposes the database upkeep operations of the store.
type Maintenance interface {
	Migrate(ctx context.Context) error
	Seed(ctx context.Context) error
}

// Server implements the admin API.
type Server struct {
	repo  dependency.Repository
	files dependency.FileStore
	auth  *auth.Server
	maint Maintenance
}

func New(repo dependency.Repository, files dependency.FileStore, auth *auth.Server, maint Maintenance) *Server {
	return &Server{
		repo:  repo,
		files: files,
		auth:  auth,
		maint: maint,
	}
}

// Routes mounts all admin endpoints. The auth middleware is applied here so
// the package stays gated no matter how it is mounted.
func (s *Server) Routes(r chi.Router) {
	r.Use(s.auth.WithAuth)

	r.Route("/offers", func(r chi.Router) {
		r.Get("/", s.listOffers)
		r.Post("/", s.addOffer)
		r.Get("/{id}", s.getOffer)
		r.Put("/{id}", s.updateOffer)
		r.Delete("/{id}", s.deleteOffer)
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.listDestinations)
		r.Post("/", s.addDestination)
		r.Put("/{id}", s.updateDestination)
		r.Delete("/{id}", s.deleteDestination)
	})

	r.Route("/travel-types", func(r chi.Router) {
		r.Get("/", s.listTravelTypes)
		r.Post("/", s.addTravelType)
		r.Put("/{id}", s.updateTravelType)
		r.Delete("/{id}", s.deleteTravelType)
	})

	r.Route("/themes", func(r chi.Router) {
		r.Get("/", s.listThemes)
		r.Post("/", s.addTheme)
		r.Put("/{id}", s.updateTheme)
		r.Delete("/{id}", s.deleteTheme)
	})

	r.Route("/partners", func(r chi.Router) {
		r.Get("/", s.listPartners)
		r.Post("/", s.addPartner)
		r.Put("/{id}", s.updatePartner)
		r.Delete("/{id}", s.deletePartner)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", s.listTestimonials)
		r.Post("/", s.addTestimonial)
		r.Put("/{id}", s.updateTestimonial)
		r.Delete("/{id}", s.deleteTestimonial)
	})

	r.Route("/metadata", func(r chi.Router) {
		r.Get("/", s.listMetadata)
		r.Post("/", s.addMetadata)
		r.Put("/{id}", s.updateMetadata)
		r.Delete("/{id}", s.deleteMetadata)
	})

	r.Route("/quote-requests", func(r chi.Router) {
		r.Get("/", s.listQuoteRequests)
		r.Patch("/{id}/status", s.updateQuoteStatus)
	})

	r.Get("/subscribers", s.listSubscribers)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", s.getSettings)
		r.Put("/", s.setSetting)
	})

	r.Route("/uploads", func(r chi.Router) {
		r.Get("/", s.listUploads)
		r.Post("/", s.uploadFile)
	})

	r.Post("/migrate", s.migrate)
	r.Post("/seed", s.seed)
}

// offers

func (s *Server) listOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.OfferFilter{
		DestinationSlug: q.Get("destination"),
		TypeSlug:        q.Get("type"),
		ThemeSlug:       q.Get("theme"),
		ShowInactive:    true,
	}
	offers, err := s.repo.Offers().ListOffers(r.Context(), filter)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, offers)
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	offer, err := s.repo.Offers().GetOfferById(r.Context(), id)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, offer)
}

func (s *Server) addOffer(w http.ResponseWriter, r *http.Request) {
	var req entity.OfferNew
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Offers().AddOffer(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updateOffer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.OfferNew
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Offers().UpdateOffer(r.Context(), &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Offre mise à jour")
}

func (s *Server) deleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Offers().DeleteOfferById(r.Context(), id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Offre supprimée")
}

// destinations

func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.repo.Destinations().ListDestinations(r.Context(), true)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ds)
}

func (s *Server) addDestination(w http.ResponseWriter, r *http.Request) {
	var req entity.DestinationBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Destinations().AddDestination(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.DestinationBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Destinations().UpdateDestination(r.Context(), &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Destination mise à jour")
}

func (s *Server) deleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Destinations().DeleteDestinationById(r.Context(), id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Destination supprimée")
}

// taxonomies

func (s *Server) listTaxonomies(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	ts, err := s.repo.Taxonomies().ListTaxonomies(r.Context(), kind, true)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ts)
}

func (s *Server) addTaxonomy(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	var req entity.TaxonomyBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Taxonomies().AddTaxonomy(r.Context(), kind, &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updateTaxonomy(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.TaxonomyBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Taxonomies().UpdateTaxonomy(r.Context(), kind, &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Catégorie mise à jour")
}

func (s *Server) deleteTaxonomy(w http.ResponseWriter, r *http.Request, kind entity.TaxonomyKind) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Taxonomies().DeleteTaxonomyById(r.Context(), kind, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Catégorie supprimée")
}

func (s *Server) listTravelTypes(w http.ResponseWriter, r *http.Request) {
	s.listTaxonomies(w, r, entity.TaxonomyTravelType)
}
func (s *Server) addTravelType(w http.ResponseWriter, r *http.Request) {
	s.addTaxonomy(w, r, entity.TaxonomyTravelType)
}
func (s *Server) updateTravelType(w http.ResponseWriter, r *http.Request) {
	s.updateTaxonomy(w, r, entity.TaxonomyTravelType)
}
func (s *Server) deleteTravelType(w http.ResponseWriter, r *http.Request) {
	s.deleteTaxonomy(w, r, entity.TaxonomyTravelType)
}

func (s *Server) listThemes(w http.ResponseWriter, r *http.Request) {
	s.listTaxonomies(w, r, entity.TaxonomyTravelTheme)
}
func (s *Server) addTheme(w http.ResponseWriter, r *http.Request) {
	s.addTaxonomy(w, r, entity.TaxonomyTravelTheme)
}
func (s *Server) updateTheme(w http.ResponseWriter, r *http.Request) {
	s.updateTaxonomy(w, r, entity.TaxonomyTravelTheme)
}
func (s *Server) deleteTheme(w http.ResponseWriter, r *http.Request) {
	s.deleteTaxonomy(w, r, entity.TaxonomyTravelTheme)
}

// partners

func (s *Server) listPartners(w http.ResponseWriter, r *http.Request) {
	ps, err := s.repo.Partners().ListPartners(r.Context(), true)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ps)
}

func (s *Server) addPartner(w http.ResponseWriter, r *http.Request) {
	var req entity.PartnerBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Partners().AddPartner(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updatePartner(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.PartnerBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Partners().UpdatePartner(r.Context(), &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Partenaire mis à jour")
}

func (s *Server) deletePartner(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Partners().DeletePartnerById(r.Context(), id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Partenaire supprimé")
}

// testimonials

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	ts, err := s.repo.Testimonials().ListTestimonials(r.Context(), false)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, ts)
}

func (s *Server) addTestimonial(w http.ResponseWriter, r *http.Request) {
	var req entity.TestimonialBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Testimonials().AddTestimonial(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.TestimonialBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Testimonials().UpdateTestimonial(r.Context(), &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Témoignage mis à jour")
}

func (s *Server) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Testimonials().DeleteTestimonialById(r.Context(), id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Témoignage supprimé")
}

// metadata

func (s *Server) listMetadata(w http.ResponseWriter, r *http.Request) {
	mds, err := s.repo.Metadata().ListPageMetadata(r.Context())
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, mds)
}

func (s *Server) addMetadata(w http.ResponseWriter, r *http.Request) {
	var req entity.PageMetadataBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	id, err := s.repo.Metadata().AddPageMetadata(r.Context(), &req)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) updateMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req entity.PageMetadataBody
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Metadata().UpdatePageMetadata(r.Context(), &req, id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Métadonnées mises à jour")
}

func (s *Server) deleteMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if err := s.repo.Metadata().DeletePageMetadataById(r.Context(), id); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Métadonnées supprimées")
}

// quote requests

func (s *Server) listQuoteRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	var filters entity.QuoteRequestFilters
	if raw := q.Get("status"); raw != "" {
		status := entity.QuoteStatus(raw)
		if !entity.ValidQuoteStatuses[status] {
			httpx.Error(w, http.StatusBadRequest, "Statut invalide")
			return
		}
		filters.Status = &status
	}
	filters.Email = strings.TrimSpace(q.Get("email"))

	quotes, total, err := s.repo.Quotes().GetQuoteRequestsPaged(r.Context(), limit, offset, filters)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, map[string]any{
		"quotes": quotes,
		"total":  total,
	})
}

type quoteStatusRequest struct {
	Status entity.QuoteStatus `json:"status"`
}

func (s *Server) updateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParamInt(r, "id")
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	var req quoteStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	if !entity.ValidQuoteStatuses[req.Status] {
		httpx.Error(w, http.StatusBadRequest, "Statut invalide")
		return
	}
	if err := s.repo.Quotes().UpdateQuoteRequestStatus(r.Context(), id, req.Status); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Statut mis à jour")
}

// subscribers

func (s *Server) listSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := s.repo.Subscribers().GetActiveSubscribers(r.Context())
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, subs)
}

// settings

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.repo.Settings().GetSettings(r.Context())
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, settings)
}

type settingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) setSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		httpx.Error(w, http.StatusBadRequest, "La clé du paramètre est requise")
		return
	}
	if err := s.repo.Settings().SetSetting(r.Context(), req.Key, req.Value); err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Paramètre enregistré")
}

// uploads

func (s *Server) listUploads(w http.ResponseWriter, r *http.Request) {
	urls, err := s.files.ListFiles(r.Context())
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusOK, urls)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Le fichier est trop volumineux ou la requête est invalide")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Le champ 'file' est requis")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	url, err := s.files.SaveFile(r.Context(), header.Filename, content)
	if err != nil {
		httpx.FromError(w, r, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]any{"url": url})
}

// maintenance

func (s *Server) migrate(w http.ResponseWriter, r *http.Request) {
	if s.maint == nil {
		httpx.Error(w, http.StatusNotImplemented, "Migration non disponible")
		return
	}
	if err := s.maint.Migrate(r.Context()); err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	slog.Default().InfoContext(r.Context(), "migrations applied via admin api")
	httpx.Message(w, http.StatusOK, "Migrations appliquées")
}

func (s *Server) seed(w http.ResponseWriter, r *http.Request) {
	if s.maint == nil {
		httpx.Error(w, http.StatusNotImplemented, "Seed non disponible")
		return
	}
	if err := s.maint.Seed(r.Context()); err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	slog.Default().InfoContext(r.Context(), "seed data applied via admin api")
	httpx.Message(w, http.StatusOK, "Données de démonstration insérées")
}
