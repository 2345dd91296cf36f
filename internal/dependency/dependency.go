package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Offers interface {
		ContextStore
		// AddOffer inserts an offer with its images, dates and relations.
		AddOffer(ctx context.Context, offer *entity.OfferNew) (int, error)
		// UpdateOffer replaces the offer scalars and reinserts all child and
		// join rows from the payload, atomically.
		UpdateOffer(ctx context.Context, offer *entity.OfferNew, id int) error
		// DeleteOfferById removes the offer and all of its child rows.
		DeleteOfferById(ctx context.Context, id int) error
		// GetOfferBySlug returns the denormalized view of one active offer.
		GetOfferBySlug(ctx context.Context, slug string) (*entity.OfferFull, error)
		// GetOfferById returns the denormalized view regardless of is_active.
		GetOfferById(ctx context.Context, id int) (*entity.OfferFull, error)
		// ListOffers returns offers matching the filter, newest first.
		ListOffers(ctx context.Context, filter entity.OfferFilter) ([]entity.OfferView, error)
		// GetOfferFacets computes which facet values still match at least one
		// active offer under the pinned selection.
		GetOfferFacets(ctx context.Context, pinned entity.FacetSelection) (*entity.OfferFacets, error)
	}

	Destinations interface {
		AddDestination(ctx context.Context, d *entity.DestinationBody) (int, error)
		UpdateDestination(ctx context.Context, d *entity.DestinationBody, id int) error
		DeleteDestinationById(ctx context.Context, id int) error
		GetDestinationBySlug(ctx context.Context, slug string, showInactive bool) (*entity.Destination, error)
		ListDestinations(ctx context.Context, showInactive bool) ([]entity.Destination, error)
	}

	Taxonomies interface {
		AddTaxonomy(ctx context.Context, kind entity.TaxonomyKind, t *entity.TaxonomyBody) (int, error)
		UpdateTaxonomy(ctx context.Context, kind entity.TaxonomyKind, t *entity.TaxonomyBody, id int) error
		DeleteTaxonomyById(ctx context.Context, kind entity.TaxonomyKind, id int) error
		GetTaxonomyBySlug(ctx context.Context, kind entity.TaxonomyKind, slug string, showInactive bool) (*entity.Taxonomy, error)
		ListTaxonomies(ctx context.Context, kind entity.TaxonomyKind, showInactive bool) ([]entity.Taxonomy, error)
	}

	Partners interface {
		AddPartner(ctx context.Context, p *entity.PartnerBody) (int, error)
		UpdatePartner(ctx context.Context, p *entity.PartnerBody, id int) error
		DeletePartnerById(ctx context.Context, id int) error
		ListPartners(ctx context.Context, showInactive bool) ([]entity.Partner, error)
	}

	Testimonials interface {
		AddTestimonial(ctx context.Context, t *entity.TestimonialBody) (int, error)
		UpdateTestimonial(ctx context.Context, t *entity.TestimonialBody, id int) error
		DeleteTestimonialById(ctx context.Context, id int) error
		ListTestimonials(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error)
	}

	Metadata interface {
		AddPageMetadata(ctx context.Context, m *entity.PageMetadataBody) (int, error)
		UpdatePageMetadata(ctx context.Context, m *entity.PageMetadataBody, id int) error
		DeletePageMetadataById(ctx context.Context, id int) error
		GetPageMetadata(ctx context.Context, pageType string, pageSlug *string) (*entity.PageMetadata, error)
		ListPageMetadata(ctx context.Context) ([]entity.PageMetadata, error)
	}

	Quotes interface {
		// SubmitQuoteRequest stores a new lead and returns its public reference.
		SubmitQuoteRequest(ctx context.Context, q *entity.QuoteRequestInsert) (string, error)
		GetQuoteRequestsPaged(ctx context.Context, limit, offset int, filters entity.QuoteRequestFilters) ([]entity.QuoteRequest, int, error)
		UpdateQuoteRequestStatus(ctx context.Context, id int, status entity.QuoteStatus) error
	}

	Subscribers interface {
		// Subscribe adds or reactivates a newsletter subscription and returns
		// the row id, which is stable across unsubscribe/resubscribe cycles.
		Subscribe(ctx context.Context, email string) (int, error)
		Unsubscribe(ctx context.Context, email string) error
		IsSubscribed(ctx context.Context, email string) (bool, error)
		GetActiveSubscribers(ctx context.Context) ([]entity.Subscription, error)
	}

	Settings interface {
		GetSettings(ctx context.Context) ([]entity.Setting, error)
		SetSetting(ctx context.Context, key, value string) error
	}

	Repository interface {
		Offers() Offers
		Destinations() Destinations
		Taxonomies() Taxonomies
		Partners() Partners
		Testimonials() Testimonials
		Metadata() Metadata
		Quotes() Quotes
		Subscribers() Subscribers
		Settings() Settings
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		DB() DB
	}

	// DB represents the database interface shared by the pooled connection
	// and an open transaction.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// FileStore persists uploaded assets and serves back their public URLs.
	FileStore interface {
		SaveFile(ctx context.Context, filename string, content []byte) (string, error)
		ListFiles(ctx context.Context) ([]string, error)
		// Dir is the directory the static file server serves from.
		Dir() string
	}

	// Mailer sends best-effort transactional mail. Implementations must be
	// safe to call with mail disabled (no-op).
	Mailer interface {
		SendNewSubscriber(ctx context.Context, to string) error
		SendQuoteRequestAck(ctx context.Context, to, reference string) error
	}
)
