package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

type offersStore struct {
	*MYSQLStore
}

// Offers returns an object implementing the Offers interface
func (ms *MYSQLStore) Offers() dependency.Offers {
	return &offersStore{
		MYSQLStore: ms,
	}
}

func insertOffer(ctx context.Context, rep dependency.Repository, offer *entity.OfferBody) (int, error) {
	query := `
	INSERT INTO offer
	(title, slug, short_description, long_description, price, currency, price_from,
	 promo_price, promo_currency, promo_start, promo_end, promo_description,
	 price_includes, price_excludes, label, duration_days, duration_nights,
	 image_main, image_banner, is_active)
	VALUES (:title, :slug, :shortDescription, :longDescription, :price, :currency, :priceFrom,
	 :promoPrice, :promoCurrency, :promoStart, :promoEnd, :promoDescription,
	 :priceIncludes, :priceExcludes, :label, :durationDays, :durationNights,
	 :imageMain, :imageBanner, :isActive)`

	return ExecNamedLastId(ctx, rep.DB(), query, offerParams(offer))
}

func updateOffer(ctx context.Context, rep dependency.Repository, offer *entity.OfferBody, id int) error {
	query := `
	UPDATE offer
	SET
		title = :title,
		slug = :slug,
		short_description = :shortDescription,
		long_description = :longDescription,
		price = :price,
		currency = :currency,
		price_from = :priceFrom,
		promo_price = :promoPrice,
		promo_currency = :promoCurrency,
		promo_start = :promoStart,
		promo_end = :promoEnd,
		promo_description = :promoDescription,
		price_includes = :priceIncludes,
		price_excludes = :priceExcludes,
		label = :label,
		duration_days = :durationDays,
		duration_nights = :durationNights,
		image_main = :imageMain,
		image_banner = :imageBanner,
		is_active = :isActive
	WHERE id = :id
	`
	params := offerParams(offer)
	params["id"] = id
	return ExecNamed(ctx, rep.DB(), query, params)
}

func offerParams(offer *entity.OfferBody) map[string]any {
	return map[string]any{
		"title":            offer.Title,
		"slug":             offer.Slug,
		"shortDescription": offer.ShortDescription,
		"longDescription":  offer.LongDescription,
		"price":            offer.Price,
		"currency":         offer.Currency,
		"priceFrom":        offer.PriceFrom,
		"promoPrice":       offer.PromoPrice,
		"promoCurrency":    offer.PromoCurrency,
		"promoStart":       offer.PromoStart,
		"promoEnd":         offer.PromoEnd,
		"promoDescription": offer.PromoDescription,
		"priceIncludes":    offer.PriceIncludes,
		"priceExcludes":    offer.PriceExcludes,
		"label":            offer.Label,
		"durationDays":     offer.DurationDays,
		"durationNights":   offer.DurationNights,
		"imageMain":        offer.ImageMain,
		"imageBanner":      offer.ImageBanner,
		"isActive":         offer.IsActive,
	}
}

// offerChildTables lists every child and join table owned by an offer.
// Update reinserts them wholesale and delete cascades through them.
var offerChildTables = []string{
	"offer_destination",
	"offer_travel_type",
	"offer_travel_theme",
	"offer_date",
	"offer_image",
}

func deleteOfferChildren(ctx context.Context, rep dependency.Repository, offerId int) error {
	for _, table := range offerChildTables {
		query := fmt.Sprintf("DELETE FROM %s WHERE offer_id = :offerId", table)
		if err := ExecNamed(ctx, rep.DB(), query, map[string]any{
			"offerId": offerId,
		}); err != nil {
			return fmt.Errorf("can't delete %s rows: %w", table, err)
		}
	}
	return nil
}

func insertOfferChildren(ctx context.Context, rep dependency.Repository, offer *entity.OfferNew, offerId int) error {
	if err := insertJoinRows(ctx, rep, "offer_destination", "destination_id", offerId, offer.DestinationIds); err != nil {
		return err
	}
	if err := insertJoinRows(ctx, rep, "offer_travel_type", "type_id", offerId, offer.TypeIds); err != nil {
		return err
	}
	if err := insertJoinRows(ctx, rep, "offer_travel_theme", "theme_id", offerId, offer.ThemeIds); err != nil {
		return err
	}

	dateRows := make([]map[string]any, 0, len(offer.AvailableDates))
	for _, d := range offer.AvailableDates {
		dateRows = append(dateRows, map[string]any{
			"offer_id":       offerId,
			"departure_date": d,
		})
	}
	if err := BulkInsertIgnore(ctx, rep.DB(), "offer_date", dateRows); err != nil {
		return fmt.Errorf("can't insert offer dates: %w", err)
	}

	imageRows := make([]map[string]any, 0, len(offer.Images))
	for _, img := range offer.Images {
		imageRows = append(imageRows, map[string]any{
			"offer_id":   offerId,
			"image_url":  img.ImageURL,
			"image_type": img.ImageType,
			"alt_text":   img.AltText,
			"sort_order": img.SortOrder,
		})
	}
	if err := BulkInsert(ctx, rep.DB(), "offer_image", imageRows); err != nil {
		return fmt.Errorf("can't insert offer images: %w", err)
	}
	return nil
}

func insertJoinRows(ctx context.Context, rep dependency.Repository, table, column string, offerId int, ids []int) error {
	rows := make([]map[string]any, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, map[string]any{
			"offer_id": offerId,
			column:     id,
		})
	}
	if err := BulkInsertIgnore(ctx, rep.DB(), table, rows); err != nil {
		return fmt.Errorf("can't insert %s rows: %w", table, err)
	}
	return nil
}

// AddOffer inserts a new offer with its images, departure dates and
// relations in a single transaction.
func (ms *MYSQLStore) AddOffer(ctx context.Context, offer *entity.OfferNew) (int, error) {
	var offerId int
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		var err error
		offerId, err = insertOffer(ctx, rep, &offer.Offer)
		if err != nil {
			return fmt.Errorf("can't insert offer: %w", err)
		}
		return insertOfferChildren(ctx, rep, offer, offerId)
	})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't add offer: %w", err)
	}
	return offerId, nil
}

// UpdateOffer replaces the offer scalars and reinserts every child and join
// row from the payload. The whole replace runs in one transaction so a
// failed reinsert can't leave the offer without children.
func (ms *MYSQLStore) UpdateOffer(ctx context.Context, offer *entity.OfferNew, id int) error {
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		if err := updateOffer(ctx, rep, &offer.Offer, id); err != nil {
			return fmt.Errorf("can't update offer: %w", err)
		}
		if err := deleteOfferChildren(ctx, rep, id); err != nil {
			return err
		}
		return insertOfferChildren(ctx, rep, offer, id)
	})
	if err != nil {
		return fmt.Errorf("can't update offer: %w", err)
	}
	return nil
}

// DeleteOfferById removes the offer and all of its child rows.
func (ms *MYSQLStore) DeleteOfferById(ctx context.Context, id int) error {
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		if err := deleteOfferChildren(ctx, rep, id); err != nil {
			return err
		}
		affected, err := ExecNamedAffected(ctx, rep.DB(), "DELETE FROM offer WHERE id = :id", map[string]any{
			"id": id,
		})
		if err != nil {
			return fmt.Errorf("can't delete offer: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
	return err
}

// GetOfferBySlug returns the denormalized view of one active offer.
func (ms *MYSQLStore) GetOfferBySlug(ctx context.Context, slug string) (*entity.OfferFull, error) {
	return ms.getOfferDetails(ctx, "o.slug = :slug AND o.is_active = 1", map[string]any{"slug": slug}, false)
}

// GetOfferById returns the denormalized view regardless of is_active, on the
// offer itself and on its linked catalog rows. Admin-only: ids never leave
// the back office, and an update rebuilds the joins from the payload, so the
// back office has to see links to deactivated rows or a PUT would drop them.
func (ms *MYSQLStore) GetOfferById(ctx context.Context, id int) (*entity.OfferFull, error) {
	return ms.getOfferDetails(ctx, "o.id = :id", map[string]any{"id": id}, true)
}

func (ms *MYSQLStore) getOfferDetails(ctx context.Context, where string, params map[string]any, showInactive bool) (*entity.OfferFull, error) {
	query := fmt.Sprintf(`SELECT o.* FROM offer o WHERE %s`, where)
	offer, err := QueryNamedOne[entity.Offer](ctx, ms.db, query, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get offer: %w", err)
	}

	images, err := fetchOfferImages(ctx, ms.db, []int{offer.Id})
	if err != nil {
		return nil, err
	}
	dates, err := fetchOfferDates(ctx, ms.db, []int{offer.Id})
	if err != nil {
		return nil, err
	}

	full := &entity.OfferFull{
		OfferView: buildOfferView(offer, images[offer.Id], dates[offer.Id]),
	}

	full.Destinations, err = fetchOfferLinks(ctx, ms.db, offer.Id, "destination", "offer_destination", "destination_id", showInactive)
	if err != nil {
		return nil, err
	}
	full.TravelTypes, err = fetchOfferLinks(ctx, ms.db, offer.Id, "travel_type", "offer_travel_type", "type_id", showInactive)
	if err != nil {
		return nil, err
	}
	full.TravelThemes, err = fetchOfferLinks(ctx, ms.db, offer.Id, "travel_theme", "offer_travel_theme", "theme_id", showInactive)
	if err != nil {
		return nil, err
	}
	return full, nil
}

func fetchOfferLinks(ctx context.Context, conn dependency.DB, offerId int, table, joinTable, joinColumn string, showInactive bool) ([]entity.OfferLink, error) {
	where := "j.offer_id = :offerId"
	if !showInactive {
		where += " AND t.is_active = 1"
	}
	query := fmt.Sprintf(`
		SELECT t.id, t.title, t.slug
		FROM %s t
		INNER JOIN %s j ON j.%s = t.id
		WHERE %s
		ORDER BY t.title ASC`, table, joinTable, joinColumn, where)

	links, err := QueryListNamed[entity.OfferLink](ctx, conn, query, map[string]any{
		"offerId": offerId,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get %s links: %w", table, err)
	}
	if links == nil {
		links = []entity.OfferLink{}
	}
	return links, nil
}

// ListOffers returns the offers matching the filter, newest first. Images
// and dates are fetched in two batch queries and merged in memory rather
// than re-queried per offer.
func (ms *MYSQLStore) ListOffers(ctx context.Context, filter entity.OfferFilter) ([]entity.OfferView, error) {
	query := `SELECT DISTINCT o.* FROM offer o`
	params := map[string]any{}

	if filter.DestinationSlug != "" {
		query += `
		INNER JOIN offer_destination od ON od.offer_id = o.id
		INNER JOIN destination d ON d.id = od.destination_id AND d.slug = :destinationSlug AND d.is_active = 1`
		params["destinationSlug"] = filter.DestinationSlug
	}
	if filter.TypeSlug != "" {
		query += `
		INNER JOIN offer_travel_type ott ON ott.offer_id = o.id
		INNER JOIN travel_type tt ON tt.id = ott.type_id AND tt.slug = :typeSlug AND tt.is_active = 1`
		params["typeSlug"] = filter.TypeSlug
	}
	if filter.ThemeSlug != "" {
		query += `
		INNER JOIN offer_travel_theme otm ON otm.offer_id = o.id
		INNER JOIN travel_theme tm ON tm.id = otm.theme_id AND tm.slug = :themeSlug AND tm.is_active = 1`
		params["themeSlug"] = filter.ThemeSlug
	}

	if !filter.ShowInactive {
		query += ` WHERE o.is_active = 1`
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC`

	offers, err := QueryListNamed[entity.Offer](ctx, ms.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("can't list offers: %w", err)
	}
	if len(offers) == 0 {
		// no ids to batch-fetch; never build an empty IN-list
		return []entity.OfferView{}, nil
	}

	ids := make([]int, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.Id)
	}

	images, err := fetchOfferImages(ctx, ms.db, ids)
	if err != nil {
		return nil, err
	}
	dates, err := fetchOfferDates(ctx, ms.db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]entity.OfferView, 0, len(offers))
	for _, o := range offers {
		views = append(views, buildOfferView(o, images[o.Id], dates[o.Id]))
	}
	return views, nil
}

func fetchOfferImages(ctx context.Context, conn dependency.DB, offerIds []int) (map[int][]entity.OfferImage, error) {
	query := `
		SELECT id, offer_id, image_url, image_type, alt_text, sort_order
		FROM offer_image
		WHERE offer_id IN (:offerIds)
		ORDER BY sort_order ASC, id ASC`

	images, err := QueryListNamed[entity.OfferImage](ctx, conn, query, map[string]any{
		"offerIds": offerIds,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get offer images: %w", err)
	}

	byOffer := make(map[int][]entity.OfferImage, len(offerIds))
	for _, img := range images {
		byOffer[img.OfferId] = append(byOffer[img.OfferId], img)
	}
	return byOffer, nil
}

func fetchOfferDates(ctx context.Context, conn dependency.DB, offerIds []int) (map[int][]entity.OfferDate, error) {
	query := `
		SELECT id, offer_id, departure_date
		FROM offer_date
		WHERE offer_id IN (:offerIds)
		ORDER BY departure_date ASC`

	dates, err := QueryListNamed[entity.OfferDate](ctx, conn, query, map[string]any{
		"offerIds": offerIds,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get offer dates: %w", err)
	}

	byOffer := make(map[int][]entity.OfferDate, len(offerIds))
	for _, d := range dates {
		byOffer[d.OfferId] = append(byOffer[d.OfferId], d)
	}
	return byOffer, nil
}

// buildOfferView is the single merge routine shared by the single-offer and
// list views, so image aliasing and date handling cannot drift between the
// two endpoints.
func buildOfferView(offer entity.Offer, images []entity.OfferImage, dates []entity.OfferDate) entity.OfferView {
	if images == nil {
		images = []entity.OfferImage{}
	}
	view := entity.OfferView{
		Offer:          offer,
		Images:         images,
		ImageURL:       resolveImageURL(images, entity.ImageTypeMain, offer.ImageMain),
		BannerImageURL: resolveImageURL(images, entity.ImageTypeBanner, offer.ImageBanner),
		PriceFrom:      offer.OfferBody.PriceFrom,
		AvailableDates: formatDates(dates),
	}
	if !view.PriceFrom.Valid {
		view.PriceFrom = offer.Price
	}
	return view
}

// resolveImageURL picks the canonical image of the given type: the first
// match in (sort_order, id) order wins, falling back to the legacy column.
func resolveImageURL(images []entity.OfferImage, imageType entity.ImageType, legacy *string) string {
	for _, img := range images {
		if img.ImageType == imageType {
			return img.ImageURL
		}
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

func formatDates(dates []entity.OfferDate) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.DepartureDate.Format(entity.DateLayout))
	}
	// ISO dates sort lexicographically; keep the guarantee independent of
	// the query's ORDER BY.
	sort.Strings(out)
	return out
}
