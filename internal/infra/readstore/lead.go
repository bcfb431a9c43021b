package readstore

import (
	"context"

	"leadmarket/internal/infra"
	"leadmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadReadStore struct {
	pool *pgxpool.Pool
}

func NewLeadReadStore(pool *pgxpool.Pool) *LeadReadStore {
	return &LeadReadStore{pool: pool}
}

func (s *LeadReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LeadView, error) {
	const q = `
		SELECT id, poster_id, title, description, category, location, postcode,
		       lat, lng, budget, urgency, price_pence, is_active, max_purchases,
		       contact_name, contact_email, contact_phone,
		       hired_tradesperson_id, cancelled_at, created_at, updated_at
		FROM leads
		WHERE id = $1`

	var v queries.LeadView
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.PosterID, &v.Title, &v.Description, &v.Category, &v.Location, &v.Postcode,
		&v.Lat, &v.Lng, &v.Budget, &v.Urgency, &v.PricePence, &v.IsActive, &v.MaxPurchases,
		&v.ContactName, &v.ContactEmail, &v.ContactPhone,
		&v.HiredID, &v.CancelledAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find lead", err)
	}

	purchasers, err := s.purchaserIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	v.PurchasedBy = purchasers

	interests, err := s.interestViews(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Interests = interests

	return &v, nil
}

func (s *LeadReadStore) purchaserIDs(ctx context.Context, leadID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT tradesperson_id
		FROM lead_purchases
		WHERE lead_id = $1
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q, leadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list purchasers", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchaser", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate purchasers", err)
	}
	return ids, nil
}

func (s *LeadReadStore) interestViews(ctx context.Context, leadID uuid.UUID) ([]queries.InterestView, error) {
	const q = `
		SELECT id, tradesperson_id, tradesperson_name, message, price_pence, status, created_at
		FROM lead_interests
		WHERE lead_id = $1
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q, leadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list interests", err)
	}
	defer rows.Close()

	views := make([]queries.InterestView, 0)
	for rows.Next() {
		var iv queries.InterestView
		if err := rows.Scan(&iv.ID, &iv.TradespersonID, &iv.TradespersonName, &iv.Message, &iv.PricePence, &iv.Status, &iv.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interest", err)
		}
		views = append(views, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interests", err)
	}
	return views, nil
}

// ActiveFeedSources returns every active, un-hired lead the given tradesperson
// has not already purchased. Eligibility filtering happens in the query layer,
// not in SQL: trade and radius matching need the shared predicate.
func (s *LeadReadStore) ActiveFeedSources(ctx context.Context, excludeBuyer uuid.UUID) ([]queries.LeadFeedSource, error) {
	const q = `
		SELECT l.id, l.title, l.category, l.location, l.postcode, l.budget, l.urgency,
		       l.price_pence, l.lat, l.lng,
		       (SELECT count(*) FROM lead_purchases p WHERE p.lead_id = l.id) AS purchase_count,
		       l.created_at
		FROM leads l
		WHERE l.is_active = true
		  AND l.hired_tradesperson_id IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM lead_purchases p
			WHERE p.lead_id = l.id AND p.tradesperson_id = $1
		  )
		ORDER BY l.created_at DESC`

	rows, err := s.pool.Query(ctx, q, excludeBuyer)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list feed sources", err)
	}
	defer rows.Close()

	sources := make([]queries.LeadFeedSource, 0)
	for rows.Next() {
		var src queries.LeadFeedSource
		err := rows.Scan(
			&src.ID, &src.Title, &src.Category, &src.Location, &src.Postcode, &src.Budget, &src.Urgency,
			&src.PricePence, &src.Lat, &src.Lng, &src.PurchaseCount, &src.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan feed source", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate feed sources", err)
	}
	return sources, nil
}

func (s *LeadReadStore) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]queries.PosterLeadItem, error) {
	const q = `
		SELECT l.id, l.title, l.category, l.is_active,
		       (SELECT count(*) FROM lead_purchases p WHERE p.lead_id = l.id) AS purchase_count,
		       (SELECT count(*) FROM lead_interests i WHERE i.lead_id = l.id) AS interest_count,
		       l.hired_tradesperson_id, l.created_at
		FROM leads l
		WHERE l.poster_id = $1
		ORDER BY l.created_at DESC`

	rows, err := s.pool.Query(ctx, q, posterID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list poster leads", err)
	}
	defer rows.Close()

	items := make([]queries.PosterLeadItem, 0)
	for rows.Next() {
		var item queries.PosterLeadItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Category, &item.IsActive,
			&item.PurchaseCount, &item.InterestCount, &item.HiredID, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan poster lead", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate poster leads", err)
	}
	return items, nil
}
