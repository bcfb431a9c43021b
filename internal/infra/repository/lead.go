package repository

import (
	"context"
	"time"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/infra"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type LeadRepository struct{}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

func (r *LeadRepository) Create(ctx context.Context, db shared.DBTX, l *lead.Lead) (uuid.UUID, error) {
	const q = `
		INSERT INTO leads (
			id, poster_id, title, description, category, location, postcode,
			lat, lng, budget, urgency, contact_name, contact_email, contact_phone,
			price_pence, is_active, max_purchases, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, now(), now()
		)`

	var lat, lng *float64
	if c := l.Coords(); c != nil {
		lat, lng = &c.Lat, &c.Lng
	}

	contact := l.Contact()
	_, err := db.Exec(ctx, q,
		l.ID(), l.PosterID(), l.Title(), l.Description(), l.Category(), l.Location(), l.Postcode(),
		lat, lng, l.Budget(), l.Urgency().String(), contact.Name(), contact.Email(), contact.Phone(),
		l.Price().Pence(), l.IsActive(), l.MaxPurchases(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create lead", err)
	}
	return l.ID(), nil
}

// FindForUpdate locks the lead row for the rest of the transaction and
// reconstructs the full aggregate (purchases and interests included). All
// purchase/interest/hire/cancel decisions must run against this locked view.
func (r *LeadRepository) FindForUpdate(ctx context.Context, db shared.DBTX, id uuid.UUID) (*lead.Lead, error) {
	const q = `
		SELECT id, poster_id, title, description, category, location, postcode,
		       lat, lng, budget, urgency, contact_name, contact_email, contact_phone,
		       price_pence, is_active, max_purchases, hired_tradesperson_id, cancelled_at,
		       created_at, updated_at
		FROM leads
		WHERE id = $1
		FOR UPDATE`

	var (
		leadID, posterID                                  uuid.UUID
		title, description, category, location, postcode  string
		lat, lng                                          *float64
		budget, urgency                                   string
		contactName, contactEmail, contactPhone           string
		pricePence                                        int64
		isActive                                          bool
		maxPurchases                                      *int
		hiredID                                           *uuid.UUID
		cancelledAt                                       *time.Time
		createdAt, updatedAt                              time.Time
	)

	err := db.QueryRow(ctx, q, id).Scan(
		&leadID, &posterID, &title, &description, &category, &location, &postcode,
		&lat, &lng, &budget, &urgency, &contactName, &contactEmail, &contactPhone,
		&pricePence, &isActive, &maxPurchases, &hiredID, &cancelledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock lead", err)
	}

	purchasers, err := r.purchaserIDs(ctx, db, leadID)
	if err != nil {
		return nil, err
	}

	interests, err := r.interests(ctx, db, leadID)
	if err != nil {
		return nil, err
	}

	var coords *matching.Coordinates
	if lat != nil && lng != nil {
		coords = &matching.Coordinates{Lat: *lat, Lng: *lng}
	}

	return lead.ReconstructLead(
		leadID, posterID,
		title, description, category, location, postcode,
		coords, budget, lead.Urgency(urgency),
		lead.ReconstructContact(contactName, contactEmail, contactPhone),
		pricing.NewMoney(pricePence),
		isActive, maxPurchases,
		purchasers, interests, hiredID, cancelledAt,
		createdAt, updatedAt,
	), nil
}

func (r *LeadRepository) purchaserIDs(ctx context.Context, db shared.DBTX, leadID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT tradesperson_id
		FROM lead_purchases
		WHERE lead_id = $1
		ORDER BY created_at`

	rows, err := db.Query(ctx, q, leadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load lead purchasers", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
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

func (r *LeadRepository) interests(ctx context.Context, db shared.DBTX, leadID uuid.UUID) ([]lead.Interest, error) {
	const q = `
		SELECT id, tradesperson_id, tradesperson_name, message, price_pence, status, created_at
		FROM lead_interests
		WHERE lead_id = $1
		ORDER BY created_at`

	rows, err := db.Query(ctx, q, leadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load lead interests", err)
	}
	defer rows.Close()

	var interests []lead.Interest
	for rows.Next() {
		var (
			id, tpID   uuid.UUID
			name, msg  string
			pricePence int64
			status     string
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &tpID, &name, &msg, &pricePence, &status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interest", err)
		}
		interests = append(interests, lead.ReconstructInterest(
			id, tpID, name, msg, pricing.NewMoney(pricePence), lead.InterestStatus(status), createdAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interests", err)
	}
	return interests, nil
}

// InsertPurchase appends to the purchase child table. The unique
// (lead_id, tradesperson_id) constraint is the safety net under the domain
// duplicate check; a violation surfaces as KindDuplicateKey.
func (r *LeadRepository) InsertPurchase(ctx context.Context, db shared.DBTX, leadID, buyerID uuid.UUID, price pricing.Money, chargeRef *string) error {
	const q = `
		INSERT INTO lead_purchases (id, lead_id, tradesperson_id, price_pence, charge_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`

	if _, err := db.Exec(ctx, q, uuid.New(), leadID, buyerID, price.Pence(), chargeRef); err != nil {
		return infra.WrapRepoErr("failed to insert lead purchase", err)
	}
	return nil
}

func (r *LeadRepository) InsertInterest(ctx context.Context, db shared.DBTX, leadID uuid.UUID, i lead.Interest) error {
	const q = `
		INSERT INTO lead_interests (id, lead_id, tradesperson_id, tradesperson_name, message, price_pence, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db.Exec(ctx, q,
		i.ID(), leadID, i.TradespersonID(), i.TradespersonName(), i.Message(),
		i.Price().Pence(), i.Status().String(), i.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert interest", err)
	}
	return nil
}

func (r *LeadRepository) UpdateInterestStatus(ctx context.Context, db shared.DBTX, leadID, interestID uuid.UUID, status lead.InterestStatus) error {
	const q = `
		UPDATE lead_interests
		SET status = $3
		WHERE id = $2 AND lead_id = $1 AND status = 'pending'`

	tag, err := db.Exec(ctx, q, leadID, interestID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update interest status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("interest not pending or not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *LeadRepository) MarkHired(ctx context.Context, db shared.DBTX, leadID, tradespersonID uuid.UUID) error {
	const q = `
		UPDATE leads
		SET hired_tradesperson_id = $2, is_active = false, updated_at = now()
		WHERE id = $1 AND hired_tradesperson_id IS NULL`

	tag, err := db.Exec(ctx, q, leadID, tradespersonID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark lead hired", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lead already hired or missing", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (r *LeadRepository) MarkCancelled(ctx context.Context, db shared.DBTX, leadID uuid.UUID, at time.Time) error {
	const q = `
		UPDATE leads
		SET cancelled_at = $2, is_active = false, updated_at = now()
		WHERE id = $1 AND hired_tradesperson_id IS NULL AND cancelled_at IS NULL`

	tag, err := db.Exec(ctx, q, leadID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark lead cancelled", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lead hired, cancelled or missing", nil, infra.KindDuplicateKey)
	}
	return nil
}
