package lead

import (
	"errors"
	"strings"
	"time"

	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle          = errors.New("invalid title")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidUrgency        = errors.New("invalid urgency")
	ErrInvalidContact        = errors.New("invalid contact details")
	ErrInvalidMaxPurchases   = errors.New("max purchases must be positive")
	ErrInvalidInterestStatus = errors.New("invalid interest status")
	ErrAlreadyPurchased      = errors.New("lead already purchased by this tradesperson")
	ErrPurchaseCapReached    = errors.New("lead purchase cap reached")
	ErrDuplicateInterest     = errors.New("interest already expressed for this lead")
	ErrInterestNotFound      = errors.New("interest not found")
	ErrInterestFinalized     = errors.New("interest status already finalized")
	ErrAlreadyHired          = errors.New("lead already has a hired tradesperson")
	ErrAlreadyCancelled      = errors.New("lead already cancelled")
	ErrCancelHiredLead       = errors.New("cannot cancel a lead with a hired tradesperson")
)

// Lead is the single shared mutable aggregate of the marketplace: posted by
// one homeowner, purchased and bid on by many tradespeople concurrently.
// Invariants enforced here are backstopped by database constraints; callers
// must load and mutate a Lead inside the same transaction that persists it.
type Lead struct {
	id           uuid.UUID
	posterID     uuid.UUID
	title        string
	description  string
	category     string
	location     string
	postcode     string
	coords       *matching.Coordinates
	budget       string
	urgency      Urgency
	contact      Contact
	price        pricing.Money
	isActive     bool
	maxPurchases *int
	purchasedBy  []uuid.UUID
	interests    []Interest
	hiredID      *uuid.UUID
	cancelledAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewLead(
	posterID uuid.UUID,
	title, description, category, location, postcode string,
	coords *matching.Coordinates,
	budget string,
	urgency Urgency,
	contact Contact,
	price pricing.Money,
	maxPurchases *int,
) (*Lead, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)

	if title == "" {
		return nil, ErrInvalidTitle
	}
	if category == "" {
		return nil, ErrInvalidCategory
	}
	if !urgency.IsValid() {
		return nil, ErrInvalidUrgency
	}
	if maxPurchases != nil && *maxPurchases <= 0 {
		return nil, ErrInvalidMaxPurchases
	}

	return &Lead{
		id:           uuid.New(),
		posterID:     posterID,
		title:        title,
		description:  strings.TrimSpace(description),
		category:     category,
		location:     strings.TrimSpace(location),
		postcode:     strings.ToUpper(strings.TrimSpace(postcode)),
		coords:       coords,
		budget:       strings.TrimSpace(budget),
		urgency:      urgency,
		contact:      contact,
		price:        price,
		isActive:     true,
		maxPurchases: maxPurchases,
	}, nil
}

func ReconstructLead(
	id, posterID uuid.UUID,
	title, description, category, location, postcode string,
	coords *matching.Coordinates,
	budget string,
	urgency Urgency,
	contact Contact,
	price pricing.Money,
	isActive bool,
	maxPurchases *int,
	purchasedBy []uuid.UUID,
	interests []Interest,
	hiredID *uuid.UUID,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Lead {
	return &Lead{
		id:           id,
		posterID:     posterID,
		title:        title,
		description:  description,
		category:     category,
		location:     location,
		postcode:     postcode,
		coords:       coords,
		budget:       budget,
		urgency:      urgency,
		contact:      contact,
		price:        price,
		isActive:     isActive,
		maxPurchases: maxPurchases,
		purchasedBy:  purchasedBy,
		interests:    interests,
		hiredID:      hiredID,
		cancelledAt:  cancelledAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// EffectiveMaxPurchases resolves the per-lead cap, falling back to the global
// configured default.
func (l *Lead) EffectiveMaxPurchases(defaultCap int) int {
	if l.maxPurchases != nil {
		return *l.maxPurchases
	}
	return defaultCap
}

// CanPurchase runs the purchase rejection checks in their fixed order:
// duplicate buyer first, then the cap. Lead/buyer existence and credit checks
// belong to the caller.
func (l *Lead) CanPurchase(buyerID uuid.UUID, defaultCap int) error {
	if l.HasPurchased(buyerID) {
		return ErrAlreadyPurchased
	}
	if len(l.purchasedBy) >= l.EffectiveMaxPurchases(defaultCap) {
		return ErrPurchaseCapReached
	}
	return nil
}

// RecordPurchase appends the buyer after re-running the checks, keeping
// len(purchasedBy) <= cap at every observable point.
func (l *Lead) RecordPurchase(buyerID uuid.UUID, defaultCap int) error {
	if err := l.CanPurchase(buyerID, defaultCap); err != nil {
		return err
	}
	l.purchasedBy = append(l.purchasedBy, buyerID)
	return nil
}

func (l *Lead) HasPurchased(tradespersonID uuid.UUID) bool {
	for _, id := range l.purchasedBy {
		if id == tradespersonID {
			return true
		}
	}
	return false
}

// ExpressInterest appends a pending interest. At most one interest per
// tradesperson per lead, regardless of its status.
func (l *Lead) ExpressInterest(i Interest) error {
	for _, existing := range l.interests {
		if existing.TradespersonID() == i.TradespersonID() {
			return ErrDuplicateInterest
		}
	}
	l.interests = append(l.interests, i)
	return nil
}

// UpdateInterestStatus moves a pending interest to accepted or rejected.
// Finalized interests never change again, and accepting one interest does not
// touch the others: several can be accepted at once.
func (l *Lead) UpdateInterestStatus(interestID uuid.UUID, status InterestStatus) error {
	if status != InterestAccepted && status != InterestRejected {
		return ErrInvalidInterestStatus
	}
	for idx, existing := range l.interests {
		if existing.ID() != interestID {
			continue
		}
		if existing.status != InterestPending {
			return ErrInterestFinalized
		}
		l.interests[idx].status = status
		return nil
	}
	return ErrInterestNotFound
}

// Hire is the poster's terminal selection. It deactivates the lead in the
// same step; there is no un-hire.
func (l *Lead) Hire(tradespersonID uuid.UUID) error {
	if l.hiredID != nil {
		return ErrAlreadyHired
	}
	id := tradespersonID
	l.hiredID = &id
	l.isActive = false
	return nil
}

// Cancel deactivates an unfilled lead. A lead with a hired tradesperson is
// complete, not cancellable.
func (l *Lead) Cancel(now time.Time) error {
	if l.hiredID != nil {
		return ErrCancelHiredLead
	}
	if l.cancelledAt != nil {
		return ErrAlreadyCancelled
	}
	t := now
	l.cancelledAt = &t
	l.isActive = false
	return nil
}

func (l *Lead) MatchSpec() matching.LeadSpec {
	return matching.LeadSpec{
		Category: l.category,
		Coords:   l.coords,
		Location: l.location,
	}
}

func (l *Lead) ID() uuid.UUID                    { return l.id }
func (l *Lead) PosterID() uuid.UUID              { return l.posterID }
func (l *Lead) Title() string                    { return l.title }
func (l *Lead) Description() string              { return l.description }
func (l *Lead) Category() string                 { return l.category }
func (l *Lead) Location() string                 { return l.location }
func (l *Lead) Postcode() string                 { return l.postcode }
func (l *Lead) Coords() *matching.Coordinates    { return l.coords }
func (l *Lead) Budget() string                   { return l.budget }
func (l *Lead) Urgency() Urgency                 { return l.urgency }
func (l *Lead) Contact() Contact                 { return l.contact }
func (l *Lead) Price() pricing.Money             { return l.price }
func (l *Lead) IsActive() bool                   { return l.isActive }
func (l *Lead) MaxPurchases() *int               { return l.maxPurchases }
func (l *Lead) PurchasedBy() []uuid.UUID         { return l.purchasedBy }
func (l *Lead) Interests() []Interest            { return l.interests }
func (l *Lead) HiredTradesperson() *uuid.UUID    { return l.hiredID }
func (l *Lead) CancelledAt() *time.Time          { return l.cancelledAt }
func (l *Lead) CreatedAt() time.Time             { return l.createdAt }
func (l *Lead) UpdatedAt() time.Time             { return l.updatedAt }
