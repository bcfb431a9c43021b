package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type LeadView struct {
	ID           uuid.UUID      `json:"id"`
	PosterID     uuid.UUID      `json:"poster_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Location     string         `json:"location"`
	Postcode     string         `json:"postcode"`
	Lat          *float64       `json:"lat,omitempty"`
	Lng          *float64       `json:"lng,omitempty"`
	Budget       string         `json:"budget"`
	Urgency      string         `json:"urgency"`
	PricePence   int64          `json:"price_pence"`
	IsActive     bool           `json:"is_active"`
	MaxPurchases *int           `json:"max_purchases,omitempty"`
	ContactName  string         `json:"contact_name,omitempty"`
	ContactEmail string         `json:"contact_email,omitempty"`
	ContactPhone string         `json:"contact_phone,omitempty"`
	PurchasedBy  []uuid.UUID    `json:"purchased_by"`
	Interests    []InterestView `json:"interests"`
	HiredID      *uuid.UUID     `json:"hired_tradesperson_id,omitempty"`
	CancelledAt  *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type InterestView struct {
	ID               uuid.UUID `json:"id"`
	TradespersonID   uuid.UUID `json:"tradesperson_id"`
	TradespersonName string    `json:"tradesperson_name"`
	Message          string    `json:"message"`
	PricePence       int64     `json:"price_pence"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// LeadFeedItem is a feed row annotated with the distance from the viewing
// tradesperson. Contact details are never part of the feed.
type LeadFeedItem struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Postcode      string    `json:"postcode"`
	Budget        string    `json:"budget"`
	Urgency       string    `json:"urgency"`
	PricePence    int64     `json:"price_pence"`
	DistanceMiles float64   `json:"distance_miles"`
	PurchaseCount int       `json:"purchase_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type PosterLeadItem struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	IsActive      bool       `json:"is_active"`
	PurchaseCount int        `json:"purchase_count"`
	InterestCount int        `json:"interest_count"`
	HiredID       *uuid.UUID `json:"hired_tradesperson_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CandidateView feeds the notification fan-out: every active tradesperson
// with verified contact info, before the eligibility predicate runs.
type CandidateView struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	Email       string
	Trades      []string
	Lat         *float64
	Lng         *float64
	RadiusMiles *float64
	Location    string
}

// TradespersonView is the read-side snapshot used to build a feed.
type TradespersonView struct {
	ID          uuid.UUID
	Name        string
	Trades      []string
	Lat         *float64
	Lng         *float64
	RadiusMiles *float64
	Location    string
	Tier        string
}

// LeadFeedSource is an active, un-hired lead row before feed filtering.
type LeadFeedSource struct {
	ID            uuid.UUID
	Title         string
	Category      string
	Location      string
	Postcode      string
	Budget        string
	Urgency       string
	PricePence    int64
	Lat           *float64
	Lng           *float64
	PurchaseCount int
	CreatedAt     time.Time
}
