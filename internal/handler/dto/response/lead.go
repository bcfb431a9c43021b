package response

import (
	"time"

	"leadmarket/internal/usecase/commands"
	"leadmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LeadResponse struct {
	ID           uuid.UUID          `json:"id"`
	PosterID     uuid.UUID          `json:"poster_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Location     string             `json:"location"`
	Postcode     string             `json:"postcode"`
	Budget       string             `json:"budget"`
	Urgency      string             `json:"urgency"`
	PricePence   int64              `json:"price_pence"`
	IsActive     bool               `json:"is_active"`
	MaxPurchases *int               `json:"max_purchases,omitempty"`
	ContactName  string             `json:"contact_name,omitempty"`
	ContactEmail string             `json:"contact_email,omitempty"`
	ContactPhone string             `json:"contact_phone,omitempty"`
	PurchasedBy  []uuid.UUID        `json:"purchased_by"`
	Interests    []InterestResponse `json:"interests,omitempty"`
	HiredID      *uuid.UUID         `json:"hired_tradesperson_id,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type InterestResponse struct {
	ID               uuid.UUID `json:"id"`
	TradespersonID   uuid.UUID `json:"tradesperson_id"`
	TradespersonName string    `json:"tradesperson_name"`
	Message          string    `json:"message"`
	PricePence       int64     `json:"price_pence"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type FeedItemResponse struct {
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

type PosterLeadResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	IsActive      bool       `json:"is_active"`
	PurchaseCount int        `json:"purchase_count"`
	InterestCount int        `json:"interest_count"`
	HiredID       *uuid.UUID `json:"hired_tradesperson_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PurchaseResponse struct {
	LeadID                uuid.UUID `json:"lead_id"`
	PricePence            int64     `json:"price_pence"`
	RemainingCreditsPence int64     `json:"remaining_credits_pence"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// View and response structs are field-aligned; copier keeps the mapping from
// drifting into two hand-maintained lists.
func FromLeadView(v *queries.LeadView) *LeadResponse {
	var resp LeadResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromFeedItems(items []queries.LeadFeedItem) []FeedItemResponse {
	resp := make([]FeedItemResponse, 0, len(items))
	_ = copier.Copy(&resp, items)
	return resp
}

func FromPosterItems(items []queries.PosterLeadItem) []PosterLeadResponse {
	resp := make([]PosterLeadResponse, 0, len(items))
	_ = copier.Copy(&resp, items)
	return resp
}

func FromPurchaseResult(r commands.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		LeadID:                r.LeadID,
		PricePence:            r.PricePence,
		RemainingCreditsPence: r.RemainingCreditsPence,
	}
}
