package request

import (
	"strings"
)

type CreateLeadRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	Location     string `json:"location"`
	Postcode     string `json:"postcode"`
	Budget       string `json:"budget"`
	Urgency      string `json:"urgency" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	PricePence   int64  `json:"price_pence" binding:"min=0"`
	MaxPurchases *int   `json:"max_purchases,omitempty"`
}

type ExpressInterestRequest struct {
	Message    string `json:"message"`
	PricePence int64  `json:"price_pence" binding:"min=0"`
}

type UpdateInterestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateInterestStatusRequest) NormalizedStatus() string {
	return strings.ToLower(strings.TrimSpace(r.Status))
}

type HireRequest struct {
	TradespersonID string `json:"tradesperson_id" binding:"required,uuid"`
}

type ConfirmChargeRequest struct {
	LeadID          string `json:"lead_id" binding:"required,uuid"`
	ChargeReference string `json:"charge_reference" binding:"required"`
}
