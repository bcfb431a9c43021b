package repository

import (
	"context"
	"time"

	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/infra"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentRepository writes the append-only payment ledger. Rows are never
// updated or deleted; refunds and adjustments are new rows.
type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

type PaymentRow struct {
	TradespersonID uuid.UUID
	LeadID         *uuid.UUID
	Amount         pricing.Money
	Kind           string
	Status         string
	Description    string
	ChargeRef      *string
	OccurredAt     time.Time
}

func (r *PaymentRepository) Insert(ctx context.Context, db shared.DBTX, p PaymentRow) (uuid.UUID, error) {
	const q = `
		INSERT INTO payments (id, tradesperson_id, lead_id, amount_pence, kind, status, description, charge_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	id := uuid.New()
	_, err := db.Exec(ctx, q,
		id, p.TradespersonID, p.LeadID, p.Amount.Pence(), p.Kind, p.Status, p.Description, p.ChargeRef, p.OccurredAt,
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert payment", err)
	}
	return id, nil
}
