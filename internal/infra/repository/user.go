package repository

import (
	"context"

	"leadmarket/internal/domain/account"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/domain/tradesperson"
	"leadmarket/internal/infra"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const tradespersonColumns = `
	id, name, status, trades, lat, lng, radius_miles, membership_tier,
	credits_pence, phone, email, location`

// FindTradespersonForUpdate locks the buyer row so the credit balance read and
// the later debit see the same value.
func (r *UserRepository) FindTradespersonForUpdate(ctx context.Context, db shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error) {
	q := `
		SELECT ` + tradespersonColumns + `
		FROM users
		WHERE id = $1 AND role = 'tradesperson'
		FOR UPDATE`

	return r.scanTradesperson(ctx, db, q, id)
}

func (r *UserRepository) FindTradesperson(ctx context.Context, db shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error) {
	q := `
		SELECT ` + tradespersonColumns + `
		FROM users
		WHERE id = $1 AND role = 'tradesperson'`

	return r.scanTradesperson(ctx, db, q, id)
}

func (r *UserRepository) scanTradesperson(ctx context.Context, db shared.DBTX, q string, id uuid.UUID) (*tradesperson.Tradesperson, error) {
	var (
		userID               uuid.UUID
		name, status, tier   string
		trades               []string
		lat, lng, radius     *float64
		creditsPence         int64
		phone, email, loc    string
	)

	err := db.QueryRow(ctx, q, id).Scan(
		&userID, &name, &status, &trades, &lat, &lng, &radius, &tier,
		&creditsPence, &phone, &email, &loc,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find tradesperson", err)
	}

	var coords *matching.Coordinates
	if lat != nil && lng != nil {
		coords = &matching.Coordinates{Lat: *lat, Lng: *lng}
	}

	return tradesperson.Reconstruct(
		userID, name, account.Status(status), trades, coords, radius,
		pricing.Tier(tier), pricing.NewMoney(creditsPence),
		phone, email, loc,
	), nil
}

// DebitCredits performs the balance update with a guard clause so a concurrent
// writer can never drive the balance negative even without the row lock.
func (r *UserRepository) DebitCredits(ctx context.Context, db shared.DBTX, id uuid.UUID, amount pricing.Money) error {
	const q = `
		UPDATE users
		SET credits_pence = credits_pence - $2, updated_at = now()
		WHERE id = $1 AND credits_pence >= $2`

	tag, err := db.Exec(ctx, q, id, amount.Pence())
	if err != nil {
		return infra.WrapRepoErr("failed to debit credits", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("balance below debit amount", nil, infra.KindCheckViolated)
	}
	return nil
}

// CreditBalance reads the current balance, used for the post-purchase summary.
func (r *UserRepository) CreditBalance(ctx context.Context, db shared.DBTX, id uuid.UUID) (pricing.Money, error) {
	const q = `SELECT credits_pence FROM users WHERE id = $1`

	var pence int64
	if err := db.QueryRow(ctx, q, id).Scan(&pence); err != nil {
		return pricing.Money{}, infra.WrapRepoErr("failed to read credit balance", err)
	}
	return pricing.NewMoney(pence), nil
}
