package tradesperson

import (
	"errors"

	"leadmarket/internal/domain/account"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNotActive           = errors.New("account is not active")
)

// Tradesperson is the subset of a user account that the lead core needs:
// matching inputs, membership tier and the prepaid credit balance.
type Tradesperson struct {
	id          uuid.UUID
	name        string
	status      account.Status
	trades      []string
	coords      *matching.Coordinates
	radiusMiles *float64
	tier        pricing.Tier
	credits     pricing.Money
	phone       string
	email       string
	location    string
}

func Reconstruct(
	id uuid.UUID,
	name string,
	status account.Status,
	trades []string,
	coords *matching.Coordinates,
	radiusMiles *float64,
	tier pricing.Tier,
	credits pricing.Money,
	phone, email, location string,
) *Tradesperson {
	return &Tradesperson{
		id:          id,
		name:        name,
		status:      status,
		trades:      trades,
		coords:      coords,
		radiusMiles: radiusMiles,
		tier:        tier,
		credits:     credits,
		phone:       phone,
		email:       email,
		location:    location,
	}
}

func (t *Tradesperson) IsActive() bool {
	return t.status == account.StatusActive
}

// WorkingRadius resolves the declared radius, falling back to the configured
// marketplace default.
func (t *Tradesperson) WorkingRadius(defaultMiles float64) float64 {
	if t.radiusMiles != nil && *t.radiusMiles > 0 {
		return *t.radiusMiles
	}
	return defaultMiles
}

// Debit reduces the balance by amount. The balance never goes negative; a
// short balance is an error, not a clamp.
func (t *Tradesperson) Debit(amount pricing.Money) error {
	if t.credits.LessThan(amount) {
		return ErrInsufficientCredits
	}
	t.credits = t.credits.Sub(amount)
	return nil
}

func (t *Tradesperson) MatchSpec(defaultRadiusMiles float64) matching.CandidateSpec {
	return matching.CandidateSpec{
		Trades:      t.trades,
		Coords:      t.coords,
		RadiusMiles: t.WorkingRadius(defaultRadiusMiles),
		Location:    t.location,
	}
}

func (t *Tradesperson) ID() uuid.UUID                 { return t.id }
func (t *Tradesperson) Name() string                  { return t.name }
func (t *Tradesperson) Status() account.Status        { return t.status }
func (t *Tradesperson) Trades() []string              { return t.trades }
func (t *Tradesperson) Coords() *matching.Coordinates { return t.coords }
func (t *Tradesperson) RadiusMiles() *float64         { return t.radiusMiles }
func (t *Tradesperson) Tier() pricing.Tier            { return t.tier }
func (t *Tradesperson) Credits() pricing.Money        { return t.credits }
func (t *Tradesperson) Phone() string                 { return t.phone }
func (t *Tradesperson) Email() string                 { return t.email }
func (t *Tradesperson) Location() string              { return t.location }
