package commands

import (
	"context"
	"log/slog"
	"time"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/pkg/errs"
	"leadmarket/internal/usecase/queries"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateLeadInput struct {
	PosterID     uuid.UUID
	Title        string
	Description  string
	Category     string
	Location     string
	Postcode     string
	Budget       string
	Urgency      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	PricePence   int64
	MaxPurchases *int
}

type LeadCommands struct {
	tx         shared.TxRunner
	leads      LeadRepository
	candidates CandidateReader
	geo        GeoResolver
	dispatcher Dispatcher
	market     config.MarketConfig
}

func NewLeadCommands(
	tx shared.TxRunner,
	leads LeadRepository,
	candidates CandidateReader,
	geo GeoResolver,
	dispatcher Dispatcher,
	market config.MarketConfig,
) *LeadCommands {
	return &LeadCommands{
		tx:         tx,
		leads:      leads,
		candidates: candidates,
		geo:        geo,
		dispatcher: dispatcher,
		market:     market,
	}
}

// CreateLead validates, geocodes and persists a new lead, then fans out
// notifications to matching tradespeople. The fan-out runs after commit and is
// best effort: creation succeeds even if every notification fails.
func (c *LeadCommands) CreateLead(ctx context.Context, in CreateLeadInput) (uuid.UUID, error) {
	urgency, err := lead.NewUrgency(in.Urgency)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	contact, err := lead.NewContact(in.ContactName, in.ContactEmail, in.ContactPhone)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	price, err := pricing.NewMoneyFromPence(in.PricePence)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	coords := c.geo.Resolve(ctx, in.Postcode)

	l, err := lead.NewLead(
		in.PosterID,
		in.Title, in.Description, in.Category, in.Location, in.Postcode,
		&coords,
		in.Budget, urgency, contact, price, in.MaxPurchases,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		_, err := c.leads.Create(ctx, db, l)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	go c.notifyMatches(l)

	return l.ID(), nil
}

// notifyMatches runs the eligibility predicate over the active candidate pool
// and enqueues one alert per match. Detached from the request context so an
// early client disconnect does not cut the fan-out short.
func (c *LeadCommands) notifyMatches(l *lead.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	candidates, err := c.candidates.ActiveCandidates(ctx)
	if err != nil {
		slog.Warn("candidate lookup for lead alert failed", "lead_id", l.ID(), "error", err.Error())
		return
	}

	spec := l.MatchSpec()
	matched := 0
	for _, cand := range candidates {
		ok, dist := matching.Evaluate(spec, candidateSpec(cand, c.market.DefaultRadiusMiles))
		if !ok {
			continue
		}
		c.dispatcher.LeadAlert(cand.Phone, cand.Email, l.Title(), l.Location(), dist)
		matched++
	}

	slog.Info("lead alert fan-out complete", "lead_id", l.ID(), "candidates", len(candidates), "matched", matched)
}

func candidateSpec(c queries.CandidateView, defaultRadius float64) matching.CandidateSpec {
	var coords *matching.Coordinates
	if c.Lat != nil && c.Lng != nil {
		coords = &matching.Coordinates{Lat: *c.Lat, Lng: *c.Lng}
	}
	radius := defaultRadius
	if c.RadiusMiles != nil && *c.RadiusMiles > 0 {
		radius = *c.RadiusMiles
	}
	return matching.CandidateSpec{
		Trades:      c.Trades,
		Coords:      coords,
		RadiusMiles: radius,
		Location:    c.Location,
	}
}
