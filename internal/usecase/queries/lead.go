package queries

import (
	"context"
	"sort"

	"leadmarket/internal/domain/account"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/infra"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound         = errs.New("lead not found")
	ErrTradespersonNotFound = errs.New("tradesperson not found")
	ErrQueryFailed          = errs.New("query failed")
)

type LeadReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeadView, error)
	ActiveFeedSources(ctx context.Context, excludeBuyer uuid.UUID) ([]LeadFeedSource, error)
	ListByPoster(ctx context.Context, posterID uuid.UUID) ([]PosterLeadItem, error)
}

type TradespersonReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TradespersonView, error)
}

type LeadQueries struct {
	leads    LeadReader
	traders  TradespersonReader
	schedule pricing.Schedule
	market   config.MarketConfig
}

func NewLeadQueries(leads LeadReader, traders TradespersonReader, schedule pricing.Schedule, market config.MarketConfig) *LeadQueries {
	return &LeadQueries{leads: leads, traders: traders, schedule: schedule, market: market}
}

// Feed builds the personalized lead feed for a tradesperson: active, un-hired,
// not-yet-purchased leads that pass the shared eligibility predicate, sorted
// by distance ascending. Leads without coordinates report distance 0 and so
// appear first. Prices shown are the viewer's effective prices.
func (q *LeadQueries) Feed(ctx context.Context, tradespersonID uuid.UUID) ([]LeadFeedItem, error) {
	tp, err := q.traders.FindByID(ctx, tradespersonID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTradespersonNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	sources, err := q.leads.ActiveFeedSources(ctx, tradespersonID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	cand := candidateSpec(tp, q.market.DefaultRadiusMiles)
	tier := pricing.Tier(tp.Tier)

	items := make([]LeadFeedItem, 0, len(sources))
	for _, src := range sources {
		ok, dist := matching.Evaluate(leadSpec(src), cand)
		if !ok {
			continue
		}
		items = append(items, LeadFeedItem{
			ID:            src.ID,
			Title:         src.Title,
			Category:      src.Category,
			Location:      src.Location,
			Postcode:      src.Postcode,
			Budget:        src.Budget,
			Urgency:       src.Urgency,
			PricePence:    q.schedule.EffectivePrice(pricing.NewMoney(src.PricePence), tier).Pence(),
			DistanceMiles: dist,
			PurchaseCount: src.PurchaseCount,
			CreatedAt:     src.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DistanceMiles < items[j].DistanceMiles
	})

	return items, nil
}

// GetByID returns the lead detail with audience-dependent redaction. Contact
// details are the purchased asset: only the poster, a purchaser or an admin
// sees them. The interest list is the poster's hiring tool and stays private
// to the poster and admins.
func (q *LeadQueries) GetByID(ctx context.Context, leadID, viewerID uuid.UUID, role account.Role) (*LeadView, error) {
	v, err := q.leads.FindByID(ctx, leadID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrLeadNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	isPoster := v.PosterID == viewerID
	isAdmin := role == account.RoleAdmin
	isPurchaser := false
	for _, id := range v.PurchasedBy {
		if id == viewerID {
			isPurchaser = true
			break
		}
	}

	if !isPoster && !isAdmin && !isPurchaser {
		v.ContactName = ""
		v.ContactEmail = ""
		v.ContactPhone = ""
	}
	if !isPoster && !isAdmin {
		v.Interests = nil
	}

	return v, nil
}

func (q *LeadQueries) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]PosterLeadItem, error) {
	items, err := q.leads.ListByPoster(ctx, posterID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}

func leadSpec(src LeadFeedSource) matching.LeadSpec {
	var coords *matching.Coordinates
	if src.Lat != nil && src.Lng != nil {
		coords = &matching.Coordinates{Lat: *src.Lat, Lng: *src.Lng}
	}
	return matching.LeadSpec{
		Category: src.Category,
		Coords:   coords,
		Location: src.Location,
	}
}

func candidateSpec(tp *TradespersonView, defaultRadius float64) matching.CandidateSpec {
	var coords *matching.Coordinates
	if tp.Lat != nil && tp.Lng != nil {
		coords = &matching.Coordinates{Lat: *tp.Lat, Lng: *tp.Lng}
	}
	radius := defaultRadius
	if tp.RadiusMiles != nil && *tp.RadiusMiles > 0 {
		radius = *tp.RadiusMiles
	}
	return matching.CandidateSpec{
		Trades:      tp.Trades,
		Coords:      coords,
		RadiusMiles: radius,
		Location:    tp.Location,
	}
}
