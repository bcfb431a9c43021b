//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"leadmarket/internal/domain/account"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/infra"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeadReader struct {
	views   map[uuid.UUID]*queries.LeadView
	sources []queries.LeadFeedSource
	posted  []queries.PosterLeadItem
}

func (f *fakeLeadReader) FindByID(_ context.Context, id uuid.UUID) (*queries.LeadView, error) {
	v, ok := f.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("lead not found", nil, infra.KindNotFound)
	}
	cp := *v
	return &cp, nil
}

func (f *fakeLeadReader) ActiveFeedSources(_ context.Context, _ uuid.UUID) ([]queries.LeadFeedSource, error) {
	return f.sources, nil
}

func (f *fakeLeadReader) ListByPoster(_ context.Context, _ uuid.UUID) ([]queries.PosterLeadItem, error) {
	return f.posted, nil
}

type fakeTradespersonReader struct {
	views map[uuid.UUID]*queries.TradespersonView
}

func (f *fakeTradespersonReader) FindByID(_ context.Context, id uuid.UUID) (*queries.TradespersonView, error) {
	v, ok := f.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("tradesperson not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func floatPtr(v float64) *float64 { return &v }

func feedSource(title string, pricePence int64, lat, lng *float64) queries.LeadFeedSource {
	return queries.LeadFeedSource{
		ID:         uuid.New(),
		Title:      title,
		Category:   "Plumbing",
		Location:   "Leeds, West Yorkshire",
		Postcode:   "LS1 4AP",
		Urgency:    "high",
		PricePence: pricePence,
		Lat:        lat,
		Lng:        lng,
		CreatedAt:  time.Now(),
	}
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	market := config.NewTestConfig().Market

	leedsViewer := &queries.TradespersonView{
		ID:     uuid.New(),
		Name:   "Bob Builder",
		Trades: []string{"Plumber"},
		Lat:    floatPtr(53.7997),
		Lng:    floatPtr(-1.5492),
		Tier:   "none",
	}

	newQueries := func(leads *fakeLeadReader, schedule pricing.Schedule) *queries.LeadQueries {
		traders := &fakeTradespersonReader{
			views: map[uuid.UUID]*queries.TradespersonView{leedsViewer.ID: leedsViewer},
		}
		return queries.NewLeadQueries(leads, traders, schedule, market)
	}

	t.Run("filters by trade and radius, sorts by distance", func(t *testing.T) {
		near := feedSource("Leaking tap", 500, floatPtr(53.81), floatPtr(-1.55))
		nearer := feedSource("Blocked drain", 500, floatPtr(53.80), floatPtr(-1.549))
		far := feedSource("Boiler service", 500, floatPtr(51.50), floatPtr(-0.12))
		wrongTrade := feedSource("Rewire kitchen", 500, floatPtr(53.80), floatPtr(-1.55))
		wrongTrade.Category = "Electrical"

		leads := &fakeLeadReader{sources: []queries.LeadFeedSource{near, far, wrongTrade, nearer}}
		q := newQueries(leads, pricing.NewSchedule(0, 0))

		items, err := q.Feed(ctx, leedsViewer.ID)
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, "Blocked drain", items[0].Title)
		assert.Equal(t, "Leaking tap", items[1].Title)
		assert.Less(t, items[0].DistanceMiles, items[1].DistanceMiles)
	})

	t.Run("lead without coordinates sorts first at distance zero", func(t *testing.T) {
		near := feedSource("Leaking tap", 500, floatPtr(53.81), floatPtr(-1.55))
		noCoords := feedSource("Garden tap", 500, nil, nil)

		leads := &fakeLeadReader{sources: []queries.LeadFeedSource{near, noCoords}}
		q := newQueries(leads, pricing.NewSchedule(0, 0))

		items, err := q.Feed(ctx, leedsViewer.ID)
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, "Garden tap", items[0].Title)
		assert.Zero(t, items[0].DistanceMiles)
	})

	t.Run("prices reflect the viewer's tier", func(t *testing.T) {
		src := feedSource("Leaking tap", 1000, floatPtr(53.80), floatPtr(-1.55))
		leads := &fakeLeadReader{sources: []queries.LeadFeedSource{src}}

		premium := &queries.TradespersonView{
			ID:     uuid.New(),
			Trades: []string{"Plumber"},
			Lat:    floatPtr(53.7997),
			Lng:    floatPtr(-1.5492),
			Tier:   "premium",
		}
		traders := &fakeTradespersonReader{
			views: map[uuid.UUID]*queries.TradespersonView{premium.ID: premium},
		}
		q := queries.NewLeadQueries(leads, traders, pricing.NewSchedule(10, 25), market)

		items, err := q.Feed(ctx, premium.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)

		want := queries.LeadFeedItem{
			ID:         src.ID,
			Title:      "Leaking tap",
			Category:   "Plumbing",
			Location:   "Leeds, West Yorkshire",
			Postcode:   "LS1 4AP",
			Urgency:    "high",
			PricePence: 750,
			CreatedAt:  src.CreatedAt,
		}
		if diff := cmp.Diff(want, items[0], cmpopts.EquateApprox(0, 0.05)); diff != "" {
			t.Errorf("feed item mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown viewer", func(t *testing.T) {
		q := newQueries(&fakeLeadReader{}, pricing.NewSchedule(0, 0))

		_, err := q.Feed(ctx, uuid.New())
		assert.ErrorIs(t, err, queries.ErrTradespersonNotFound)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	market := config.NewTestConfig().Market

	poster := uuid.New()
	purchaser := uuid.New()
	leadID := uuid.New()

	newQueriesWithView := func() *queries.LeadQueries {
		view := &queries.LeadView{
			ID:           leadID,
			PosterID:     poster,
			Title:        "Leaking tap",
			ContactName:  "Jane Smith",
			ContactEmail: "jane@example.com",
			ContactPhone: "07700900456",
			PurchasedBy:  []uuid.UUID{purchaser},
			Interests: []queries.InterestView{
				{ID: uuid.New(), TradespersonName: "Bob Builder", Status: "pending"},
			},
		}
		leads := &fakeLeadReader{views: map[uuid.UUID]*queries.LeadView{leadID: view}}
		return queries.NewLeadQueries(leads, &fakeTradespersonReader{}, pricing.NewSchedule(0, 0), market)
	}

	t.Run("poster sees contact and interests", func(t *testing.T) {
		q := newQueriesWithView()

		v, err := q.GetByID(ctx, leadID, poster, account.RoleHomeowner)
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", v.ContactName)
		assert.Len(t, v.Interests, 1)
	})

	t.Run("purchaser sees contact but not interests", func(t *testing.T) {
		q := newQueriesWithView()

		v, err := q.GetByID(ctx, leadID, purchaser, account.RoleTradesperson)
		require.NoError(t, err)
		assert.Equal(t, "07700900456", v.ContactPhone)
		assert.Nil(t, v.Interests)
	})

	t.Run("stranger sees neither", func(t *testing.T) {
		q := newQueriesWithView()

		v, err := q.GetByID(ctx, leadID, uuid.New(), account.RoleTradesperson)
		require.NoError(t, err)
		assert.Empty(t, v.ContactName)
		assert.Empty(t, v.ContactEmail)
		assert.Empty(t, v.ContactPhone)
		assert.Nil(t, v.Interests)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		q := newQueriesWithView()

		v, err := q.GetByID(ctx, leadID, uuid.New(), account.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", v.ContactName)
		assert.Len(t, v.Interests, 1)
	})

	t.Run("unknown lead", func(t *testing.T) {
		q := newQueriesWithView()

		_, err := q.GetByID(ctx, uuid.New(), poster, account.RoleHomeowner)
		assert.ErrorIs(t, err, queries.ErrLeadNotFound)
	})
}
