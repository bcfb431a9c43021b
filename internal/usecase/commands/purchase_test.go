//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/pkg/clock"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMarket() config.MarketConfig {
	return config.NewTestConfig().Market
}

type purchaseFixture struct {
	cmd        *commands.PurchaseCommands
	leads      *fakeLeadRepo
	users      *fakeUserRepo
	payments   *fakePaymentRepo
	dispatcher *fakeDispatcher
}

func newPurchaseFixture(schedule pricing.Schedule) *purchaseFixture {
	leads := newFakeLeadRepo()
	users := newFakeUserRepo()
	payments := &fakePaymentRepo{}
	dispatcher := &fakeDispatcher{}
	cmd := commands.NewPurchaseCommands(
		&fakeTxRunner{}, leads, users, payments, dispatcher,
		schedule, testMarket(), clock.NewRealClock(),
	)
	return &purchaseFixture{cmd: cmd, leads: leads, users: users, payments: payments, dispatcher: dispatcher}
}

func (f *purchaseFixture) addLead(price int64, maxPurchases *int) uuid.UUID {
	id := uuid.New()
	f.leads.put(id, &leadRecord{
		posterID:     uuid.New(),
		title:        "Leaking tap",
		category:     "Plumbing",
		location:     "Leeds",
		postcode:     "LS1 4AP",
		price:        pricing.NewMoney(price),
		isActive:     true,
		maxPurchases: maxPurchases,
	})
	return id
}

func (f *purchaseFixture) addBuyer(tier pricing.Tier, credits int64) uuid.UUID {
	id := uuid.New()
	f.users.put(id, &userRecord{
		name:    "Bob Builder",
		tier:    tier,
		credits: pricing.NewMoney(credits),
		phone:   "07700900123",
	})
	return id
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("debits credits and records payment", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		leadID := f.addLead(500, nil)
		buyer := f.addBuyer(pricing.TierNone, 1000)

		result, err := f.cmd.Purchase(ctx, leadID, buyer)
		require.NoError(t, err)

		assert.Equal(t, int64(500), result.PricePence)
		assert.Equal(t, int64(500), result.RemainingCreditsPence)
		assert.Equal(t, int64(500), f.users.balance(buyer))
		assert.Equal(t, 1, f.payments.count())
		assert.Equal(t, 1, f.dispatcher.receiptCount())
		assert.Equal(t, []uuid.UUID{buyer}, f.leads.record(leadID).purchasers)
	})

	t.Run("unknown lead", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		buyer := f.addBuyer(pricing.TierNone, 1000)

		_, err := f.cmd.Purchase(ctx, uuid.New(), buyer)
		assert.ErrorIs(t, err, commands.ErrLeadNotFound)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		leadID := f.addLead(500, nil)

		_, err := f.cmd.Purchase(ctx, leadID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("second purchase by same buyer rejected", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		leadID := f.addLead(500, nil)
		buyer := f.addBuyer(pricing.TierNone, 2000)

		_, err := f.cmd.Purchase(ctx, leadID, buyer)
		require.NoError(t, err)

		_, err = f.cmd.Purchase(ctx, leadID, buyer)
		assert.ErrorIs(t, err, commands.ErrAlreadyPurchased)
		assert.Equal(t, int64(1500), f.users.balance(buyer), "no second debit")
	})

	t.Run("insufficient credits leaves state untouched", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		leadID := f.addLead(999, nil)
		buyer := f.addBuyer(pricing.TierNone, 500)

		_, err := f.cmd.Purchase(ctx, leadID, buyer)
		assert.ErrorIs(t, err, commands.ErrInsufficientCredits)
		assert.Equal(t, int64(500), f.users.balance(buyer))
		assert.Zero(t, f.payments.count())
		assert.Empty(t, f.leads.record(leadID).purchasers)
		assert.Zero(t, f.dispatcher.receiptCount())
	})

	t.Run("unlimited tier buys for free", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(10, 25))
		leadID := f.addLead(999, nil)
		buyer := f.addBuyer(pricing.TierUnlimited, 0)

		result, err := f.cmd.Purchase(ctx, leadID, buyer)
		require.NoError(t, err)
		assert.Zero(t, result.PricePence)
		assert.Zero(t, f.users.balance(buyer))
		// The free purchase still gets a ledger row
		assert.Equal(t, 1, f.payments.count())
	})

	t.Run("premium discount applied", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(10, 25))
		leadID := f.addLead(1000, nil)
		buyer := f.addBuyer(pricing.TierPremium, 1000)

		result, err := f.cmd.Purchase(ctx, leadID, buyer)
		require.NoError(t, err)
		assert.Equal(t, int64(750), result.PricePence)
		assert.Equal(t, int64(250), f.users.balance(buyer))
	})

	t.Run("concurrent buyers never exceed the cap", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		limit := 2
		leadID := f.addLead(100, &limit)

		buyers := []uuid.UUID{
			f.addBuyer(pricing.TierNone, 1000),
			f.addBuyer(pricing.TierNone, 1000),
			f.addBuyer(pricing.TierNone, 1000),
		}

		errs := make([]error, len(buyers))
		var wg sync.WaitGroup
		for i, buyer := range buyers {
			wg.Add(1)
			go func(i int, buyer uuid.UUID) {
				defer wg.Done()
				_, errs[i] = f.cmd.Purchase(ctx, leadID, buyer)
			}(i, buyer)
		}
		wg.Wait()

		succeeded := 0
		capped := 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, commands.ErrPurchaseCapReached):
				capped++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 2, succeeded)
		assert.Equal(t, 1, capped)
		assert.Len(t, f.leads.record(leadID).purchasers, 2)
	})
}

func TestConfirmExternalCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("records purchase without touching credits", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		leadID := f.addLead(500, nil)
		buyer := f.addBuyer(pricing.TierNone, 100)

		result, err := f.cmd.ConfirmExternalCharge(ctx, leadID, buyer, "ch_12345")
		require.NoError(t, err)

		assert.Equal(t, int64(500), result.PricePence)
		assert.Equal(t, int64(100), f.users.balance(buyer), "card charge never debits credits")
		assert.Equal(t, 1, f.payments.count())
		assert.Equal(t, []uuid.UUID{buyer}, f.leads.record(leadID).purchasers)
	})

	t.Run("duplicate and cap rules still apply", func(t *testing.T) {
		f := newPurchaseFixture(pricing.NewSchedule(0, 0))
		limit := 1
		leadID := f.addLead(500, &limit)
		buyer := f.addBuyer(pricing.TierNone, 0)
		other := f.addBuyer(pricing.TierNone, 0)

		_, err := f.cmd.ConfirmExternalCharge(ctx, leadID, buyer, "ch_1")
		require.NoError(t, err)

		_, err = f.cmd.ConfirmExternalCharge(ctx, leadID, buyer, "ch_2")
		assert.ErrorIs(t, err, commands.ErrAlreadyPurchased)

		_, err = f.cmd.ConfirmExternalCharge(ctx, leadID, other, "ch_3")
		assert.ErrorIs(t, err, commands.ErrPurchaseCapReached)
	})
}
