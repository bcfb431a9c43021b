//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/pkg/clock"
	"leadmarket/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interestFixture struct {
	cmd   *commands.InterestCommands
	leads *fakeLeadRepo
	users *fakeUserRepo
	clock *clock.MockClock
}

func newInterestFixture() *interestFixture {
	leads := newFakeLeadRepo()
	users := newFakeUserRepo()
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return &interestFixture{
		cmd:   commands.NewInterestCommands(&fakeTxRunner{}, leads, users, clk),
		leads: leads,
		users: users,
		clock: clk,
	}
}

func (f *interestFixture) addLead(posterID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.leads.put(id, &leadRecord{
		posterID: posterID,
		title:    "Leaking tap",
		category: "Plumbing",
		location: "Leeds",
		price:    pricing.NewMoney(500),
		isActive: true,
	})
	return id
}

func (f *interestFixture) addTradesperson() uuid.UUID {
	id := uuid.New()
	f.users.put(id, &userRecord{name: "Bob Builder", tier: pricing.TierNone, credits: pricing.NewMoney(0)})
	return id
}

func TestExpressInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a pending interest with name snapshot", func(t *testing.T) {
		f := newInterestFixture()
		leadID := f.addLead(uuid.New())
		tp := f.addTradesperson()

		id, err := f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{
			LeadID:         leadID,
			TradespersonID: tp,
			Message:        "Can start Monday",
			PricePence:     8000,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		interests := f.leads.record(leadID).interests
		require.Len(t, interests, 1)
		assert.Equal(t, "Bob Builder", interests[0].TradespersonName())
		assert.Equal(t, lead.InterestPending, interests[0].Status())
		assert.Equal(t, f.clock.Now(), interests[0].CreatedAt())
	})

	t.Run("duplicate interest rejected", func(t *testing.T) {
		f := newInterestFixture()
		leadID := f.addLead(uuid.New())
		tp := f.addTradesperson()

		_, err := f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{LeadID: leadID, TradespersonID: tp})
		require.NoError(t, err)

		_, err = f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{LeadID: leadID, TradespersonID: tp})
		assert.ErrorIs(t, err, commands.ErrDuplicateInterest)
	})

	t.Run("inactive lead rejected", func(t *testing.T) {
		f := newInterestFixture()
		leadID := f.addLead(uuid.New())
		f.leads.record(leadID).isActive = false
		tp := f.addTradesperson()

		_, err := f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{LeadID: leadID, TradespersonID: tp})
		assert.ErrorIs(t, err, commands.ErrLeadInactive)
	})

	t.Run("negative quote rejected", func(t *testing.T) {
		f := newInterestFixture()
		_, err := f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{
			LeadID:         uuid.New(),
			TradespersonID: uuid.New(),
			PricePence:     -1,
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestUpdateInterestStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*interestFixture, uuid.UUID, uuid.UUID, uuid.UUID) {
		t.Helper()
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)
		tp := f.addTradesperson()
		interestID, err := f.cmd.ExpressInterest(ctx, commands.ExpressInterestInput{LeadID: leadID, TradespersonID: tp})
		require.NoError(t, err)
		return f, leadID, poster, interestID
	}

	t.Run("poster accepts a pending interest", func(t *testing.T) {
		f, leadID, poster, interestID := setup(t)

		err := f.cmd.UpdateInterestStatus(ctx, leadID, interestID, poster, "accepted")
		require.NoError(t, err)
		assert.Equal(t, lead.InterestAccepted, f.leads.record(leadID).interests[0].Status())
	})

	t.Run("only the poster may decide", func(t *testing.T) {
		f, leadID, _, interestID := setup(t)

		err := f.cmd.UpdateInterestStatus(ctx, leadID, interestID, uuid.New(), "accepted")
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("finalized interest is immutable", func(t *testing.T) {
		f, leadID, poster, interestID := setup(t)

		require.NoError(t, f.cmd.UpdateInterestStatus(ctx, leadID, interestID, poster, "rejected"))
		err := f.cmd.UpdateInterestStatus(ctx, leadID, interestID, poster, "accepted")
		assert.ErrorIs(t, err, commands.ErrInterestFinalized)
	})

	t.Run("status must be accepted or rejected", func(t *testing.T) {
		f, leadID, poster, interestID := setup(t)

		err := f.cmd.UpdateInterestStatus(ctx, leadID, interestID, poster, "maybe")
		assert.ErrorIs(t, err, commands.ErrInvalidInterestStatus)
	})
}

func TestHireAndCancelCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("hire closes the lead", func(t *testing.T) {
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)
		tp := f.addTradesperson()

		require.NoError(t, f.cmd.Hire(ctx, leadID, tp, poster))

		rec := f.leads.record(leadID)
		require.NotNil(t, rec.hiredID)
		assert.Equal(t, tp, *rec.hiredID)
		assert.False(t, rec.isActive)
	})

	t.Run("hire is terminal", func(t *testing.T) {
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)
		tp := f.addTradesperson()

		require.NoError(t, f.cmd.Hire(ctx, leadID, tp, poster))
		err := f.cmd.Hire(ctx, leadID, f.addTradesperson(), poster)
		assert.ErrorIs(t, err, commands.ErrAlreadyHired)
	})

	t.Run("only the poster may hire", func(t *testing.T) {
		f := newInterestFixture()
		leadID := f.addLead(uuid.New())
		tp := f.addTradesperson()

		err := f.cmd.Hire(ctx, leadID, tp, uuid.New())
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("cancel withdraws an unfilled lead", func(t *testing.T) {
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)

		require.NoError(t, f.cmd.Cancel(ctx, leadID, poster))

		rec := f.leads.record(leadID)
		require.NotNil(t, rec.cancelledAt)
		assert.Equal(t, f.clock.Now(), *rec.cancelledAt)
		assert.False(t, rec.isActive)
	})

	t.Run("cancel after hire is illegal", func(t *testing.T) {
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)
		tp := f.addTradesperson()

		require.NoError(t, f.cmd.Hire(ctx, leadID, tp, poster))
		err := f.cmd.Cancel(ctx, leadID, poster)
		assert.ErrorIs(t, err, commands.ErrCancelHired)
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		f := newInterestFixture()
		poster := uuid.New()
		leadID := f.addLead(poster)

		require.NoError(t, f.cmd.Cancel(ctx, leadID, poster))
		err := f.cmd.Cancel(ctx, leadID, poster)
		assert.ErrorIs(t, err, commands.ErrAlreadyCancelled)
	})
}
