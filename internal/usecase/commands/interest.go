package commands

import (
	"context"
	"errors"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/pkg/clock"
	"leadmarket/internal/pkg/errs"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExpressInterestInput struct {
	LeadID         uuid.UUID
	TradespersonID uuid.UUID
	Message        string
	PricePence     int64
}

type InterestCommands struct {
	tx    shared.TxRunner
	leads LeadRepository
	users TradespersonRepository
	clock clock.Clock
}

func NewInterestCommands(tx shared.TxRunner, leads LeadRepository, users TradespersonRepository, clk clock.Clock) *InterestCommands {
	return &InterestCommands{tx: tx, leads: leads, users: users, clock: clk}
}

// ExpressInterest appends a pending interest with a snapshot of the
// tradesperson's name and quoted price. One interest per tradesperson per
// lead, ever.
func (c *InterestCommands) ExpressInterest(ctx context.Context, in ExpressInterestInput) (uuid.UUID, error) {
	quote, err := pricing.NewMoneyFromPence(in.PricePence)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var interestID uuid.UUID
	err = c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, in.LeadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}
		if !l.IsActive() {
			return ErrLeadInactive
		}

		tp, err := c.users.FindTradesperson(ctx, db, in.TradespersonID)
		if err != nil {
			return mapUserLookupErr(err)
		}

		i := lead.NewInterest(tp.ID(), tp.Name(), in.Message, quote, c.clock.Now())
		if err := l.ExpressInterest(i); err != nil {
			return errs.Mark(err, ErrDuplicateInterest)
		}

		if err := c.leads.InsertInterest(ctx, db, in.LeadID, i); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		interestID = i.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return interestID, nil
}

// UpdateInterestStatus moves a pending interest to accepted or rejected.
// Poster only. Finalized interests are immutable.
func (c *InterestCommands) UpdateInterestStatus(ctx context.Context, leadID, interestID, actorID uuid.UUID, status string) error {
	st, err := lead.NewInterestStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidInterestStatus)
	}

	return c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, leadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}
		if l.PosterID() != actorID {
			return ErrForbidden
		}

		if err := l.UpdateInterestStatus(interestID, st); err != nil {
			return mapInterestDomainErr(err)
		}

		if err := c.leads.UpdateInterestStatus(ctx, db, leadID, interestID, st); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// Hire is the poster's terminal selection of a tradesperson. It deactivates
// the lead; there is no un-hire and no cancel afterwards.
func (c *InterestCommands) Hire(ctx context.Context, leadID, tradespersonID, actorID uuid.UUID) error {
	return c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, leadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}
		if l.PosterID() != actorID {
			return ErrForbidden
		}

		if _, err := c.users.FindTradesperson(ctx, db, tradespersonID); err != nil {
			return mapUserLookupErr(err)
		}

		if err := l.Hire(tradespersonID); err != nil {
			return errs.Mark(err, ErrAlreadyHired)
		}

		if err := c.leads.MarkHired(ctx, db, leadID, tradespersonID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// Cancel withdraws an unfilled lead. A hired lead is complete and cannot be
// cancelled.
func (c *InterestCommands) Cancel(ctx context.Context, leadID, actorID uuid.UUID) error {
	return c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, leadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}
		if l.PosterID() != actorID {
			return ErrForbidden
		}

		now := c.clock.Now()
		if err := l.Cancel(now); err != nil {
			return mapCancelDomainErr(err)
		}

		if err := c.leads.MarkCancelled(ctx, db, leadID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func mapInterestDomainErr(err error) error {
	switch {
	case errors.Is(err, lead.ErrInterestNotFound):
		return errs.Mark(err, ErrInterestNotFound)
	case errors.Is(err, lead.ErrInterestFinalized):
		return errs.Mark(err, ErrInterestFinalized)
	case errors.Is(err, lead.ErrInvalidInterestStatus):
		return errs.Mark(err, ErrInvalidInterestStatus)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

func mapCancelDomainErr(err error) error {
	switch {
	case errors.Is(err, lead.ErrCancelHiredLead):
		return errs.Mark(err, ErrCancelHired)
	case errors.Is(err, lead.ErrAlreadyCancelled):
		return errs.Mark(err, ErrAlreadyCancelled)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
