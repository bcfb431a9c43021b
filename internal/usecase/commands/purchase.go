package commands

import (
	"context"
	"errors"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/domain/tradesperson"
	"leadmarket/internal/infra"
	"leadmarket/internal/infra/repository"
	"leadmarket/internal/pkg/clock"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/pkg/errs"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type PurchaseResult struct {
	LeadID                uuid.UUID
	PricePence            int64
	RemainingCreditsPence int64
}

type PurchaseCommands struct {
	tx         shared.TxRunner
	leads      LeadRepository
	users      TradespersonRepository
	payments   PaymentRepository
	dispatcher Dispatcher
	schedule   pricing.Schedule
	market     config.MarketConfig
	clock      clock.Clock
}

func NewPurchaseCommands(
	tx shared.TxRunner,
	leads LeadRepository,
	users TradespersonRepository,
	payments PaymentRepository,
	dispatcher Dispatcher,
	schedule pricing.Schedule,
	market config.MarketConfig,
	clk clock.Clock,
) *PurchaseCommands {
	return &PurchaseCommands{
		tx:         tx,
		leads:      leads,
		users:      users,
		payments:   payments,
		dispatcher: dispatcher,
		schedule:   schedule,
		market:     market,
		clock:      clk,
	}
}

// Purchase debits the buyer's credit balance and records the purchase in one
// transaction. The lead row lock taken by FindForUpdate serializes concurrent
// buyers of the same lead, so the cap check and the insert are atomic.
//
// Rejections are checked in a fixed order: lead missing, duplicate buyer, cap
// reached, buyer missing, balance short.
func (c *PurchaseCommands) Purchase(ctx context.Context, leadID, buyerID uuid.UUID) (PurchaseResult, error) {
	var (
		result  PurchaseResult
		receipt receiptInfo
	)

	err := c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, leadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}

		if err := l.CanPurchase(buyerID, c.market.DefaultMaxPurchases); err != nil {
			return mapPurchaseDomainErr(err)
		}

		buyer, err := c.users.FindTradespersonForUpdate(ctx, db, buyerID)
		if err != nil {
			return mapUserLookupErr(err)
		}

		price := c.schedule.EffectivePrice(l.Price(), buyer.Tier())

		if !price.IsZero() {
			if err := buyer.Debit(price); err != nil {
				return errs.Mark(err, ErrInsufficientCredits)
			}
			if err := c.users.DebitCredits(ctx, db, buyerID, price); err != nil {
				if infra.IsKind(err, infra.KindCheckViolated) {
					return errs.Mark(err, ErrInsufficientCredits)
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := c.recordPurchase(ctx, db, l, buyer, price, nil, "credit_debit"); err != nil {
			return err
		}

		result = PurchaseResult{
			LeadID:                leadID,
			PricePence:            price.Pence(),
			RemainingCreditsPence: buyer.Credits().Pence(),
		}
		receipt = receiptInfo{phone: buyer.Phone(), title: l.Title(), pricePence: price.Pence()}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	c.sendReceipt(receipt)
	return result, nil
}

// ConfirmExternalCharge records a purchase already paid by card through the
// payment provider. No credit debit; the charge reference ties the ledger row
// to the provider's transaction.
func (c *PurchaseCommands) ConfirmExternalCharge(ctx context.Context, leadID, buyerID uuid.UUID, chargeRef string) (PurchaseResult, error) {
	var (
		result  PurchaseResult
		receipt receiptInfo
	)

	err := c.tx.Within(ctx, func(ctx context.Context, db shared.DBTX) error {
		l, err := c.leads.FindForUpdate(ctx, db, leadID)
		if err != nil {
			return mapLeadLookupErr(err)
		}

		if err := l.CanPurchase(buyerID, c.market.DefaultMaxPurchases); err != nil {
			return mapPurchaseDomainErr(err)
		}

		buyer, err := c.users.FindTradespersonForUpdate(ctx, db, buyerID)
		if err != nil {
			return mapUserLookupErr(err)
		}

		price := c.schedule.EffectivePrice(l.Price(), buyer.Tier())

		ref := chargeRef
		if err := c.recordPurchase(ctx, db, l, buyer, price, &ref, "card_charge"); err != nil {
			return err
		}

		result = PurchaseResult{
			LeadID:                leadID,
			PricePence:            price.Pence(),
			RemainingCreditsPence: buyer.Credits().Pence(),
		}
		receipt = receiptInfo{phone: buyer.Phone(), title: l.Title(), pricePence: price.Pence()}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	c.sendReceipt(receipt)
	return result, nil
}

func (c *PurchaseCommands) recordPurchase(
	ctx context.Context,
	db shared.DBTX,
	l *lead.Lead,
	buyer *tradesperson.Tradesperson,
	price pricing.Money,
	chargeRef *string,
	kind string,
) error {
	if err := c.leads.InsertPurchase(ctx, db, l.ID(), buyer.ID(), price, chargeRef); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, ErrAlreadyPurchased)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	leadID := l.ID()
	_, err := c.payments.Insert(ctx, db, repository.PaymentRow{
		TradespersonID: buyer.ID(),
		LeadID:         &leadID,
		Amount:         price,
		Kind:           kind,
		Status:         "completed",
		Description:    "lead purchase: " + l.Title(),
		ChargeRef:      chargeRef,
		OccurredAt:     c.clock.Now(),
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

type receiptInfo struct {
	phone      string
	title      string
	pricePence int64
}

// sendReceipt enqueues the SMS receipt after the transaction has committed.
// Enqueueing never blocks; delivery is best effort on a worker goroutine.
func (c *PurchaseCommands) sendReceipt(r receiptInfo) {
	if r.phone == "" {
		return
	}
	c.dispatcher.PurchaseReceipt(r.phone, r.title, r.pricePence)
}

func mapLeadLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrLeadNotFound)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func mapUserLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrUserNotFound)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func mapPurchaseDomainErr(err error) error {
	switch {
	case errors.Is(err, lead.ErrAlreadyPurchased):
		return errs.Mark(err, ErrAlreadyPurchased)
	case errors.Is(err, lead.ErrPurchaseCapReached):
		return errs.Mark(err, ErrPurchaseCapReached)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
