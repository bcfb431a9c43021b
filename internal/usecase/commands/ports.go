package commands

import (
	"context"
	"time"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/domain/tradesperson"
	"leadmarket/internal/infra/repository"
	"leadmarket/internal/pkg/errs"
	"leadmarket/internal/usecase/queries"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// Use-case level errors. Handlers map these to HTTP statuses; nothing below
// the handler layer knows about HTTP.
var (
	ErrLeadNotFound              = errs.New("lead not found")
	ErrUserNotFound              = errs.New("user not found")
	ErrAlreadyPurchased          = errs.New("lead already purchased")
	ErrPurchaseCapReached        = errs.New("purchase cap reached")
	ErrInsufficientCredits       = errs.New("insufficient credits")
	ErrDuplicateInterest         = errs.New("interest already expressed")
	ErrInterestNotFound          = errs.New("interest not found")
	ErrInterestFinalized         = errs.New("interest already finalized")
	ErrInvalidInterestStatus     = errs.New("invalid interest status")
	ErrForbidden                 = errs.New("operation not allowed for this user")
	ErrLeadInactive              = errs.New("lead is not active")
	ErrAlreadyHired              = errs.New("lead already has a hire")
	ErrAlreadyCancelled          = errs.New("lead already cancelled")
	ErrCancelHired               = errs.New("cannot cancel a lead with a hire")
	ErrDomainValidation          = errs.New("domain validation failed")
	ErrDatabaseOperationFailed   = errs.New("database operation failed")
)

// Consumer-side ports. The infra layer satisfies these; commands never import
// concrete repositories directly except for shared row types.

type LeadRepository interface {
	Create(ctx context.Context, db shared.DBTX, l *lead.Lead) (uuid.UUID, error)
	FindForUpdate(ctx context.Context, db shared.DBTX, id uuid.UUID) (*lead.Lead, error)
	InsertPurchase(ctx context.Context, db shared.DBTX, leadID, buyerID uuid.UUID, price pricing.Money, chargeRef *string) error
	InsertInterest(ctx context.Context, db shared.DBTX, leadID uuid.UUID, i lead.Interest) error
	UpdateInterestStatus(ctx context.Context, db shared.DBTX, leadID, interestID uuid.UUID, status lead.InterestStatus) error
	MarkHired(ctx context.Context, db shared.DBTX, leadID, tradespersonID uuid.UUID) error
	MarkCancelled(ctx context.Context, db shared.DBTX, leadID uuid.UUID, at time.Time) error
}

type TradespersonRepository interface {
	FindTradespersonForUpdate(ctx context.Context, db shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error)
	FindTradesperson(ctx context.Context, db shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error)
	DebitCredits(ctx context.Context, db shared.DBTX, id uuid.UUID, amount pricing.Money) error
}

type PaymentRepository interface {
	Insert(ctx context.Context, db shared.DBTX, p repository.PaymentRow) (uuid.UUID, error)
}

type CandidateReader interface {
	ActiveCandidates(ctx context.Context) ([]queries.CandidateView, error)
}

type GeoResolver interface {
	Resolve(ctx context.Context, postcode string) matching.Coordinates
}

type Dispatcher interface {
	LeadAlert(phone, email, leadTitle, location string, distanceMiles float64)
	PurchaseReceipt(phone, leadTitle string, pricePence int64)
}
