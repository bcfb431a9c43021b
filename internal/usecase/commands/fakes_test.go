//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"leadmarket/internal/domain/lead"
	"leadmarket/internal/domain/matching"
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/domain/tradesperson"
	"leadmarket/internal/infra"
	"leadmarket/internal/infra/repository"
	"leadmarket/internal/usecase/queries"
	"leadmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeTxRunner serializes transaction bodies with a mutex, standing in for the
// row lock the real runner gets from SELECT ... FOR UPDATE.
type fakeTxRunner struct {
	mu sync.Mutex
}

func (r *fakeTxRunner) Within(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx, nil)
}

type leadRecord struct {
	posterID     uuid.UUID
	title        string
	category     string
	location     string
	postcode     string
	coords       *matching.Coordinates
	price        pricing.Money
	isActive     bool
	maxPurchases *int
	purchasers   []uuid.UUID
	interests    []lead.Interest
	hiredID      *uuid.UUID
	cancelledAt  *time.Time
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[uuid.UUID]*leadRecord
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[uuid.UUID]*leadRecord)}
}

func (f *fakeLeadRepo) put(id uuid.UUID, rec *leadRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[id] = rec
}

func (f *fakeLeadRepo) Create(_ context.Context, _ shared.DBTX, l *lead.Lead) (uuid.UUID, error) {
	f.put(l.ID(), &leadRecord{
		posterID:     l.PosterID(),
		title:        l.Title(),
		category:     l.Category(),
		location:     l.Location(),
		postcode:     l.Postcode(),
		coords:       l.Coords(),
		price:        l.Price(),
		isActive:     l.IsActive(),
		maxPurchases: l.MaxPurchases(),
	})
	return l.ID(), nil
}

func (f *fakeLeadRepo) FindForUpdate(_ context.Context, _ shared.DBTX, id uuid.UUID) (*lead.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.leads[id]
	if !ok {
		return nil, infra.WrapRepoErr("lead not found", nil, infra.KindNotFound)
	}
	contact := lead.ReconstructContact("Jane Smith", "jane@example.com", "07700900123")
	return lead.ReconstructLead(
		id, rec.posterID,
		rec.title, "", rec.category, rec.location, rec.postcode,
		rec.coords, "", lead.UrgencyMedium, contact, rec.price,
		rec.isActive, rec.maxPurchases,
		append([]uuid.UUID(nil), rec.purchasers...),
		append([]lead.Interest(nil), rec.interests...),
		rec.hiredID, rec.cancelledAt,
		time.Now(), time.Now(),
	), nil
}

func (f *fakeLeadRepo) InsertPurchase(_ context.Context, _ shared.DBTX, leadID, buyerID uuid.UUID, _ pricing.Money, _ *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.leads[leadID]
	for _, id := range rec.purchasers {
		if id == buyerID {
			return infra.WrapRepoErr("duplicate purchase", nil, infra.KindDuplicateKey)
		}
	}
	rec.purchasers = append(rec.purchasers, buyerID)
	return nil
}

func (f *fakeLeadRepo) InsertInterest(_ context.Context, _ shared.DBTX, leadID uuid.UUID, i lead.Interest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.leads[leadID]
	rec.interests = append(rec.interests, i)
	return nil
}

func (f *fakeLeadRepo) UpdateInterestStatus(_ context.Context, _ shared.DBTX, leadID, interestID uuid.UUID, status lead.InterestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.leads[leadID]
	for idx, i := range rec.interests {
		if i.ID() == interestID {
			rec.interests[idx] = lead.ReconstructInterest(
				i.ID(), i.TradespersonID(), i.TradespersonName(), i.Message(), i.Price(), status, i.CreatedAt(),
			)
			return nil
		}
	}
	return infra.WrapRepoErr("interest not found", nil, infra.KindNotFound)
}

func (f *fakeLeadRepo) MarkHired(_ context.Context, _ shared.DBTX, leadID, tradespersonID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.leads[leadID]
	id := tradespersonID
	rec.hiredID = &id
	rec.isActive = false
	return nil
}

func (f *fakeLeadRepo) MarkCancelled(_ context.Context, _ shared.DBTX, leadID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.leads[leadID]
	t := at
	rec.cancelledAt = &t
	rec.isActive = false
	return nil
}

func (f *fakeLeadRepo) record(id uuid.UUID) *leadRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leads[id]
}

type userRecord struct {
	name    string
	tier    pricing.Tier
	credits pricing.Money
	phone   string
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userRecord
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userRecord)}
}

func (f *fakeUserRepo) put(id uuid.UUID, rec *userRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = rec
}

func (f *fakeUserRepo) find(id uuid.UUID) (*tradesperson.Tradesperson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("tradesperson not found", nil, infra.KindNotFound)
	}
	return tradesperson.Reconstruct(
		id, rec.name, "active", []string{"Plumber"}, nil, nil,
		rec.tier, rec.credits, rec.phone, "", "Leeds",
	), nil
}

func (f *fakeUserRepo) FindTradespersonForUpdate(_ context.Context, _ shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error) {
	return f.find(id)
}

func (f *fakeUserRepo) FindTradesperson(_ context.Context, _ shared.DBTX, id uuid.UUID) (*tradesperson.Tradesperson, error) {
	return f.find(id)
}

func (f *fakeUserRepo) DebitCredits(_ context.Context, _ shared.DBTX, id uuid.UUID, amount pricing.Money) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.users[id]
	if rec.credits.LessThan(amount) {
		return infra.WrapRepoErr("balance below debit amount", nil, infra.KindCheckViolated)
	}
	rec.credits = rec.credits.Sub(amount)
	return nil
}

func (f *fakeUserRepo) balance(id uuid.UUID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].credits.Pence()
}

type fakePaymentRepo struct {
	mu   sync.Mutex
	rows []repository.PaymentRow
}

func (f *fakePaymentRepo) Insert(_ context.Context, _ shared.DBTX, p repository.PaymentRow) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, p)
	return uuid.New(), nil
}

func (f *fakePaymentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeDispatcher struct {
	mu       sync.Mutex
	alerts   []string
	receipts []string
}

func (f *fakeDispatcher) LeadAlert(phone, _, _, _ string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, phone)
}

func (f *fakeDispatcher) PurchaseReceipt(phone, _ string, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts = append(f.receipts, phone)
}

func (f *fakeDispatcher) receiptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.receipts)
}

func (f *fakeDispatcher) alertedPhones() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.alerts...)
}

type fakeCandidateReader struct {
	candidates []queries.CandidateView
}

func (f *fakeCandidateReader) ActiveCandidates(_ context.Context) ([]queries.CandidateView, error) {
	return f.candidates, nil
}

type fakeGeoResolver struct {
	coords matching.Coordinates
}

func (f *fakeGeoResolver) Resolve(_ context.Context, _ string) matching.Coordinates {
	return f.coords
}
