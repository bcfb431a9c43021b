package lead

import (
	"regexp"
	"strings"
	"time"

	"leadmarket/internal/domain/pricing"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Contact is the homeowner's contact snapshot taken at posting time. It is the
// thing a purchase unlocks, so it is immutable on the lead even if the poster
// later edits their profile.
type Contact struct {
	name  string
	email string
	phone string
}

func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Contact{}, ErrInvalidContact
	}
	if email != "" && !emailRegex.MatchString(email) {
		return Contact{}, ErrInvalidContact
	}
	if email == "" && phone == "" {
		return Contact{}, ErrInvalidContact
	}
	return Contact{name: name, email: email, phone: phone}, nil
}

func ReconstructContact(name, email, phone string) Contact {
	return Contact{name: name, email: email, phone: phone}
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }

// Interest is an embedded value on the lead, not an aggregate of its own.
type Interest struct {
	id               uuid.UUID
	tradespersonID   uuid.UUID
	tradespersonName string
	message          string
	price            pricing.Money
	status           InterestStatus
	createdAt        time.Time
}

func NewInterest(tradespersonID uuid.UUID, tradespersonName, message string, price pricing.Money, now time.Time) Interest {
	return Interest{
		id:               uuid.New(),
		tradespersonID:   tradespersonID,
		tradespersonName: tradespersonName,
		message:          strings.TrimSpace(message),
		price:            price,
		status:           InterestPending,
		createdAt:        now,
	}
}

func ReconstructInterest(
	id, tradespersonID uuid.UUID,
	tradespersonName, message string,
	price pricing.Money,
	status InterestStatus,
	createdAt time.Time,
) Interest {
	return Interest{
		id:               id,
		tradespersonID:   tradespersonID,
		tradespersonName: tradespersonName,
		message:          message,
		price:            price,
		status:           status,
		createdAt:        createdAt,
	}
}

func (i Interest) ID() uuid.UUID            { return i.id }
func (i Interest) TradespersonID() uuid.UUID { return i.tradespersonID }
func (i Interest) TradespersonName() string  { return i.tradespersonName }
func (i Interest) Message() string           { return i.message }
func (i Interest) Price() pricing.Money      { return i.price }
func (i Interest) Status() InterestStatus    { return i.status }
func (i Interest) CreatedAt() time.Time      { return i.createdAt }
