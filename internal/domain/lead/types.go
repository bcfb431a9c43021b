package lead

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) String() string {
	return string(u)
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

func NewUrgency(s string) (Urgency, error) {
	u := Urgency(s)
	if !u.IsValid() {
		return "", ErrInvalidUrgency
	}
	return u, nil
}

type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestAccepted InterestStatus = "accepted"
	InterestRejected InterestStatus = "rejected"
)

func (s InterestStatus) String() string {
	return string(s)
}

func (s InterestStatus) IsValid() bool {
	switch s {
	case InterestPending, InterestAccepted, InterestRejected:
		return true
	default:
		return false
	}
}

func NewInterestStatus(s string) (InterestStatus, error) {
	st := InterestStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidInterestStatus
	}
	return st, nil
}
