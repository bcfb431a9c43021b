package pricing

import "errors"

var ErrInvalidTier = errors.New("invalid membership tier")

type Tier string

const (
	TierNone      Tier = "none"
	TierBasic     Tier = "basic"
	TierPremium   Tier = "premium"
	TierUnlimited Tier = "unlimited"
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierNone, TierBasic, TierPremium, TierUnlimited:
		return true
	default:
		return false
	}
}

func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", ErrInvalidTier
	}
	return t, nil
}
