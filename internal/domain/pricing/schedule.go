package pricing

// Schedule maps membership tiers to discounts. The mid-tier percentages are
// product-owned and injected from configuration; the only hard rule is that
// the unlimited tier buys leads for free.
//
// EffectivePrice is the one place lead prices are computed. Every call path
// (purchase, feed preview, card-charge shortfall) must go through it.
type Schedule struct {
	BasicPct   float64
	PremiumPct float64
}

func NewSchedule(basicPct, premiumPct float64) Schedule {
	return Schedule{
		BasicPct:   clampPct(basicPct),
		PremiumPct: clampPct(premiumPct),
	}
}

func (s Schedule) EffectivePrice(listed Money, tier Tier) Money {
	switch tier {
	case TierUnlimited:
		return NewMoney(0)
	case TierPremium:
		return applyPct(listed, s.PremiumPct)
	case TierBasic:
		return applyPct(listed, s.BasicPct)
	default:
		return listed
	}
}

func applyPct(m Money, pct float64) Money {
	if pct <= 0 {
		return m
	}
	discounted := int64(float64(m.Pence()) * (100.0 - pct) / 100.0)
	if discounted < 0 {
		discounted = 0
	}
	return NewMoney(discounted)
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
