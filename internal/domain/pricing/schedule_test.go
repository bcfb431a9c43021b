//go:build unit

package pricing_test

import (
	"testing"

	"leadmarket/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	schedule := pricing.NewSchedule(10, 25)
	listed := pricing.NewMoney(1000)

	tests := []struct {
		name string
		tier pricing.Tier
		want int64
	}{
		{"no tier pays listed price", pricing.TierNone, 1000},
		{"basic tier discounted", pricing.TierBasic, 900},
		{"premium tier discounted", pricing.TierPremium, 750},
		{"unlimited tier is always free", pricing.TierUnlimited, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.EffectivePrice(listed, tt.tier).Pence())
		})
	}

	t.Run("zero percentages leave price unchanged", func(t *testing.T) {
		flat := pricing.NewSchedule(0, 0)
		assert.Equal(t, int64(1000), flat.EffectivePrice(listed, pricing.TierBasic).Pence())
		assert.Equal(t, int64(1000), flat.EffectivePrice(listed, pricing.TierPremium).Pence())
		assert.Equal(t, int64(0), flat.EffectivePrice(listed, pricing.TierUnlimited).Pence())
	})

	t.Run("percentages are clamped", func(t *testing.T) {
		wild := pricing.NewSchedule(-50, 300)
		assert.Equal(t, int64(1000), wild.EffectivePrice(listed, pricing.TierBasic).Pence())
		assert.Equal(t, int64(0), wild.EffectivePrice(listed, pricing.TierPremium).Pence())
	})
}

func TestMoney(t *testing.T) {
	t.Run("negative amounts rejected", func(t *testing.T) {
		_, err := pricing.NewMoneyFromPence(-1)
		assert.ErrorIs(t, err, pricing.ErrNegativeMoney)
	})

	t.Run("arithmetic", func(t *testing.T) {
		a := pricing.NewMoney(500)
		b := pricing.NewMoney(301)
		assert.Equal(t, int64(801), a.Add(b).Pence())
		assert.Equal(t, int64(199), a.Sub(b).Pence())
		assert.True(t, b.LessThan(a))
		assert.False(t, a.LessThan(b))
	})

	t.Run("string formats as pounds", func(t *testing.T) {
		m, err := pricing.NewMoneyFromPence(999)
		require.NoError(t, err)
		assert.Equal(t, "9.99", m.String())
	})
}
