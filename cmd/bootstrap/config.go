package bootstrap

import (
	"leadmarket/internal/domain/pricing"
	"leadmarket/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.MarketConfig {
			return cfg.Market
		},
		func(cfg config.Config) pricing.Schedule {
			return pricing.NewSchedule(cfg.Market.BasicDiscountPct, cfg.Market.PremiumDiscountPct)
		},
	),
)
