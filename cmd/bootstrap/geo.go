package bootstrap

import (
	"leadmarket/internal/infra/geo"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/usecase/commands"

	"go.uber.org/fx"
)

var GeoModule = fx.Module("geo",
	fx.Provide(
		func(cfg config.Config) geo.Provider {
			return geo.NewPostcodesIOClient(cfg.Geo)
		},
		fx.Annotate(
			func(provider geo.Provider, cfg config.Config) *geo.Resolver {
				return geo.NewResolver(provider, cfg.Geo)
			},
			fx.As(new(commands.GeoResolver)),
		),
	),
)
