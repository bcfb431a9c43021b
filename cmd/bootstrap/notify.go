package bootstrap

import (
	"context"

	"leadmarket/internal/infra/notify"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		func(cfg config.Config) notify.SMSSender {
			return notify.NewSMSSender(cfg.Notify)
		},
		func(cfg config.Config) notify.EmailSender {
			return notify.NewEmailSender(cfg.Notify)
		},
		fx.Annotate(
			NewDispatcher,
			fx.As(new(commands.Dispatcher)),
		),
	),
)

func NewDispatcher(lc fx.Lifecycle, cfg config.Config, sms notify.SMSSender, email notify.EmailSender) *notify.Dispatcher {
	d := notify.NewDispatcher(cfg.Notify, sms, email)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			d.Stop()
			return nil
		},
	})

	return d
}
