package components

import (
	"leadmarket/internal/infra/readstore"
	repo_impl "leadmarket/internal/infra/repository"
	"leadmarket/internal/infra/uow"
	"leadmarket/internal/usecase/commands"
	"leadmarket/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPgTxRunner,
		// Write side
		fx.Annotate(
			repo_impl.NewLeadRepository,
			fx.As(new(commands.LeadRepository)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.TradespersonRepository)),
		),
		fx.Annotate(
			repo_impl.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewLeadReadStore,
			fx.As(new(queries.LeadReader)),
		),
		fx.Annotate(
			readstore.NewTradespersonReadStore,
			fx.As(new(queries.TradespersonReader)),
			fx.As(new(commands.CandidateReader)),
		),
	),
)
