package components

import (
	"leadmarket/internal/handler"
	"leadmarket/internal/handler/api"
	"leadmarket/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewLeadHandler,
		api.NewPurchaseHandler,
		api.NewInterestHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
