package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"leadmarket/internal/domain/account"
	"leadmarket/internal/handler/api"
	"leadmarket/internal/handler/middleware"
	"leadmarket/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	leadHandler *api.LeadHandler,
	purchaseHandler *api.PurchaseHandler,
	interestHandler *api.InterestHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, leadHandler, purchaseHandler, interestHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	leadHandler *api.LeadHandler,
	purchaseHandler *api.PurchaseHandler,
	interestHandler *api.InterestHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		leads := apiGroup.Group("/leads")
		leads.Use(authMiddleware.RequireAuth())
		{
			homeownerOnly := authMiddleware.RequireRole(account.RoleHomeowner)
			tradespersonOnly := authMiddleware.RequireRole(account.RoleTradesperson)

			addRoutes(leads, []route{
				{Method: http.MethodPost, Path: "", Handler: leadHandler.CreateLead, Mw: []gin.HandlerFunc{homeownerOnly}},
				{Method: http.MethodGet, Path: "/feed", Handler: leadHandler.Feed, Mw: []gin.HandlerFunc{tradespersonOnly}},
				{Method: http.MethodGet, Path: "/mine", Handler: leadHandler.MyLeads, Mw: []gin.HandlerFunc{homeownerOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: leadHandler.GetLead},
				{Method: http.MethodPost, Path: "/:id/purchase", Handler: purchaseHandler.Purchase, Mw: []gin.HandlerFunc{tradespersonOnly}},
				{Method: http.MethodPost, Path: "/:id/interests", Handler: interestHandler.ExpressInterest, Mw: []gin.HandlerFunc{tradespersonOnly}},
				{Method: http.MethodPatch, Path: "/:id/interests/:interestId", Handler: interestHandler.UpdateInterestStatus, Mw: []gin.HandlerFunc{homeownerOnly}},
				{Method: http.MethodPost, Path: "/:id/hire", Handler: interestHandler.Hire, Mw: []gin.HandlerFunc{homeownerOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: interestHandler.Cancel, Mw: []gin.HandlerFunc{homeownerOnly}},
			})
		}

		credits := apiGroup.Group("/credits")
		credits.Use(authMiddleware.RequireAuth())
		{
			addRoutes(credits, []route{
				{Method: http.MethodPost, Path: "/confirm", Handler: purchaseHandler.ConfirmCharge, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(account.RoleTradesperson)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
