package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bookhub/internal/domain/user"
	"bookhub/internal/handler/api"
	"bookhub/internal/handler/middleware"
	"bookhub/internal/pkg/config"
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
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	loanHandler *api.LoanHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookHandler, loanHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	loanHandler *api.LoanHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	librarian := authMiddleware.RequireRoleAtLeast(user.RoleLibrarian)
	admin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		books := apiGroup.Group("/books")
		books.Use(authMiddleware.RequireAuth())
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: bookHandler.ListBooks},
				{Method: http.MethodGet, Path: "/:id", Handler: bookHandler.GetBook},
				{Method: http.MethodPost, Path: "", Handler: bookHandler.CreateBook, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPut, Path: "/:id/copies", Handler: bookHandler.ResizeBook, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPut, Path: "/:id/status", Handler: bookHandler.SetBookStatus, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookHandler.DeleteBook, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodGet, Path: "/:id/loans", Handler: loanHandler.GetBookLoans, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: reservationHandler.GetBookQueue},
			})
		}

		loans := apiGroup.Group("/loans")
		loans.Use(authMiddleware.RequireAuth())
		{
			addRoutes(loans, []route{
				{Method: http.MethodPost, Path: "", Handler: loanHandler.CreateLoan, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/request", Handler: loanHandler.RequestLoan},
				{Method: http.MethodGet, Path: "/me", Handler: loanHandler.GetMyLoans},
				{Method: http.MethodGet, Path: "/overdue", Handler: loanHandler.GetOverdueLoans, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodGet, Path: "/:id", Handler: loanHandler.GetLoan},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: loanHandler.ApproveLoan, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: loanHandler.RejectLoan, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/renew", Handler: loanHandler.RenewLoan},
				{Method: http.MethodPost, Path: "/:id/return", Handler: loanHandler.ReturnLoan, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/lost", Handler: loanHandler.MarkLoanLost, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodDelete, Path: "/:id", Handler: loanHandler.DeleteLoan, Mw: []gin.HandlerFunc{admin}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/request", Handler: reservationHandler.RequestReservation},
				{Method: http.MethodGet, Path: "/me", Handler: reservationHandler.GetMyReservations},
				{Method: http.MethodGet, Path: "/expiring", Handler: reservationHandler.GetExpiringReservations, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/expire-sweep", Handler: reservationHandler.ExpireSweep, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodGet, Path: "/:id/position", Handler: reservationHandler.GetQueuePosition},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: reservationHandler.ApproveReservation, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/ready", Handler: reservationHandler.MarkReservationReady, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/fulfill", Handler: reservationHandler.FulfillReservation, Mw: []gin.HandlerFunc{librarian}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.DeleteReservation, Mw: []gin.HandlerFunc{admin}},
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
