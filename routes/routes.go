package routes

import (
	"net/http"
	"time"

	userRepo "pawhub/database/repository/user"
	"pawhub/handlers"
	"pawhub/middleware"
	"pawhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public signup and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)
	}
}

// RegisterAccountRoutes registers the authenticated self-service endpoints:
// profile, pets and support tickets.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.Use(middleware.AccessCheckMiddleware(hb.AdminService))

		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me", hb.UpdateMeHandler)
		api.DELETE("/me", hb.DeleteMeHandler)

		api.POST("/pets", hb.AddPetHandler)
		api.GET("/pets", hb.ListPetsHandler)
		api.GET("/pets/:id", hb.GetPetHandler)
		api.PUT("/pets/:id", hb.UpdatePetHandler)
		api.DELETE("/pets/:id", hb.DeletePetHandler)
		api.GET("/pets/:id/qr", hb.PetQRTagHandler)

		api.POST("/support/tickets", hb.OpenTicketHandler)
		api.GET("/support/tickets", hb.ListMyTicketsHandler)
		api.GET("/support/tickets/:id", hb.GetTicketHandler)
		api.POST("/support/tickets/:id/messages", hb.ReplyTicketHandler)
	}
}

// RegisterMarketplaceRoutes registers the provider directory and the client
// side of the booking flow.
func RegisterMarketplaceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.Use(middleware.AccessCheckMiddleware(hb.AdminService))

		api.GET("/providers", hb.ListProvidersHandler)
		api.GET("/providers/:id", hb.GetProviderHandler)
		api.GET("/providers/:id/services", hb.ListProviderServicesHandler)
		api.POST("/providers/apply", hb.ApplyProviderHandler)

		api.POST("/bookings", hb.CreateBookingHandler)
		api.GET("/bookings", hb.ListMyBookingsHandler)
		api.GET("/bookings/:id", hb.GetBookingHandler)
		api.POST("/bookings/:id/cancel", hb.CancelBookingHandler)
		api.POST("/bookings/:id/confirm-completion", hb.ConfirmCompletionHandler)
	}
}

// RegisterProRoutes registers the provider-side endpoints: profile, service
// catalogue, agenda and booking confirmation.
func RegisterProRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pro")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.Use(middleware.AccessCheckMiddleware(hb.AdminService))
		api.Use(middleware.RequireProMiddleware())

		api.GET("/profile", hb.GetMyProviderHandler)
		api.PUT("/profile", hb.UpdateMyProviderHandler)

		api.POST("/services", hb.CreateServiceHandler)
		api.PUT("/services/:id", hb.UpdateServiceHandler)
		api.DELETE("/services/:id", hb.DeleteServiceHandler)

		api.GET("/agenda", hb.ProAgendaHandler)
		api.GET("/bookings", hb.ProBookingsHandler)
		api.POST("/bookings/confirm-by-reference", hb.ConfirmByReferenceHandler)
		api.POST("/bookings/scan", hb.ScanPetTagHandler)
		api.POST("/bookings/:id/confirm", hb.ConfirmSimpleHandler)
		api.POST("/bookings/:id/verify-otp", hb.VerifyOTPHandler)
		api.POST("/bookings/:id/complete", hb.CompleteBookingHandler)

		api.GET("/earnings", hb.ProEarningsHandler)
	}
}

// RegisterAdminRoutes registers the back-office endpoints. The admin role is
// re-checked against the database on every request.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.Use(middleware.RequireAdminMiddleware(users))

		api.GET("/users", hb.AdminListUsersHandler)
		api.GET("/users/:id", hb.AdminUserProfileHandler)
		api.PUT("/users/:id", hb.AdminUpdateUserHandler)
		api.GET("/users/:id/access", hb.AdminCheckAccessHandler)

		api.POST("/users/:id/warn", hb.AdminWarnHandler)
		api.POST("/users/:id/suspend", hb.AdminSuspendHandler)
		api.POST("/users/:id/ban", hb.AdminBanHandler)
		api.POST("/users/:id/unban", hb.AdminUnbanHandler)
		api.POST("/users/:id/lift-suspension", hb.AdminLiftSuspensionHandler)
		api.GET("/users/:id/sanctions", hb.AdminSanctionHistoryHandler)

		api.PUT("/providers/:id/approval", hb.AdminSetApprovalHandler)
		api.PUT("/providers/:id/commission", hb.AdminUpdateCommissionHandler)
		api.POST("/providers/:id/commission/reset", hb.AdminResetCommissionHandler)

		api.GET("/providers/:id/earnings", hb.AdminEarningsMonthHandler)
		api.GET("/providers/:id/earnings/history", hb.AdminEarningsHistoryHandler)
		api.GET("/providers/:id/earnings/adjustments", hb.AdminAdjustmentsHandler)
		api.GET("/providers/:id/arrears", hb.AdminArrearsHandler)
		api.POST("/providers/:id/collections/:op", hb.AdminCollectionHandler)
		api.GET("/stats", hb.AdminGlobalStatsHandler)
		api.GET("/exports/commissions", hb.AdminExportMonthHandler)

		api.POST("/flags", hb.AdminCreateFlagHandler)
		api.GET("/flags", hb.AdminListFlagsHandler)
		api.GET("/flags/stats", hb.AdminFlagStatsHandler)
		api.POST("/flags/:id/resolve", hb.AdminResolveFlagHandler)
		api.POST("/flags/:id/unresolve", hb.AdminUnresolveFlagHandler)
		api.DELETE("/flags/:id", hb.AdminDeleteFlagHandler)
		api.POST("/analysis/run", hb.AdminRunAnalysisHandler)

		api.GET("/support/tickets", hb.AdminListTicketsHandler)
		api.GET("/support/tickets/:id", hb.GetTicketHandler)
		api.POST("/support/tickets/:id/messages", hb.ReplyTicketHandler)
		api.PUT("/support/tickets/:id/status", hb.AdminSetTicketStatusHandler)
		api.PUT("/support/tickets/:id/priority", hb.AdminSetTicketPriorityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm PawHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterMarketplaceRoutes(r, hb)
	RegisterProRoutes(r, hb)
	RegisterAdminRoutes(r, hb, users)
	RegisterHealthRoute(r)
}
