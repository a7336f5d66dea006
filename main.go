package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawhub/config"
	"pawhub/cron"
	"pawhub/database"
	bookingRepoPkg "pawhub/database/repository/booking"
	flagRepoPkg "pawhub/database/repository/flag"
	ledgerRepoPkg "pawhub/database/repository/ledger"
	petRepoPkg "pawhub/database/repository/pet"
	providerRepoPkg "pawhub/database/repository/provider"
	recordsRepoPkg "pawhub/database/repository/records"
	sanctionRepoPkg "pawhub/database/repository/sanction"
	supportRepoPkg "pawhub/database/repository/support"
	userRepoPkg "pawhub/database/repository/user"
	"pawhub/handlers"
	"pawhub/routes"
	"pawhub/services/admin"
	"pawhub/services/booking"
	"pawhub/services/earnings"
	"pawhub/services/pet"
	"pawhub/services/provider"
	"pawhub/services/support"
	"pawhub/services/user"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitOTPCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	petsRepo := petRepoPkg.NewMongoPetRepo()
	ledgRepo := ledgerRepoPkg.NewMongoLedgerRepo()
	sancRepo := sanctionRepoPkg.NewMongoSanctionRepo()
	flgRepo := flagRepoPkg.NewMongoFlagRepo()
	suppRepo := supportRepoPkg.NewMongoSupportRepo()
	recRepo := recordsRepoPkg.NewMongoRecordsRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	petService := &pet.DefaultPetService{Repo: petsRepo}
	providerService := &provider.DefaultProviderService{
		Repo:     provRepo,
		UserRepo: userRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bookRepo,
		ProviderRepo: provRepo,
		UserRepo:     userRepo,
		PetRepo:      petsRepo,
	}
	earningsService := &earnings.DefaultEarningsService{
		BookingRepo:  bookRepo,
		ProviderRepo: provRepo,
		LedgerRepo:   ledgRepo,
	}
	adminService := &admin.DefaultAdminService{
		UserRepo:     userRepo,
		ProviderRepo: provRepo,
		BookingRepo:  bookRepo,
		PetRepo:      petsRepo,
		SanctionRepo: sancRepo,
		FlagRepo:     flgRepo,
		RecordsRepo:  recRepo,
	}
	supportService := &support.DefaultSupportService{Repo: suppRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserService:     userService,
		PetService:      petService,
		ProviderService: providerService,
		BookingService:  bookingService,
		EarningsService: earningsService,
		AdminService:    adminService,
		SupportService:  supportService,
	}

	routes.RegisterRoutes(router, handlerBundle, userRepo)

	// Background maintenance: booking sweeps and the fraud scan.
	cron.InitMaintenanceWorker(bookingService, adminService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
