package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lnbits-apfel/paycode-webhook/config"
	"github.com/lnbits-apfel/paycode-webhook/controllers"
	"github.com/lnbits-apfel/paycode-webhook/lnbits"
	"github.com/lnbits-apfel/paycode-webhook/repositories"
	"github.com/lnbits-apfel/paycode-webhook/routes"
	"github.com/lnbits-apfel/paycode-webhook/services"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error opening database: %v", err)
		log.Fatal("Error opening database:", err)
	}
	defer config.CloseDB(db)

	webhookRepo := repositories.NewWebhookRepository(db)
	balanceRepo := repositories.NewWalletBalanceRepository(db)

	walletClient := lnbits.NewClient(&http.Client{Timeout: cfg.WalletTimeout}, cfg.LNbitsURL)
	balanceService := services.NewBalanceService(walletClient, balanceRepo)

	webhookController := controllers.NewWebhookController(cfg, webhookRepo, balanceService)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up router
	router := routes.SetupRouter(routes.Controllers{
		Webhook: webhookController,
		Payment: controllers.NewPaymentController(webhookRepo, balanceRepo),
		Health:  &controllers.HealthController{DB: db},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Webhook service starting on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		utils.LogInfo("Shutdown requested")
	case err := <-errCh:
		utils.LogError("Error starting server: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError("Server shutdown: %v", err)
	}
	if err := webhookController.Wait(shutdownCtx); err != nil {
		utils.LogWarn("Pending balance refreshes not finished: %v", err)
	}
	utils.LogInfo("Webhook service stopped")
}
