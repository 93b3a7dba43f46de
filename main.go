package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aadit2805/project3-group7-deploy-sub000/config"
	"github.com/aadit2805/project3-group7-deploy-sub000/database"
	"github.com/aadit2805/project3-group7-deploy-sub000/middlewares"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/router"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/sessions"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	utils.SetJWTSecret(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if err := database.SeedMealTypes(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed meal types: %v", err)
	}

	kioskSessions := sessions.NewStore(models.SourceKiosk, cfg.SessionTTL)
	cashierSessions := sessions.NewStore(models.SourceCashier, cfg.SessionTTL)
	kioskSessions.Start()
	cashierSessions.Start()

	monitor := services.NewAvailabilityMonitor(db, cfg.AvailabilityInterval)
	monitor.Start()

	apiLimiter := middlewares.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)
	loginLimiter := middlewares.NewRateLimiter(cfg.HTTP.LoginLimit, cfg.HTTP.LoginBurst)
	stopJanitor := startJanitor(10*time.Minute, func(now time.Time) {
		apiLimiter.Forget(10 * time.Minute)
		loginLimiter.Forget(time.Hour)
		utils.PurgeBlacklist(now)
	})

	r := router.SetupRouter(router.Deps{
		DB:              db,
		Config:          cfg,
		KioskSessions:   kioskSessions,
		CashierSessions: cashierSessions,
		Monitor:         monitor,
		APILimiter:      apiLimiter,
		LoginLimiter:    loginLimiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		utils.InfoLogger.WithField("signal", s.String()).Info("signal caught")
		stopJanitor()
		monitor.Stop()
		kioskSessions.Stop()
		cashierSessions.Stop()

		shutdown <- srv.Shutdown(ctx)
	}()

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		utils.ErrorLogger.Fatal(err)
	}
	if err := <-shutdown; err != nil {
		utils.ErrorLogger.Fatalf("Shutdown failed: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Server stopped")
}

// startJanitor runs sweep on every tick until the returned stop func is
// called. stop waits for the goroutine to exit.
func startJanitor(interval time.Duration, sweep func(time.Time)) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case now := <-ticker.C:
				sweep(now)
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
			<-exited
		})
	}
}
