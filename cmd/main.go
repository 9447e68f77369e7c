package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/config"
	httpapi "farmatrack/internal/http"
	"farmatrack/internal/logger"
	"farmatrack/internal/repository"
	"farmatrack/internal/service"

	_ "farmatrack/docs"
)

// @title FarmaTrack API
// @version 1.0
// @description Field force backend: doctors, products, tasks, targets, users and the MR stock ledger.
// @BasePath /api
func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("store init failed", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}

	users := service.NewUserService(store.Users)
	svc := httpapi.Services{
		Doctors:  service.NewDoctorService(store.Doctors),
		Products: service.NewProductService(store.Products),
		Tasks:    service.NewTaskService(store.Tasks),
		Targets:  service.NewTargetService(store.Targets),
		Users:    users,
		Stock:    service.NewMrStockService(store.Stock, store.Tx),
		Auth:     service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}

	if cfg.Stock.SeedOnStartup {
		if _, err := svc.Stock.Seed(context.Background()); err != nil {
			logger.Error("stock seed failed", "err", err)
			os.Exit(1)
		}
	}

	srv := httpapi.NewServer(svc, httpapi.Options{
		StrictNotFound: cfg.Server.StrictNotFound,
		AuthRequired:   cfg.Auth.Required,
		AllowOrigins:   cfg.Server.AllowOrigins,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("server starting", "addr", httpServer.Addr, "driver", cfg.Database.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

// openStore memory по умолчанию, иначе gorm поверх postgres/mysql
func openStore(cfg *config.Config) (*repository.Store, error) {
	db, err := cfg.OpenGormDB()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return repository.NewMemoryStore().Repositories(), nil
	}
	return repository.NewGormStore(db)
}
