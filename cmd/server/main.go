package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tienda-storefront/internal/catalog"
	"tienda-storefront/internal/config"
	"tienda-storefront/internal/httpserver"
	"tienda-storefront/internal/identity"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/order"
	"tienda-storefront/internal/session"
)

const sessionTTL = 30 * 24 * time.Hour

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	var stores func(visitorID string) session.Store
	if cfg.RedisAddr == "" {
		logger.L().Warn("REDIS_ADDR not set, sessions held in process memory")
		stores = session.NewMemoryStores().ForVisitor
	} else {
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, "storefront", sessionTTL)
		stores = func(visitorID string) session.Store {
			return redisStore.WithPrefix(visitorID)
		}
	}

	srv := httpserver.New(httpserver.Deps{
		Config: cfg,
		Stores: stores,
		Tokens:  identity.NewTokenIssuer(cfg.JWTSecret, sessionTTL),
		Users:   identity.NewClient(cfg.UsuariosAPIURL),
		Catalog: catalog.NewClient(cfg.ProductosAPIURL),
		Orders:  order.NewClient(cfg.PedidosAPIURL),
	})

	go func() {
		logger.L().Info("storefront listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
	logger.L().Info("storefront stopped")
}
