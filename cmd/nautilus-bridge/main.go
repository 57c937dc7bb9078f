package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/internal/server"
	"github.com/deltadao/nautilus-bridge-go/pkg/bridge"
	"github.com/deltadao/nautilus-bridge-go/pkg/config"
	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	// Registry drift must never surface per-request.
	if err := networks.VerifyRegistry(); err != nil {
		zap.L().Fatal("network registry inconsistent", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("invalid configuration", zap.Error(err))
	}

	srv := server.New(cfg, bridge.New(nil))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("shutdown failed", zap.Error(err))
	}
}
