package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"a11ydash/internal/app"
)

func main() {
	configPath := flag.String("config", os.Getenv("A11YDASH_CONFIG"), "YAML config file")
	flag.Parse()

	a, err := app.New(*configPath)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	if !a.Config.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// an unreachable feed leaves /ready at 503 instead of aborting startup
	if err := a.Load(context.Background()); err != nil {
		a.Log.Error("initial load failed", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("HTTP API server listening", zap.String("addr", httpSrv.Addr), zap.String("feed", a.Source.Name()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		a.Log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("http shutdown error", zap.Error(err))
	}
	a.Log.Info("server stopped")
}
