package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"a11ydash/internal/app"
	"a11ydash/internal/grpcserver"
)

func main() {
	configPath := flag.String("config", os.Getenv("A11YDASH_CONFIG"), "YAML config file")
	flag.Parse()

	a, err := app.New(*configPath)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	if err := a.Load(context.Background()); err != nil {
		a.Log.Error("initial load failed", zap.Error(err))
	}

	listener, err := net.Listen("tcp", a.Config.GRPC.Addr)
	if err != nil {
		a.Log.Fatal("grpc listen failed", zap.Error(err))
	}

	grpcServer, healthSrv := grpcserver.New(a.Store, a.Log)

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("gRPC server listening", zap.String("addr", a.Config.GRPC.Addr))
		errCh <- grpcServer.Serve(listener)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		a.Log.Error("grpc server stopped", zap.Error(err))
	}

	grpcserver.SetServing(healthSrv, false)
	grpcServer.GracefulStop()
	a.Log.Info("server stopped")
}
