package main

import (
	"context"
	"fmt"
	"net"

	pb "token-scanner/src/grpc_control"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/models"
	"token-scanner/src/server"

	"google.golang.org/grpc"
)

const defaultGrpcPort = 50051

type runningServers struct {
	http interfaces.IDataExchanger
	grpc *grpc.Server
	errs chan error
	log  *logger.Logger
}

// -----------------------------------------------------------------------------

// startServers starts the HTTP and gRPC servers in the background. The first
// server error is reported on errs.
func startServers(a *app, config *models.MConfig, appLogger *logger.Logger) *runningServers {
	rs := &runningServers{
		errs: make(chan error, 2),
		log:  appLogger,
	}

	// 1. FastAPIServer (REST + websocket feed + metrics)
	srv := server.NewFastAPIServer(config, a.analyzer, a.narrator, appLogger.Named("Server"))
	rs.http = srv
	go func() {
		if err := srv.Start(); err != nil {
			rs.errs <- fmt.Errorf("http: %w", err)
		}
	}()

	// 2. gRPC Control Server
	port := config.GrpcPort
	if port == 0 {
		port = defaultGrpcPort
	}
	addr := fmt.Sprintf("%s:%d", config.GrpcHost, port)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		rs.errs <- fmt.Errorf("grpc listen %s: %w", addr, err)
		return rs
	}

	rs.grpc = grpc.NewServer()
	controlService := pb.NewControlService(a.analyzer, a.sources, appLogger.Named("ControlService"))
	pb.RegisterScannerServer(rs.grpc, controlService)

	go func() {
		appLogger.Info("Starting gRPC Control Server on %s", addr)
		if err := rs.grpc.Serve(lis); err != nil {
			rs.errs <- fmt.Errorf("grpc: %w", err)
		}
	}()

	return rs
}

// -----------------------------------------------------------------------------

func (rs *runningServers) shutdown(ctx context.Context) {
	if err := rs.http.Stop(ctx); err != nil {
		rs.log.Error("HTTP shutdown: %v", err)
	}

	if rs.grpc == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		rs.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		rs.grpc.Stop()
	}
}
