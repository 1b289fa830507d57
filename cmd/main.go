package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/health"

	grpcRouter "github.com/dtroode/passworld/internal/api/grpc/router"
	grpcServer "github.com/dtroode/passworld/internal/api/grpc/server"
	"github.com/dtroode/passworld/internal/api/grpc/watcher"
	"github.com/dtroode/passworld/internal/api/http/handler"
	httpRouter "github.com/dtroode/passworld/internal/api/http/router"
	httpServer "github.com/dtroode/passworld/internal/api/http/server"
	"github.com/dtroode/passworld/internal/config"
	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
	"github.com/dtroode/passworld/internal/repository/postgres"
	"github.com/dtroode/passworld/internal/repository/sqlite"
	"github.com/dtroode/passworld/internal/server"
	"github.com/dtroode/passworld/internal/service"
	"github.com/dtroode/passworld/internal/storage/minio"
	"github.com/dtroode/passworld/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize store", "error", err, "driver", cfg.Database.Driver)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	credentialService := service.NewCredential(store, logger.Named("credential"))
	sessionService := service.NewSession(cfg.Auth.PIN, token.NewJWT(cfg.Auth.Secret, cfg.Auth.TokenTTL), logger.Named("session"))
	logger.Info("sessions configured", "enabled", cfg.Auth.Enabled(), "ttl", cfg.Auth.TokenTTL)

	var backupService handler.BackupService
	if cfg.Storage.Enabled {
		snapshots, err := minio.Open(ctx, minio.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize snapshot storage", "error", err)
		}
		backupService = service.NewBackup(store, snapshots, logger.Named("backup"))
	}

	if cfg.LogLevel > -4 {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := httpRouter.New(credentialService, sessionService, backupService, credentialService, logger.Named("http")).Register()

	servers := []model.Server{
		httpServer.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout),
	}

	var wg sync.WaitGroup

	if cfg.GRPC.Enabled {
		healthState := health.NewServer()
		w := watcher.New(credentialService, healthState, cfg.GRPC.HealthInterval, logger.Named("health"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()

		s := grpcRouter.New(healthState, logger.Named("grpc")).Register()
		servers = append(servers, grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	sl := server.NewSecurityLayer(cfg.HTTP)

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg config.Database) (model.CredentialStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return sqlite.NewCredentialRepository(db), nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN, cfg.Name)
		if err != nil {
			return nil, err
		}
		return postgres.NewCredentialRepository(conn), nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
