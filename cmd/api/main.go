// @title                       Nyaay Sathi Legal API
// @version                     1.0
// @description                 Marketplace backend for clients, lawyers and law firms.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nyaaysathi/legal-api/internal/api"
	"github.com/nyaaysathi/legal-api/internal/api/handler"
	"github.com/nyaaysathi/legal-api/internal/core/service"
	"github.com/nyaaysathi/legal-api/internal/infrastructure/chat"
	mongodb "github.com/nyaaysathi/legal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nyaaysathi/legal-api/internal/infrastructure/db/redis"
	"github.com/nyaaysathi/legal-api/internal/infrastructure/telemetry"
	"github.com/nyaaysathi/legal-api/internal/pkg/config"
	"github.com/nyaaysathi/legal-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.Telemetry.ServiceName,
		Env:     cfg.Env,
	})
	log := logger.Get()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:     cfg.Telemetry.OTLPEndpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Environment:  cfg.Env,
		SamplingRate: cfg.Telemetry.SamplingRate,
	}, logger.Component("telemetry"))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	// --- Persistence ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		ClientName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	identities := mongodb.NewIdentityRepository(db)

	// --- Core services ---
	creds := service.NewCredentialService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.AdminTokenTTL)

	admin := service.AdminCredentials{Email: cfg.Auth.AdminEmail}
	if cfg.Auth.AdminPassword != "" {
		if admin.PasswordHash, err = creds.HashPassword(cfg.Auth.AdminPassword); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD not set: admin login disabled")
	}

	chatClient := chat.New(chat.Config{
		BaseURL: cfg.Chat.APIURL,
		APIKey:  cfg.Chat.APIKey,
		Model:   cfg.Chat.Model,
		Timeout: cfg.Chat.Timeout,
	})

	services := api.Services{
		Auth: service.NewAuthService(identities, creds, admin, logger.Component("auth")),
		Applications: service.NewApplicationService(
			mongodb.NewApplicationRepository(db),
			identities,
			creds,
			redisdb.NewSubmissionGuard(rdb, "", 0),
			logger.Component("applications"),
		),
		Firm: service.NewFirmService(
			identities,
			mongodb.NewTaskRepository(db),
			mongodb.NewCaseUpdateRepository(db),
			creds,
			logger.Component("firm"),
		),
		Resources: service.NewResourceService(
			mongodb.NewCaseRepository(db),
			mongodb.NewDocumentRepository(db),
			mongodb.NewBookingRepository(db),
			identities,
			logger.Component("resources"),
		),
		Directory: service.NewDirectoryService(identities, mongodb.NewWaitlistRepository(db), logger.Component("directory")),
		Chat:      service.NewChatService(chatClient, mongodb.NewChatHistoryRepository(db), logger.Component("chat")),
	}

	health := handler.NewHealthHandler(map[string]handler.Check{
		"mongodb": handler.MongoCheck(db),
		"redis":   handler.RedisCheck(rdb),
	})

	e := api.NewRouter(services, health, api.Options{
		Prefix:         cfg.APIPrefix,
		CORSOrigins:    cfg.CORSOrigins,
		GuestChatRPS:   cfg.Chat.GuestRPS,
		RequestTimeout: cfg.RequestTimeout,
	}, logger.Component("http"))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           otelhttp.NewHandler(e, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
