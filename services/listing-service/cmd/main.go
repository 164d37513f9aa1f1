package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"google.golang.org/grpc"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/config"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/handler"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/auth"
	"github.com/vasapolrittideah/property-listing-api/shared/discovery"
	"github.com/vasapolrittideah/property-listing-api/shared/logger"
	"github.com/vasapolrittideah/property-listing-api/shared/mailer"
	"github.com/vasapolrittideah/property-listing-api/shared/utilities"
	"github.com/vasapolrittideah/property-listing-api/shared/validator"
)

const healthWatchInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New("error", config.EnvProduction)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("listing service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.ListingServiceConfig, log *zerolog.Logger) error {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.Mongo.URI).
			SetConnectTimeout(cfg.Mongo.ConnectTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	healthChecker := repository.NewMongoHealthChecker(client)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := healthChecker.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	db := client.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	propertyRepo := repository.NewPropertyMongoRepository(ctx, log, db)

	notifier, err := newRecommendationNotifier(cfg.Mailer, log)
	if err != nil {
		return err
	}

	v, err := validator.New()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	h := handler.NewHandler(
		usecase.NewAuthUsecase(userRepo, jwtAuth, cfg.Token, log),
		usecase.NewPropertyUsecase(propertyRepo, log),
		usecase.NewFavoriteUsecase(userRepo, propertyRepo),
		usecase.NewRecommendationUsecase(userRepo, propertyRepo, notifier, log),
		healthChecker,
		v,
		log,
		cfg.IsDevelopment(),
	)

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      h.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("environment", cfg.Environment).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	var grpcServer *grpc.Server
	if addr := cfg.Discovery.GRPCHealthAddr; addr != "" {
		grpcServer, err = startGRPCHealthServer(ctx, addr, cfg.Discovery.ServiceName, healthChecker, log, errCh)
		if err != nil {
			return err
		}
	}

	if cfg.Discovery.ConsulAddr != "" {
		registry, err := registerWithConsul(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := registry.Deregister(); err != nil {
				log.Error().Err(err).Msg("failed to deregister from consul")
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Info().Msg("listing service stopped")
	return nil
}

func newRecommendationNotifier(cfg mailer.Config, log *zerolog.Logger) (usecase.RecommendationNotifier, error) {
	if !cfg.Enabled() {
		log.Info().Msg("SMTP_HOST not set, recommendation emails are disabled")
		return usecase.NewNopRecommendationNotifier(), nil
	}

	m, err := mailer.NewMailer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	return usecase.NewEmailRecommendationNotifier(m), nil
}

func startGRPCHealthServer(
	ctx context.Context,
	addr, serviceName string,
	healthChecker handler.HealthChecker,
	log *zerolog.Logger,
	errCh chan<- error,
) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	healthServer := utilities.RegisterHealthServer(grpcServer)

	go utilities.WatchHealth(ctx, healthServer, serviceName, healthWatchInterval, healthChecker.Ping, log)

	go func() {
		log.Info().Str("addr", addr).Msg("grpc health server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc health server failed: %w", err)
		}
	}()

	return grpcServer, nil
}

func registerWithConsul(cfg *config.ListingServiceConfig) (*discovery.ConsulRegistry, error) {
	registry, err := discovery.NewConsulRegistry(cfg.Discovery.ConsulAddr)
	if err != nil {
		return nil, err
	}

	if _, err := registry.Register(discovery.Service{
		Name:       cfg.Discovery.ServiceName,
		Host:       cfg.Discovery.ServiceHost,
		Port:       cfg.HTTP.Port,
		HealthPath: "/health",
		Tags:       []string{"http", cfg.Environment},
	}); err != nil {
		return nil, err
	}

	return registry, nil
}
