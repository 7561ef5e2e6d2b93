package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/auth"
	pkgkafka "github.com/crisgp1/cliquealo.mx-sub002/pkg/kafka"
	"github.com/crisgp1/cliquealo.mx-sub002/pkg/observability"
	pkgpostgres "github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/usecase"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/service"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/config"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/kafka"
	pgRepo "github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/postgres"
	grpcPresentation "github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/presentation/grpc"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/presentation/rest"
)

func newServeCmd() *cobra.Command {
	var (
		migrate    bool
		reflection bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP servers and the bank-partner consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate, reflection)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending database migrations before serving")
	cmd.Flags().BoolVar(&reflection, "grpc-reflection", false, "register the gRPC reflection service")
	return cmd
}

func serve(ctx context.Context, migrate, reflection bool) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting credit-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort flush
		}
	}

	// Meters must exist before the use cases create their instruments.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()
	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migrate {
		if err := pkgpostgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations applied", "dir", cfg.MigrationsDir)
	}

	kafkaCfg := kafkaConfig(cfg.Kafka)
	producer := pkgkafka.NewProducer(kafkaCfg)
	defer func() { _ = producer.Close() }() //nolint:errcheck
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.EventsTopic, logger)

	lenders := pgRepo.NewLenderRepo(pool)
	applications := pgRepo.NewCreditApplicationRepo(pool)
	listings := pgRepo.NewListingRepo(pool)
	simulator := service.NewCreditSimulator()

	simulateUC := usecase.NewSimulateCreditUseCase(lenders, listings, simulator, cfg.Simulation.DefaultTopN)
	submitUC := usecase.NewSubmitCreditApplicationUseCase(applications, lenders, listings, publisher, simulator)
	queryUC := usecase.NewQueryCreditApplicationsUseCase(applications)
	reviewUC := usecase.NewReviewCreditApplicationUseCase(applications, publisher)
	lendersUC := usecase.NewManageLendersUseCase(lenders, publisher)
	syncUC := usecase.NewSyncBankPartnersUseCase(lenders, publisher, logger)

	jwtSvc, err := newJWTService(cfg.JWT)
	if err != nil {
		return err
	}

	handler := grpcPresentation.NewCreditHandler(simulateUC, submitUC, queryUC, reviewUC, lendersUC, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, jwtSvc, grpcPresentation.ServerOptions{
		CertFile:   cfg.TLS.CertFile,
		KeyFile:    cfg.TLS.KeyFile,
		Reflection: reflection,
	}, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Health:       rest.NewHealthHandler(pool, logger),
			Simulations:  rest.NewSimulationHandler(simulateUC, logger),
			Metrics:      metricsHandler,
			RateLimitRPS: cfg.RateLimitRPS,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	consumer := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.BankPartnersTopic,
		kafka.BankPartnerHandler(syncUC, logger), logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := consumer.Start(gctx); err != nil {
			return fmt.Errorf("bank partner consumer: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		shutdown(logger, grpcServer, httpServer, consumer)
		return nil
	})

	err = g.Wait()
	logger.Info("credit-service stopped")
	return err
}

func shutdown(logger *slog.Logger, grpcServer *grpcPresentation.Server, httpServer *http.Server, consumer *pkgkafka.Consumer) {
	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := consumer.Close(); err != nil {
		logger.Error("consumer close error", "error", err)
	}
}

func kafkaConfig(k config.KafkaConfig) pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		ConsumerGroup: k.ConsumerGroup,
		TLS:           k.TLS,
		SASLEnabled:   k.SASLEnabled,
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}

// newJWTService prefers a private key, then a public key, then the shared
// secret.
func newJWTService(c config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     c.Secret,
		Issuer:     c.Issuer,
		Expiration: c.Expiration,
	}
	switch {
	case c.PrivateKeyFile != "":
		key, err := auth.LoadKeyFromFile(c.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT private key: %w", err)
		}
		jwtCfg.PrivateKeyPEM = string(key)
	case c.PublicKeyFile != "":
		key, err := auth.LoadKeyFromFile(c.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(key)
	}

	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("init JWT service: %w", err)
	}
	return svc, nil
}
