package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/events"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"github.com/sage-x-project/sage-did-go/pkg/ledger/postgres"
	"github.com/sage-x-project/sage-did-go/pkg/ledger/redislock"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
	"github.com/sage-x-project/sage-did-go/pkg/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	service    *registry.Service
	handler    http.Handler
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	health     *health.Server
	closers    []io.Closer
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)
	return Build(ctx, cfg, logger)
}

// Build wires the backends selected by cfg
func Build(ctx context.Context, cfg Config, logger *slog.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runtime{cfg: cfg, logger: logger}
	fail := func(err error) (*Runtime, error) {
		r.close()
		return nil, err
	}

	store, err := r.buildLedger(ctx)
	if err != nil {
		return fail(err)
	}
	locker, err := r.buildLocker(ctx)
	if err != nil {
		return fail(err)
	}
	publisher, err := r.buildPublisher(ctx)
	if err != nil {
		return fail(err)
	}

	parser := envelope.NewParser(cfg.Policy())
	r.service = registry.NewService(store,
		registry.WithLocker(locker),
		registry.WithParser(parser),
		registry.WithDispatcher(registry.NewDispatcher(cfg.DispatchQueue)),
		registry.WithPublisher(publisher),
		registry.WithLogger(logger),
	)

	handler := server.NewHandler(r.service, parser, logger)
	handler.Middleware().SetMaxBodyBytes(cfg.MaxBodyBytes)
	r.handler = server.NewRouter(handler)
	r.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.grpcServer = grpc.NewServer()
	r.health = health.NewServer()
	healthpb.RegisterHealthServer(r.grpcServer, r.health)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fail(err)
	}
	r.grpcLis = lis

	logger.InfoContext(ctx, "runtime ready",
		"module", "bootstrap",
		"ledger", cfg.LedgerBackend,
		"lock", cfg.LockBackend,
		"events", cfg.EventsBackend,
	)
	return r, nil
}

func (r *Runtime) buildLedger(ctx context.Context) (ledger.Ledger, error) {
	if r.cfg.LedgerBackend != BackendPostgres {
		return ledger.NewMemory(), nil
	}
	db, err := postgres.Connect(ctx, r.cfg.DatabaseURL, r.cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, sqlDB)
	if err := postgres.RunMigrations(ctx, db); err != nil {
		return nil, err
	}
	return postgres.NewLedger(db), nil
}

func (r *Runtime) buildLocker(ctx context.Context) (ledger.Locker, error) {
	if r.cfg.LockBackend != BackendRedis {
		return ledger.NewMemoryLocker(), nil
	}
	client, err := redislock.Connect(ctx, r.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, client)
	opts := redislock.DefaultOptions
	opts.TTL = r.cfg.LockTTL
	return redislock.New(client, opts), nil
}

func (r *Runtime) buildPublisher(ctx context.Context) (events.Publisher, error) {
	if r.cfg.EventsBackend != BackendKafka {
		return events.NewLoggingPublisher(r.logger), nil
	}
	kafkaPublisher, err := events.NewKafkaPublisher(r.cfg.KafkaBrokers, map[string]string{
		events.TypeCreated: r.cfg.KafkaTopicCreated,
		events.TypeUpdated: r.cfg.KafkaTopicUpdated,
		events.TypeDeleted: r.cfg.KafkaTopicDeleted,
	})
	if err != nil {
		r.logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", err)
		return events.NewLoggingPublisher(r.logger), nil
	}
	r.closers = append(r.closers, kafkaPublisher)
	return kafkaPublisher, nil
}

// Handler returns the HTTP routes
func (r *Runtime) Handler() http.Handler {
	return r.handler
}

// GRPCAddr returns the address of the health server listener
func (r *Runtime) GRPCAddr() net.Addr {
	return r.grpcLis.Addr()
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", runErr)
	}

	r.health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.cfg.ShutdownTimeout)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.close()
	return runErr
}

// Close releases the runtime without serving
func (r *Runtime) Close() {
	if r.grpcLis != nil {
		_ = r.grpcLis.Close()
	}
	r.close()
}

func (r *Runtime) close() {
	if r.service != nil {
		r.service.Close()
		r.service = nil
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
	r.closers = nil
}
