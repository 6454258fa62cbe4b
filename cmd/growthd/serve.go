package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Krimson/growth-monitory/internal/config"
	"github.com/Krimson/growth-monitory/internal/events"
	"github.com/Krimson/growth-monitory/internal/grpcserver"
	"github.com/Krimson/growth-monitory/internal/handler"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/websocket"
)

const healthInterval = 15 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, gRPC and websocket servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	hub := websocket.NewHub(cfg.CORSOrigin, a.logger)
	notifiers := journal.Notifiers{hub}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.Dial(cfg.AMQPURL, cfg.AMQPQueue, a.logger)
		if err != nil {
			a.logger.Warn("rabbitmq unavailable, assessment events will not be published", zap.Error(err))
		} else {
			a.logger.Info("publishing assessment events", zap.String("queue", cfg.AMQPQueue))
			publisher = p
			notifiers = append(notifiers, p)
			defer func() {
				if err := p.Close(); err != nil {
					a.logger.Warn("failed to close rabbitmq publisher", zap.Error(err))
				}
			}()
		}
	}

	tracker, closeJournal := a.openJournal(ctx, notifiers)
	defer closeJournal()

	svc, err := a.newService(tracker)
	if err != nil {
		return err
	}

	// ===== HTTP =====
	router := handler.NewRouter(handler.NewHTTPHandler(svc, a.logger), hub.HandleWebSocket, cfg.CORSOrigin, a.logger)
	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ===== gRPC =====
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port %s: %w", cfg.GRPCPort, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcserver.UnaryLogger(a.logger)))
	grpcserver.NewServer(svc, a.logger).Register(grpcServer)

	healthServer := grpcserver.NewHealthServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus(grpcserver.ServiceName)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		healthServer.Monitor(gctx, grpcserver.ServiceName, healthInterval, func(ctx context.Context) error {
			if h := svc.Health(ctx); h.Status != "ok" {
				return fmt.Errorf("service %s: %v", h.Status, h.Checks)
			}
			return nil
		})
		return nil
	})

	if publisher != nil {
		g.Go(func() error {
			publisher.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		a.logger.Info("HTTP server starting",
			zap.String("addr", httpServer.Addr),
			zap.String("swagger", "/swagger/index.html"),
			zap.String("websocket", "/ws"))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("gRPC server starting", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down servers")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			a.logger.Warn("gRPC graceful stop timed out, forcing")
			grpcServer.Stop()
		}

		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("servers exited gracefully")
	return nil
}

// openJournal picks the cache and repository backends from the config. A
// backend that cannot be reached falls back to memory with a warning.
func (a *app) openJournal(ctx context.Context, notifier journal.Notifier) (*journal.Manager, func()) {
	cfg := a.cfg
	var closers []func() error

	var cache journal.CacheStore = journal.NewMemoryStore(cfg.JournalTTL)
	if cfg.JournalBackend == config.JournalBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := journal.NewRedisStore(client, cfg.JournalTTL)
		if err := store.Ping(ctx); err != nil {
			a.logger.Warn("redis unavailable, using in-memory journal cache",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = store.Close()
		} else {
			a.logger.Info("journal cache: redis", zap.String("addr", cfg.RedisAddr))
			cache = store
			closers = append(closers, store.Close)
		}
	}

	var repo journal.Repository = journal.NewMemoryRepository()
	if cfg.PostgresDSN != "" {
		pg, err := journal.NewPostgresRepositoryFromDSN(ctx, cfg.PostgresDSN)
		if err != nil {
			a.logger.Warn("postgres unavailable, keeping saved assessments in memory", zap.Error(err))
		} else {
			a.logger.Info("journal repository: postgres")
			repo = pg
			closers = append(closers, pg.Close)
		}
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				a.logger.Warn("failed to close journal backend", zap.Error(err))
			}
		}
	}
	return journal.NewManager(cache, repo, notifier, a.logger), closeAll
}
