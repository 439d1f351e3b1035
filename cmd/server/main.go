// Command server runs the compliance registry: identity resolution, transfer
// compliance checks, and capacity bookkeeping behind an HTTP surface for the
// share ledgers and operators.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"custos/internal/platform/config"
	"custos/internal/platform/httpserver"
	"custos/internal/platform/logger"
	platformredis "custos/internal/platform/redis"
	"custos/internal/registry/handler"
	"custos/internal/registry/metrics"
	"custos/internal/registry/oracle"
	"custos/internal/registry/ports"
	"custos/internal/registry/service"
	"custos/internal/registry/store/country"
	"custos/internal/registry/store/member"
	id "custos/pkg/domain"
	auditkafka "custos/pkg/platform/audit/kafka"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orgAddress, err := id.ParseAddress(cfg.OrgAddress)
	if err != nil {
		return errors.New("CUSTOS_ORG_ADDRESS is required")
	}

	members, countries, closeStores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	dialerOpts := []oracle.DialerOption{oracle.WithTimeout(cfg.OracleTimeout)}
	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
		dialerOpts = append(dialerOpts, oracle.WithCache(cache.Client))
		log.Info("oracle facts cache enabled")
	}
	dialer := oracle.NewDialer(dialerOpts...)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, service.WithAuditPublisher(publisher))
		log.Info("kafka audit publisher enabled", "topic", cfg.KafkaTopic)
	}

	svc, err := service.New(members, countries, dialer, tokenAuthorizer{}, orgAddress, opts...)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	h := handler.New(svc, log)
	h.RegisterRoutes(router)
	router.Group(func(r chi.Router) {
		r.Use(handler.AdminToken(cfg.AdminToken))
		h.RegisterAdmin(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("registry listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

// buildStores selects durable postgres stores when a DSN is configured and
// in-memory stores otherwise.
func buildStores(ctx context.Context, cfg config.Config, log *slog.Logger) (ports.MemberStore, ports.CountryStore, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Info("using in-memory stores")
		return member.New(), country.New(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	members := member.NewPostgres(db)
	countries := country.NewPostgres(db)
	if err := members.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if err := countries.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	log.Info("using postgres stores")
	return members, countries, func() { db.Close() }, nil
}

// tokenAuthorizer approves admin mutations that arrived through the admin
// token middleware. The transport already rejected unauthenticated callers,
// so by the time the service consults the gate the operator is vouched for.
type tokenAuthorizer struct{}

func (tokenAuthorizer) IsAuthorized(context.Context) bool { return true }
