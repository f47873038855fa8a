package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hliosone/Permix/internal/audit"
	"github.com/hliosone/Permix/internal/compliance"
	compliancehandler "github.com/hliosone/Permix/internal/compliance/handler"
	httpapi "github.com/hliosone/Permix/internal/http"
	"github.com/hliosone/Permix/internal/ledger"
	"github.com/hliosone/Permix/internal/orderbook"
	"github.com/hliosone/Permix/internal/platform/config"
	"github.com/hliosone/Permix/internal/platform/httpserver"
	"github.com/hliosone/Permix/internal/platform/logger"
	platformmetrics "github.com/hliosone/Permix/internal/platform/metrics"
	platformredis "github.com/hliosone/Permix/internal/platform/redis"
	"github.com/hliosone/Permix/internal/trading"
	tradinghandler "github.com/hliosone/Permix/internal/trading/handler"
	tradingmetrics "github.com/hliosone/Permix/internal/trading/metrics"
	"github.com/hliosone/Permix/internal/verification"
	verificationmetrics "github.com/hliosone/Permix/internal/verification/metrics"
	"github.com/hliosone/Permix/internal/verifier"
	goredis "github.com/redis/go-redis/v9"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	var cacheClient *goredis.Client
	if rdb != nil {
		cacheClient = rdb.Client
		defer rdb.Close()
	}

	// Audit pipeline: services emit into the inbox, the worker drains it
	// into the store and the optional Kafka sink.
	inbox := make(chan audit.Event, 256)
	publisher := audit.NewPublisher(inbox, log)

	var store audit.Store
	if cfg.PostgresDSN != "" {
		pgStore, err := audit.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("audit postgres store failed", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		store = audit.NewMemoryStore()
	}

	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("audit kafka sink failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}

	ledgerClient := ledger.New(cfg.LedgerURL, log)
	verifierClient := verifier.New(cfg.VerifierURL, cfg.VerifierAPIKeyID, cfg.VerifierAPISecret, log)

	bookCache := orderbook.NewCache(cacheClient, cfg.BookCacheTTL)

	tradingService := trading.NewService(ledgerClient, bookCache, publisher, log, tradingmetrics.New())

	flows := compliance.NewFlowRegistry(verifierClient, verification.Config{
		PollInterval: cfg.PollInterval,
		Ceiling:      cfg.SessionCeiling,
	}, log, verificationmetrics.New())
	complianceService := compliance.NewService(ledgerClient, flows, publisher, log)

	router := httpapi.NewRouter(platformmetrics.New(),
		tradinghandler.New(tradingService, log),
		compliancehandler.New(complianceService, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return audit.NewWorker(store, sink, inbox, log).Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting permix", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
