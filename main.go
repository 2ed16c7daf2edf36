package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"student-dashboard-backend/internal/amqp"
	"student-dashboard-backend/internal/cache"
	"student-dashboard-backend/internal/config"
	"student-dashboard-backend/internal/logger"
	"student-dashboard-backend/internal/reminders"
	"student-dashboard-backend/internal/wellness"
)

func main() {
	migrateCmd := flag.Bool("migrate", false, "Apply database migrations and exit")
	seedDemoCmd := flag.Bool("seed-demo", false, "Seed demo transactions, tasks, reminders and attendance (idempotent)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New()
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.Setup(cfg.LogFormat, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	if *migrateCmd {
		if err := setupDatabase(ctx, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		log.Info().Msg("Migration completed successfully")
		return
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer st.Close()

	var appCache *cache.Cache
	if cfg.RedisURL == "" {
		appCache = cache.New(nil)
	} else if rdb, err := initRedis(ctx, cfg.RedisURL); err != nil {
		log.Warn().Err(err).Msg("Continuing without Redis cache")
		appCache = cache.New(nil)
	} else {
		defer rdb.Close()
		appCache = cache.New(rdb)
	}

	if *seedDemoCmd {
		if err := seedDemoData(ctx, st, appCache, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("Seeding demo data failed")
		}
		log.Info().Msg("Demo data seeded")
		return
	}

	var notifier reminders.Notifier = reminders.LogNotifier{}
	if cfg.AMQPURL != "" {
		pub, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Warn().Err(err).Msg("AMQP unavailable, reminder notifications will only be logged")
		} else {
			defer pub.Close()
			notifier = pub
		}
	}

	assessor := wellness.NewGenAIAssessor(cfg.GeminiAPIKey, cfg.GeminiModel)
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, wellness assessments are disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := NewServer(st, appCache, assessor)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(srv, log, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	scanner := reminders.NewScanner(st, notifier, cfg.ReminderScanInterval)

	if err := run(ctx, log, httpServer, scanner); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Shutdown complete")
}

// run serves HTTP and scans reminders until ctx is cancelled, then drains
// the server.
func run(ctx context.Context, log zerolog.Logger, httpServer *http.Server, scanner *reminders.Scanner) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return scanner.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
