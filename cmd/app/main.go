package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealdelivery/cmd"
	"mealdelivery/internal/adapters/out/postgres/migrations"
	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	advanceOnce := flag.Bool("advance-once", false, "run one order status batch and exit")
	flag.Parse()

	configs, err := cmd.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrate(ctx, configs.DSN()); err != nil {
		zapLogger.Fatal("Can not migrate database", zap.Error(err))
	}

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		zapLogger.Fatal("Can not connect to database", zap.Error(err))
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, zapLogger)
	if err != nil {
		zapLogger.Fatal("Can not build application", zap.Error(err))
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			zapLogger.Warn("Can not release adapters", zap.Error(closeErr))
		}
	}()

	if *advanceOnce {
		runBatch(ctx, app, zapLogger)
		return
	}

	if err = run(ctx, app, configs.HTTPPort, zapLogger); err != nil {
		zapLogger.Error("Application terminated with error", zap.Error(err))
	}
}

func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.Up(ctx, db)
}

func runBatch(ctx context.Context, app *cmd.CompositionRoot, logger *zap.Logger) {
	handler := app.CreateAdvanceOrderStatusesCommandHandler()
	report, err := handler.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())
	if err != nil {
		logger.Error("Order status batch failed", zap.Error(err))
		return
	}

	logger.Info("Order status batch finished",
		zap.Int("advanced", report.Advanced),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
}

// run serves HTTP and the scheduled jobs until ctx is canceled.
func run(ctx context.Context, app *cmd.CompositionRoot, port string, logger *zap.Logger) error {
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := app.CreateRouter()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
