package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/screenbattle/internal/api"
	"github.com/terraincognita07/screenbattle/internal/cli"
	"github.com/terraincognita07/screenbattle/internal/config"
	"github.com/terraincognita07/screenbattle/internal/db"
	"github.com/terraincognita07/screenbattle/internal/i18n"
	"github.com/terraincognita07/screenbattle/internal/logging"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

const (
	commandServe     = "serve"
	commandInit      = "init"
	commandExport    = "export"
	commandImport    = "import"
	commandRecompute = "recompute"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("screenbattle: %v", err)
	}
}

func run(args []string) error {
	command, rest, err := parseCommand(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	time.Local = cfg.Location

	appLogger, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	store, closeStore, err := db.OpenStore(cfg.StoreDriver, cfg.DataPath, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("store init failed: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn("closing store failed", zap.Error(err))
		}
	}()

	switch command {
	case commandInit:
		return cli.RunInitCommand(store, appLogger, os.Stdout)
	case commandExport:
		return cli.RunExportCommand(store, os.Stdout)
	case commandImport:
		return runImport(cfg, store, appLogger, rest[0])
	case commandRecompute:
		return runRecompute(cfg, store, appLogger)
	default:
		return serve(cfg, store, appLogger)
	}
}

func parseCommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return commandServe, nil, nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case commandServe, commandInit, commandExport, commandRecompute:
		return command, rest, nil
	case commandImport:
		if len(rest) != 1 {
			return "", nil, errors.New("usage: screenbattle import <file|->")
		}
		return command, rest, nil
	default:
		return "", nil, fmt.Errorf("unknown command %q (expected serve, init, export, import or recompute)", command)
	}
}

func serve(cfg config.Config, store db.Store, appLogger *zap.Logger) error {
	if err := db.EnsureInitialized(store, appLogger); err != nil {
		return fmt.Errorf("store seed failed: %w", err)
	}
	if err := checkFixedWeek(cfg, store); err != nil {
		return err
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	queue := services.NewWriteQueue(store, appLogger, services.WriteQueueConfig{Delay: cfg.WriteDelay})
	queue.Start(lifecycleCtx)
	defer queue.Stop()

	game := services.NewGameService(store, queue, weekResolver(cfg), appLogger)
	handler, err := api.NewHandler(game, store, i18nManager, appLogger, cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(cfg, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	appLogger.Info("screen battle listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.String("week_mode", cfg.WeekMode),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runImport(cfg config.Config, store db.Store, appLogger *zap.Logger, source string) error {
	var in io.Reader = os.Stdin
	if source != "-" {
		file, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("open import: %w", err)
		}
		defer file.Close()
		in = file
	}

	queue := services.NewWriteQueue(store, appLogger, services.WriteQueueConfig{Delay: cfg.WriteDelay})
	queue.Start(context.Background())
	defer queue.Stop()
	return cli.RunImportCommand(context.Background(), queue, in, os.Stdout)
}

func runRecompute(cfg config.Config, store db.Store, appLogger *zap.Logger) error {
	if err := db.EnsureInitialized(store, appLogger); err != nil {
		return fmt.Errorf("store seed failed: %w", err)
	}
	if err := checkFixedWeek(cfg, store); err != nil {
		return err
	}

	queue := services.NewWriteQueue(store, appLogger, services.WriteQueueConfig{Delay: cfg.WriteDelay})
	queue.Start(context.Background())
	defer queue.Stop()

	game := services.NewGameService(store, queue, weekResolver(cfg), appLogger)
	return cli.RunRecomputeCommand(context.Background(), game, os.Stdout)
}

// checkFixedWeek rejects a CURRENT_WEEK that the stored game calendar does
// not have.
func checkFixedWeek(cfg config.Config, store db.Store) error {
	if cfg.WeekMode != config.WeekModeFixed {
		return nil
	}

	document, err := store.Load()
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	calendar, err := services.NewGameCalendar(document.GameSettings)
	if err != nil {
		return fmt.Errorf("game calendar: %w", err)
	}
	if _, ok := calendar.Lookup(cfg.CurrentWeek); !ok {
		return fmt.Errorf("CURRENT_WEEK must be between 1 and %d, got %d", calendar.WeekCount(), cfg.CurrentWeek)
	}
	return nil
}

func weekResolver(cfg config.Config) services.WeekResolver {
	if cfg.WeekMode == config.WeekModeClock {
		return services.NewClockWeekResolver(time.Now, cfg.Location)
	}
	return services.FixedWeek(cfg.CurrentWeek)
}

func corsMiddlewareConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language",
	}
}

func newApp(cfg config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Screen Battle",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(corsMiddlewareConfig(cfg.CORSOrigins)))
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
