package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lotto/api"
	"lotto/cmd/shell"
	"lotto/config"
	"lotto/domain/services"
	"lotto/events"
	"lotto/infrastructure"
	"lotto/infrastructure/observability"
	"lotto/render"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const usage = "usage: lotto [shell|serve|migrate up|down [steps]|status]"

// Run initializes the application and executes the requested subcommand
func Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.Get()
	if err := setupLogging(cfg); err != nil {
		return err
	}

	command := "shell"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "shell":
		return runShell(ctx, cfg, stdin, stdout)
	case "serve":
		return runServer(ctx, cfg)
	case "migrate":
		return runMigration(cfg, args, stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q, %s", command, usage)
	}
}

func runShell(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	store, err := infrastructure.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := newEventBus()
	analyzer := services.NewPatternAnalyzer()

	sh := shell.NewShell(shell.Dependencies{
		Generator: services.NewNumberGenerator(services.NewSecureRandomSource(), analyzer),
		Analyzer:  analyzer,
		History:   services.NewHistoryService(store.Tickets, bus, services.WithSingleGameCost(cfg.SingleGameCost)),
		Heatmap:   render.NewHeatmapImageGenerator(),
		Publisher: bus,
	}, stdin, stdout)
	return sh.Run(ctx)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log.Info("Starting lotto API...")

	store, err := infrastructure.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := newEventBus()
	metrics := observability.NewMetrics()
	metrics.Subscribe(bus)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	analyzer := services.NewPatternAnalyzer()
	server := api.NewServer(api.Dependencies{
		Generator: services.NewNumberGenerator(services.NewSecureRandomSource(), analyzer),
		Analyzer:  analyzer,
		History:   services.NewHistoryService(store.Tickets, bus, services.WithSingleGameCost(cfg.SingleGameCost)),
		Heatmap:   render.NewHeatmapImageGenerator(),
		Metrics:   metrics,
		Publisher: bus,
		Health:    store.Health,
	})

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"backend":     store.Backend,
	}).Info("Services initialized")

	return server.Run(ctx, cfg.HTTPAddr)
}

// newEventBus creates the in-process bus with an audit log subscriber
func newEventBus() *events.Bus {
	bus := events.NewBus()
	for _, eventType := range []events.EventType{
		events.EventTypeTicketSaved,
		events.EventTypeResultRecorded,
		events.EventTypeHistoryCleared,
		events.EventTypeHistoryImported,
	} {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"event":     fmt.Sprintf("%+v", event),
			}).Info("History changed")
		})
	}
	return bus
}

// setupLogging applies the configured level and format to logrus
func setupLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
