package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gcalagenda/internal/models"
	"gcalagenda/pkg/calendar"
	"gcalagenda/pkg/calendar/providers"
	"gcalagenda/pkg/config"
	"gcalagenda/pkg/display"
	"gcalagenda/pkg/query"
)

const defaultConfigPath = "config.yaml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to configuration file")
	version    = flag.Bool("version", false, "Print version information")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

// Version information - can be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	flag.Parse()

	if *version {
		printVersion()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging, *debug)

	if err := run(context.Background(), cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig falls back to built-in defaults when the default config
// file is absent, so a bare checkout runs with credentials.json and
// token.json in the working directory.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	factory := calendar.NewDefaultProviderFactory()
	providers.InitializeBuiltinProviders(factory)

	provider, err := factory.CreateProvider(cfg.Provider.Type)
	if err != nil {
		return fmt.Errorf("failed to create %s calendar provider: %w", cfg.Provider.Type, err)
	}
	provider.SetLogger(logger)

	if err := provider.Initialize(ctx, calendar.Settings{
		CredentialsPath: cfg.Provider.Credentials,
		TokenPath:       cfg.Provider.TokenFile,
		FeedURL:         cfg.Provider.FeedURL,
		CallbackPort:    cfg.Provider.CallbackPort,
	}); err != nil {
		return fmt.Errorf("failed to initialize %s provider: %w", provider.Name(), err)
	}
	defer provider.Close()

	builder := query.NewBuilder(cfg.Query.CalendarID, cfg.Query.MaxResults)
	input := bufio.NewReader(os.Stdin)

	fmt.Println("Choose an option:")
	fmt.Println("1. Fetch all events")
	fmt.Println("2. Fetch events between two dates")

	choice, err := prompt(input, "Enter your choice (1 or 2): ")
	if err != nil {
		return err
	}

	var desc query.Descriptor
	switch choice {
	case "1":
		fmt.Println("Fetching all events...")
		desc = builder.Unbounded()
	case "2":
		startDate, err := prompt(input, "Enter the start date (dd/mm/yyyy): ")
		if err != nil {
			return err
		}
		endDate, err := prompt(input, "Enter the end date (dd/mm/yyyy): ")
		if err != nil {
			return err
		}
		fmt.Printf("Fetching events between %s and %s...\n", startDate, endDate)

		window, err := buildWindow(cfg, startDate, endDate)
		if err != nil {
			return err
		}
		desc = builder.Bounded(window)
	default:
		fmt.Println("Invalid choice!")
		return nil
	}

	raw, err := provider.ListEvents(ctx, desc)
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		return nil
	}

	events, err := models.DisplayAll(raw)
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		return nil
	}

	return display.Render(os.Stdout, events)
}

// buildWindow interprets the supplied dates per configuration: UTC wall
// clock verbatim by default, or a real local-to-UTC conversion when
// use_local_time is set.
func buildWindow(cfg *config.Config, startDate, endDate string) (query.Window, error) {
	if cfg.Query.UseLocalTime {
		return query.BuildWindowIn(startDate, endDate, time.Local)
	}
	return query.BuildWindow(startDate, endDate)
}

func prompt(r *bufio.Reader, msg string) (string, error) {
	fmt.Print(msg)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// setupLogger configures the application logger. Logs go to stderr so
// the event table on stdout stays clean.
func setupLogger(cfg config.LoggingConfig, debugMode bool) *slog.Logger {
	var level slog.Level

	if debugMode {
		level = slog.LevelDebug
	} else {
		switch cfg.Level {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("gcal-agenda %s\n", Version)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Printf("Build Time: %s\n", BuildTime)
}
