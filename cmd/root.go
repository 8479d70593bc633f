package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/moviefare/auth"
	"github.com/mkarlsen/moviefare/cache"
	"github.com/mkarlsen/moviefare/config"
	"github.com/mkarlsen/moviefare/movie"
	"github.com/mkarlsen/moviefare/provider"
	"github.com/mkarlsen/moviefare/server"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviefare",
	Short: "Aggregates two movie catalogs and compares ticket prices",
	Long: `moviefare serves a small HTTP API over the Cinema World and Film World
movie providers: one merged catalog listing, per-movie detail lookups, and a
price comparison that reports which provider sells a given movie cheaper.`,
}

// SetVersion records the build metadata shown by the version command.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the movie fare HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client := provider.NewClient(cfg.Providers.AccessToken, logger,
		provider.WithTimeout(cfg.Providers.Timeout),
		provider.WithMaxRetries(cfg.Providers.MaxRetries),
	)

	fetcher := provider.NewService(client, cache.NewMemory(), provider.Settings{
		CinemaWorldURL:      cfg.Providers.CinemaWorldURL,
		FilmWorldURL:        cfg.Providers.FilmWorldURL,
		CacheTTL:            cfg.Providers.CacheTTL,
		CinemaWorldCacheKey: cfg.Providers.CinemaWorldCacheKey,
		FilmWorldCacheKey:   cfg.Providers.FilmWorldCacheKey,
	}, logger)

	movies := movie.NewService(fetcher, logger)

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	srv := server.New(movies, tokens, server.Options{
		Addr:         cfg.Server.Listen,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		CORSOrigin:   cfg.Server.CORSOrigin,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("version", appVersion).Msg("Starting moviefare")
	return srv.Run(ctx)
}

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("moviefare %s (built %s)\n", appVersion, appBuildTime)
	},
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
