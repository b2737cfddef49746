// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the DownloadHub server application.
// It initializes all dependencies, configures the server, and starts the HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lazycatapps/downloadhub/internal/handler"
	"github.com/lazycatapps/downloadhub/internal/middleware"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/repository"
	"github.com/lazycatapps/downloadhub/internal/router"
	"github.com/lazycatapps/downloadhub/internal/service"
	"github.com/lazycatapps/downloadhub/internal/types"
	"github.com/lazycatapps/downloadhub/internal/web"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the root command for the CLI application.
var rootCmd = &cobra.Command{
	Use:               "downloadhub",
	Short:             "DownloadHub - Software download catalog",
	Long:              `A web service for browsing a software catalog and handing off downloads through a countdown gate.`,
	PersistentPreRunE: loadEnvFile,
	RunE:              runServer,
	SilenceUsage:      true,
}

// init initializes command-line flags and environment variable bindings.
func init() {
	rootCmd.PersistentFlags().String("data-file", "./data/software.json", "Catalog file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().String("env-file", "", "Optional .env file loaded before reading configuration")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("countdown-seconds", 3, "Download gate countdown length in seconds")
	rootCmd.PersistentFlags().Duration("tick-interval", time.Second, "Time between two countdown ticks")

	rootCmd.Flags().String("host", "0.0.0.0", "Server host")
	rootCmd.Flags().IntP("port", "p", 8080, "Server port")
	rootCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")
	rootCmd.Flags().String("site-name", "DownloadHub", "Site name shown in pages and substituted into {{site}}")
	rootCmd.Flags().String("pages-dir", "", "Directory with Markdown pages overriding the built-in ones")
	rootCmd.Flags().Duration("gate-session-ttl", 10*time.Minute, "Lifetime of a download gate session")
	rootCmd.Flags().String("cors-allowed-origins", "*", "Comma-separated CORS allowed origins")

	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.BindPFlags(rootCmd.Flags())

	// Set environment variable prefix to "DOWNLOADHUB"
	viper.SetEnvPrefix("DOWNLOADHUB")
	viper.AutomaticEnv()
	// Replace hyphens with underscores in environment variable names
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(validateCmd, fetchCmd)
}

// loadEnvFile loads --env-file into the process environment so viper sees it.
// Variables already set in the environment win.
func loadEnvFile(cmd *cobra.Command, args []string) error {
	path := viper.GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// loadConfig builds the server configuration from flags and environment.
func loadConfig() *types.Config {
	return &types.Config{
		Server: types.ServerConfig{
			Host:            viper.GetString("host"),
			Port:            viper.GetInt("port"),
			ShutdownTimeout: viper.GetDuration("shutdown-timeout"),
		},
		Site: types.SiteConfig{
			Name: viper.GetString("site-name"),
		},
		Catalog: types.CatalogConfig{
			DataFile: viper.GetString("data-file"),
			PagesDir: viper.GetString("pages-dir"),
		},
		Gate: types.GateConfig{
			CountdownSeconds: viper.GetInt("countdown-seconds"),
			TickInterval:     viper.GetDuration("tick-interval"),
			SessionTTL:       viper.GetDuration("gate-session-ttl"),
		},
		CORS: types.CORSConfig{
			AllowedOrigins: middleware.ParseOrigins(viper.GetString("cors-allowed-origins")),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log-level"),
		},
	}
}

// runServer is the main server execution function.
func runServer(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting DownloadHub server")
	log.Info("=================================")
	log.Info("Site: %s", cfg.Site.Name)
	log.Info("Catalog file: %s", cfg.Catalog.DataFile)
	if cfg.Catalog.PagesDir != "" {
		log.Info("Pages override directory: %s", cfg.Catalog.PagesDir)
	}
	log.Info("Countdown: %d ticks every %s, session TTL %s",
		cfg.Gate.CountdownSeconds, cfg.Gate.TickInterval, cfg.Gate.SessionTTL)
	log.Info("CORS allowed origins: %s", strings.Join(cfg.CORS.AllowedOrigins, ", "))

	// Initialize repositories
	catalogRepo, err := repository.NewFileCatalogRepository(afero.NewOsFs(), cfg.Catalog.DataFile)
	if err != nil {
		log.Error("Failed to load catalog: %v", err)
		return err
	}
	log.Info("Catalog loaded: %d software, %d categories",
		len(catalogRepo.Software()), len(catalogRepo.Categories()))

	pageRepo, err := repository.NewLayeredPageRepository(web.Pages(), cfg.Catalog.PagesDir)
	if err != nil {
		log.Error("Failed to initialize page repository: %v", err)
		return err
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, log)
	pageService := service.NewPageService(pageRepo, cfg.Site.Name, log)
	gateService := service.NewGateService(catalogRepo, repository.NewInMemoryGateSessionRepository(), &cfg.Gate, log)

	// Start gate session sweeper
	gateService.Start()
	defer gateService.Stop()

	// Initialize HTTP handlers
	templates, err := web.Templates(time.Now)
	if err != nil {
		log.Error("Failed to parse templates: %v", err)
		return err
	}

	r := router.New(
		handler.NewCatalogHandler(catalogService, log),
		handler.NewGateHandler(gateService, log),
		handler.NewPageHandler(pageService, log),
		handler.NewSystemHandler(cfg.Site.Name, cfg.Gate.CountdownSeconds),
		handler.NewWebHandler(catalogService, gateService, pageService, cfg.Site.Name, log),
	)
	engine := r.Setup(cfg, templates)

	// Event streams are flushed tick by tick and must not be buffered by gzip
	gzip, err := gzhttp.NewWrapper(gzhttp.ExceptContentTypes([]string{"text/event-stream"}))
	if err != nil {
		log.Error("Failed to initialize gzip middleware: %v", err)
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           gzip(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Closes open event streams so Shutdown does not wait on them
	srv.RegisterOnShutdown(gateService.Stop)

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	log.Info("=================================")
	log.Info("Server listening on %s", addr)
	log.Info("Press Ctrl+C to stop")

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Goodbye!")
	return nil
}

// main is the application entry point.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
