package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	v1 "github.com/ivrlabs/callstore/api/v1"
	"github.com/ivrlabs/callstore/internal/config"
	"github.com/ivrlabs/callstore/internal/handlers"
	"github.com/ivrlabs/callstore/internal/server"
	"github.com/ivrlabs/callstore/internal/services"
	"github.com/ivrlabs/callstore/internal/store"
)

var version = "v0.1.0"

func main() {
	var (
		configFile string
		port       int
		dataFile   string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:          "callstored",
		Short:        "HTTP service exposing CRUD over workbook-backed call records",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.HTTPPort = port
			}
			if cmd.Flags().Changed("data-file") {
				cfg.Store.DataFile = dataFile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP listen port")
	rootCmd.Flags().StringVar(&dataFile, "data-file", "calls.xlsx", "path to the backing workbook")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (debug|info|warn|error)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Configuration) error {
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	printBanner(cfg)
	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())

	st, err := store.Open(cfg.Store.DataFile)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	callSrv := services.NewCallService(st)

	backupFolder := ""
	if cfg.Backup.Enabled {
		backupFolder = cfg.Backup.Folder
	}
	backupSrv := services.NewBackupService(st, backupFolder, cfg.Backup.Interval, cfg.Backup.Keep)
	backupSrv.Start(ctx)
	defer backupSrv.Stop()

	handler := handlers.New(callSrv, backupSrv)
	srv := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handler)
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	return srv.Stop(context.Background())
}

func buildLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	if cfg.LogFormat == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func printBanner(cfg *config.Configuration) {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("callstored %s\n", version)
	fmt.Printf("  data file: %s\n", cfg.Store.DataFile)
	fmt.Printf("  listening: :%d (%s)\n", cfg.Server.HTTPPort, cfg.Server.Mode)
}
