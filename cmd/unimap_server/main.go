package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/unimap/globe/internal/cache"
	"github.com/unimap/globe/internal/config"
	"github.com/unimap/globe/internal/globe"
	"github.com/unimap/globe/internal/logging"
	intOtel "github.com/unimap/globe/internal/otel"
	"github.com/unimap/globe/internal/server"
	"github.com/unimap/globe/internal/session"
	"github.com/unimap/globe/internal/telemetry"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "unimap_server"
)

// global state
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// RankingCache holds per-discipline ranked lists for the HTTP API
	RankingCache *cache.RankingCache = cache.NewRankingCache()

	SessionStartTime time.Time = time.Now()

	sceneManager *session.Manager
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.ConfigFileName)
	flag.Parse()

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "info", nil, nil)
	Logger = SlogManager.Logger()

	if err := config.Load(*configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logFile := openLogFile()
	// Keep the interface value nil when no file was opened, so downstream
	// nil checks on io.Writer behave.
	var logWriter io.Writer
	if logFile != nil {
		defer logFile.Close()
		logWriter = logFile
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var err error
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logWriter,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
		}
	}

	// Re-setup logging with file output, optional OTel, and live session
	// count stamped on every record.
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logWriter, viper.GetString("logLevel"), otelLogProvider, func() []slog.Attr {
		n := 0
		if sceneManager != nil {
			n = sceneManager.Count()
		}
		return []slog.Attr{slog.Int("sessions", n)}
	})
	Logger = SlogManager.Logger()
	Logger.Info("Starting", "app", AppName, "version", Version, "buildDate", BuildDate)

	// Engagement telemetry; the influx client logs through zerolog.
	zlogWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zlog := zerolog.New(zlogWriter).With().Timestamp().Logger()

	var recorder session.Recorder = session.NopRecorder{}
	var telemetryManager *telemetry.Manager
	var telemetryRecorder *telemetry.Recorder
	if viper.GetBool("influx.enabled") {
		backupPath := logging.LogFilePath(viper.GetString("logsDir"), AppName+"_telemetry", SessionStartTime) + ".gz"
		telemetryManager = telemetry.NewManager(zlog, backupPath)
		if err := telemetryManager.Connect(); err != nil {
			Logger.Warn("Telemetry disabled", "error", err)
			telemetryManager = nil
		} else {
			telemetryRecorder = telemetry.NewRecorder(telemetryManager)
			recorder = telemetryRecorder
		}
	}

	// Catalog backend and seed data.
	storageCfg := config.GetStorageConfig()
	backend, err := createCatalogBackend(storageCfg, zlog)
	if err != nil {
		Logger.Error("Failed to create catalog backend", "error", err)
		os.Exit(1)
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize catalog backend", "error", err)
		os.Exit(1)
	}
	seedCatalog(backend, storageCfg.SeedPath)

	// Scene sessions.
	globeCfg := config.GetGlobeConfig()
	sceneCfg := session.DefaultConfig()
	sceneCfg.Focus = globe.FocusConfig{
		FocusDuration:  globeCfg.FocusDuration,
		ResetDuration:  globeCfg.ResetDuration,
		EntityAltitude: globeCfg.EntityAltitude,
		RegionAltitude: globeCfg.RegionAltitude,
	}
	sceneManager = session.NewManager(backend, recorder, sceneCfg, Logger)

	e := server.New(backend, RankingCache, sceneManager)

	serverCfg := config.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", serverCfg.Host, serverCfg.Port)
	go func() {
		Logger.Info("Listening", "addr", addr)
		if err := e.Start(addr); err != nil {
			Logger.Info("Server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sceneManager.Close()
	if err := e.Shutdown(shutdownCtx); err != nil {
		Logger.Warn("HTTP shutdown error", "error", err)
	}
	if telemetryRecorder != nil {
		telemetryRecorder.Close()
	}
	if telemetryManager != nil {
		if err := telemetryManager.Close(); err != nil {
			Logger.Warn("Telemetry close error", "error", err)
		}
	}
	if err := backend.Close(); err != nil {
		Logger.Warn("Catalog close error", "error", err)
	}
	if err := SlogManager.Flush(shutdownCtx); err != nil {
		Logger.Warn("Log flush error", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(shutdownCtx); err != nil {
			Logger.Warn("OTel shutdown error", "error", err)
		}
	}
}

// openLogFile creates the logs directory and session log file. Returns nil
// when the file cannot be created; logging then stays on stdout.
func openLogFile() *os.File {
	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			Logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
			return nil
		}
	}

	path := logging.LogFilePath(logsDir, AppName, SessionStartTime)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", path)
		return nil
	}
	return file
}
