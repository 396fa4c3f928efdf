package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ganot/tempus-mcp/internal/config"
	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/forecast"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/ganot/tempus-mcp/internal/export"
	"github.com/ganot/tempus-mcp/internal/localstore"
	"github.com/ganot/tempus-mcp/internal/mcp"
	"github.com/ganot/tempus-mcp/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("TEMPUS_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := sqlite.NewKV(db)
	timeLogRepo := localstore.NewTimeLogStore(kv)
	projectRepo := localstore.NewProjectStore(kv)
	eventRepo := localstore.NewEventLogStore(kv)
	alertRepo := localstore.NewAlertStore(kv)
	timerStateRepo := localstore.NewTimerStateStore(kv)
	selectionRepo := localstore.NewSelectionStore(kv)

	eventSvc := event.NewService(eventRepo, logger)
	timeLogSvc := timelog.NewService(timeLogRepo, eventSvc, logger)
	projectSvc := project.NewService(projectRepo, timeLogSvc, eventSvc, project.Thresholds{
		Warning:  cfg.Tracking.BudgetWarning,
		Exceeded: cfg.Tracking.BudgetExceeded,
	}, logger)
	alertSvc := alert.NewService(alertRepo, projectSvc, logger)
	forecastSvc := forecast.NewService(projectSvc, timeLogSvc, forecast.Options{
		HistoryDays:         cfg.Forecast.HistoryDays,
		HorizonDays:         cfg.Forecast.HorizonDays,
		MovingAverageWindow: cfg.Forecast.MovingAverageWindow,
		IncreasingThreshold: cfg.Forecast.IncreasingThreshold,
		StableThreshold:     cfg.Forecast.StableThreshold,
	}, logger)
	exporter := export.NewExporter(forecastSvc)

	if err := projectSvc.Seed(ctx, project.DefaultProjects(time.Now())); err != nil {
		logger.Error("failed to seed projects", "error", err)
		os.Exit(1)
	}

	timerSvc := timer.NewService(ctx, timerStateRepo, selectionRepo, timeLogSvc, projectSvc, eventSvc, alertSvc, timer.SystemClock(), timer.Options{
		StaleThreshold:    cfg.Tracking.StaleThreshold,
		IdleThreshold:     cfg.Tracking.IdleThreshold,
		TickInterval:      cfg.Tracking.TickInterval,
		IdleCheckInterval: cfg.Tracking.IdleCheckInterval,
	}, logger)

	go timerSvc.Run(ctx, "system")

	resolver := &apiUserResolver{db: db}
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Timer:     timerSvc,
			Projects:  projectSvc,
			TimeLogs:  timeLogSvc,
			Events:    eventSvc,
			Alerts:    alertSvc,
			Forecasts: forecastSvc,
			Export:    exporter,
		},
		Resolver:      resolver,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, cancel, logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}

	// Persist a running timer before the process goes away.
	timerSvc.OnSuspendHint(context.Background())
}

func runStdioMode(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}

type apiUserResolver struct {
	db *sqlite.DB
}

func (r *apiUserResolver) ResolveUser(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var username string
	err := r.db.QueryRowContext(ctx, `SELECT username FROM api_users WHERE token_hash = ?`, hash).Scan(&username)
	if err != nil || username == "" {
		return "", fmt.Errorf("unauthorized: invalid token")
	}
	go r.db.ExecContext(context.WithoutCancel(ctx), `UPDATE api_users SET last_used = CURRENT_TIMESTAMP WHERE token_hash = ?`, hash)
	return username, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
