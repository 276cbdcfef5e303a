package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"code-analyzer/internal/handler"
	"code-analyzer/internal/metrics"
	"code-analyzer/internal/scanner"
	"code-analyzer/internal/server"
	"code-analyzer/internal/service"
	"code-analyzer/pkg/logger"
)

// ServeCmd represents the serve command
type ServeCmd struct {
	Addr      string `help:"HTTP server address, overrides the configuration file"`
	Pprof     bool   `help:"Enable pprof profiling"`
	PprofAddr string `help:"pprof server address" default:"localhost:6060"`
}

// Run executes the serve command and blocks until SIGINT or SIGTERM.
func (cmd *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	appLogger := ctx.Logger
	appLogger.Info("OS: %s, Arch: %s, App: %s, Version: %s, Starting...", osName, archName, appName, version)

	appMetrics := metrics.New()
	fileScanner := scanner.NewFileScanner(appLogger, &scanner.ScannerConfig{
		FolderIgnorePatterns: cfg.Scan.FolderIgnorePatterns,
		FileIgnorePatterns:   cfg.Scan.FileIgnorePatterns,
		MaxFileSizeKB:        cfg.Analyzer.MaxFileSizeKB,
		MaxFileCount:         cfg.Analyzer.MaxFileCount,
	})
	resolveService := service.NewResolveService(cfg.Analyzer, fileScanner, appMetrics, appLogger)
	resolveHandler := handler.NewResolveHandler(resolveService, version, appLogger)
	httpServerInstance := server.NewServer(cfg.Server, resolveHandler, appMetrics, appLogger)

	if cmd.Pprof {
		setupPprof(cmd.PprofAddr, appLogger)
	}

	// Start HTTP server
	httpErrChan := make(chan error, 1)
	go func() {
		if err := httpServerInstance.Start(); err != nil {
			httpErrChan <- err
		}
		close(httpErrChan)
	}()

	// 等待一小段时间检查HTTP服务器是否启动成功
	select {
	case err := <-httpErrChan:
		if err != nil {
			appLogger.Error("HTTP server failed to start: %v", err)
			return err
		}
	case <-time.After(2 * time.Second):
		appLogger.Info("HTTP server started successfully on %s", cfg.Server.Addr)
	}

	// Handle system signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-signals:
		appLogger.Info("received shutdown signal, shutting down gracefully...")
	case err := <-httpErrChan:
		if err != nil {
			appLogger.Error("HTTP server stopped: %v", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServerInstance.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error: %v", err)
		return err
	}
	appLogger.Info("server has been successfully closed")
	return nil
}

func memStatsHandler(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(memStats)
}

func setupPprof(addr string, appLogger logger.Logger) {
	go func() {
		pprofMux := http.NewServeMux()
		pprofMux.HandleFunc("/debug/pprof/", pprof.Index)
		pprofMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		pprofMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		pprofMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		pprofMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		pprofMux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
		pprofMux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
		pprofMux.Handle("/debug/pprof/memStats", http.HandlerFunc(memStatsHandler))

		appLogger.Info("pprof server starting on %s", addr)
		if err := http.ListenAndServe(addr, pprofMux); err != nil && err != http.ErrServerClosed {
			appLogger.Error("pprof server error: %v", err)
		}
	}()
}
