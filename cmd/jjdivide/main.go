// Command jjdivide runs the jjdivide MCP server.
//
// It communicates over stdio (default) or HTTP using JSON-RPC 2.0 (MCP
// protocol) and exposes commit-division, repository-management, and
// multi-repository coordination tools backed by a local Jujutsu checkout.
//
// Optional environment variables:
//
//	JJDIVIDE_CONFIG              - path to a jjdivide.toml config file
//	JJDIVIDE_TRANSPORT           - "stdio" (default) or "http"
//	JJDIVIDE_PORT, JJDIVIDE_HOST - HTTP listen address (http mode only)
//	JJDIVIDE_LOG_LEVEL           - debug, info, warn, error (default: info)
//	JJDIVIDE_JJ_BINARY           - path to the jj executable (default: "jj")
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jjdivide/internal/config"
	"jjdivide/internal/division"
	"jjdivide/internal/division/strategy"
	"jjdivide/internal/mcp"
	"jjdivide/internal/repo"
	divisiontools "jjdivide/internal/tools/division"
	multirepotools "jjdivide/internal/tools/multirepo"
	repositorytools "jjdivide/internal/tools/repository"
	"jjdivide/internal/vcs/jjexec"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "info" {
		runInfo(os.Args[2:])
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jjdivide: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to jjdivide.toml (default: search JJDIVIDE_CONFIG, ./jjdivide.toml, ~/.config/jjdivide/jjdivide.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	logger.Info("starting jjdivide",
		"version", version,
		"transport", cfg.Transport.Mode,
		"jj_binary", cfg.VCS.Binary,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := mcp.NewRegistry()

	vcsAdapter := &jjexec.Adapter{
		Binary:  cfg.VCS.Binary,
		Timeout: time.Duration(cfg.VCS.TimeoutSeconds) * time.Second,
	}
	repoManager := repo.New()
	store := division.NewStore()

	defaultOpts := division.Options{
		Strategy:      strategy.DivisionStrategy(cfg.Division.DefaultStrategy),
		Size:          strategy.CommitSizePreference(cfg.Division.DefaultSize),
		MinConfidence: cfg.Division.DefaultMinConfidence,
		MaxCommits:    cfg.Division.DefaultMaxCommits,
	}

	// Register division tools.
	registry.Register(divisiontools.NewProposeWithDefaults(vcsAdapter, store, defaultOpts))
	registry.Register(divisiontools.NewApplyStrategy(store))
	registry.Register(divisiontools.NewRealize(vcsAdapter, store))

	// Register repository manager tools.
	registry.Register(repositorytools.NewAdd(repoManager))
	registry.Register(repositorytools.NewRemove(repoManager))
	registry.Register(repositorytools.NewList(repoManager))
	registry.Register(repositorytools.NewDependencyOrder(repoManager))
	registry.Register(repositorytools.NewSave(repoManager))
	registry.Register(repositorytools.NewLoad(repoManager))

	// Register multi-repository coordination tools.
	registry.Register(multirepotools.NewAnalyze(repoManager, vcsAdapter))
	registry.Register(multirepotools.NewProposeWithDefaults(repoManager, vcsAdapter, defaultOpts))

	server := mcp.NewServer(registry, mcp.ServerInfo{
		Name:    cfg.Server.Name,
		Version: version,
	}, logger)

	if cfg.Transport.Mode == "http" {
		httpServer := mcp.NewHTTPServer(server, cfg.Transport.CORSOrigins, logger)
		addr := cfg.Transport.Host + ":" + cfg.Transport.Port
		logger.Info("listening", "addr", addr)
		return http.ListenAndServe(addr, httpServer.Handler())
	}

	return server.Run(ctx)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
