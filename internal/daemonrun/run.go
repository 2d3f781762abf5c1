package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"shelf/internal/api"
	"shelf/internal/artwork"
	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/daemon"
	"shelf/internal/database"
	"shelf/internal/imagecache"
	"shelf/internal/ipc"
	"shelf/internal/logging"
	"shelf/internal/scraper"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// SocketPath overrides the configured IPC socket location.
	SocketPath string
}

// Run starts the shelf daemon and blocks until the context is canceled or
// the process receives SIGINT/SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	baseLogger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With(logging.String("session_id", uuid.NewString()))

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("open database", logging.Error(err))
		return err
	}

	d, err := daemon.New(cfg, db, NewCatalogService(cfg, db, logger), logger)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return err
	}

	pidPath := cfg.PIDPath()
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	socketPath := opts.SocketPath
	if socketPath == "" {
		socketPath = cfg.SocketPath()
	}
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	logger.Info("shelf daemon ready",
		logging.String(logging.FieldEventType, "daemon_ready"),
		logging.String("socket", socketPath),
		logging.String("database", cfg.DatabasePath()),
		logging.String("api_address", d.APIAddress()),
		logging.Bool("single_flight", cfg.Images.SingleFlight),
	)

	<-signalCtx.Done()
	logger.Info("shelf daemon shutting down")
	return nil
}

// NewCatalogService wires the stores, resolver, and orchestrator behind the
// command surface.
func NewCatalogService(cfg *config.Config, db *database.DB, logger *slog.Logger) *api.CatalogService {
	storeOpts := append([]catalog.Option{catalog.WithLogger(logger)}, catalog.OptionsFromConfig(cfg)...)
	entries := catalog.NewStore(db, storeOpts...)
	images := imagecache.NewStore(db, logger)
	resolver := scraper.NewFromConfig(cfg, logger)
	art := artwork.New(images, resolver, entries,
		artwork.WithLogger(logger),
		artwork.WithSingleFlight(cfg.Images.SingleFlight),
	)
	return api.NewCatalogService(entries, images, art, logger)
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
