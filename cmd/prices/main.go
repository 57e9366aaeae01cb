package main

import (
	"context"
	"crypto-price-sync/internal/application/services"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/infrastructure/config"
	"crypto-price-sync/internal/infrastructure/console"
	"crypto-price-sync/internal/infrastructure/exchange/coingecko"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"crypto-price-sync/internal/infrastructure/repositories/cache"
	"crypto-price-sync/internal/infrastructure/web/server"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
)

const (
	serviceName = "crypto-price-sync"
	version     = "1.0.0"
)

func main() {
	// .env es opcional; las variables ya exportadas tienen prioridad
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a YAML config file")
	headless := flag.Bool("headless", false, "disable the terminal presenter (HTTP presenter only)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logging.ConfigFromSettings(serviceName, version, cfg.Logging.Environment, cfg.Logging.Level, cfg.Logging.Format)
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *headless); err != nil {
		logging.ErrorWithError(context.Background(), "Application stopped with error", err, nil)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	loader := config.NewLoader()

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = loader.LoadFile(path)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, headless bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logging.WithRequestID(ctx, logging.NewIDGenerator("app").Generate())

	metrics.SetApplicationInfo(version, runtime.Version())

	logging.Info(ctx, "Starting crypto price sync", logging.Fields{
		"cache_backend": cfg.Cache.Backend,
		"assets":        cfg.Source.Assets,
		"server":        cfg.Server.Enabled,
		"headless":      headless,
	})

	backend, err := cache.NewFactory().CreateCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logging.WarnWithError(context.Background(), "Failed to close cache", err, nil)
		}
	}()

	store := cache.NewSnapshotStore(backend, cfg.Cache.Key)
	source := coingecko.NewClientWithConfig(cfg.Source)

	assets := make([]entities.AssetID, 0, len(cfg.Source.Assets))
	for _, asset := range cfg.Source.Assets {
		assets = append(assets, entities.AssetID(asset))
	}

	controller := services.NewSyncController(source, store, assets, cfg.Sync.FetchTimeout)
	defer controller.Close()

	var httpServer *server.Server
	serverErrors := make(chan error, 1)
	if cfg.Server.Enabled {
		httpServer = server.NewServer(server.NewRouter(controller, cfg.Server, version), cfg.Server.Port)
	}

	// El servidor HTTP arranca cuando Initialize ya resolvió el cache, así un
	// refresh remoto no compite con la lectura inicial. Initialize corre aparte
	// para que la terminal muestre el estado de carga.
	go func() {
		controller.Initialize(ctx)
		if httpServer != nil {
			serverErrors <- httpServer.Start()
		}
	}()

	if headless {
		select {
		case <-ctx.Done():
		case err := <-serverErrors:
			if err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
		}
	} else {
		presenter := console.NewPresenter(controller, console.NewRenderer(os.Stdout))
		if err := presenter.Run(ctx, os.Stdin); err != nil {
			return fmt.Errorf("terminal presenter failed: %w", err)
		}
	}

	logging.Info(ctx, "Shutting down", nil)

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Stop(shutdownCtx); err != nil {
			logging.WarnWithError(ctx, "Server forced to shutdown", err, nil)
		}
	}

	return nil
}
