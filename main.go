// corner.report serves the corner-detection API: it accepts trajectory
// uploads, finds high-curvature points along them, and keeps every analysis
// run in SQLite so tuning changes can be compared over time.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/corner.report/internal/api"
	"github.com/banshee-data/corner.report/internal/config"
	"github.com/banshee-data/corner.report/internal/track"
	"github.com/banshee-data/corner.report/internal/trackdb"
	"github.com/banshee-data/corner.report/internal/version"
)

var (
	listen        = flag.String("listen", "", "Listen address (overrides config)")
	dbPath        = flag.String("db", "", "SQLite database path (overrides config)")
	configPath    = flag.String("config", "", "Path to tuning config JSON")
	migrationsDir = flag.String("migrations", "", "Migrations directory (overrides config)")
	migrateOnly   = flag.Bool("migrate-only", false, "Run migrations and exit")
)

func main() {
	flag.Parse()
	log.Printf("corner.report %s", version.String())

	cfg := config.EmptyCornerConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadCornerConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	} else if loaded, err := config.LoadCornerConfig(config.DefaultConfigPath); err == nil {
		// Pick up the canonical defaults file when running from the repo
		// root; absent that, the built-in defaults apply.
		cfg = loaded
	}

	addr := cfg.GetListenAddr()
	if *listen != "" {
		addr = *listen
	}
	path := cfg.GetDBPath()
	if *dbPath != "" {
		path = *dbPath
	}
	migrations := cfg.GetMigrationsDir()
	if *migrationsDir != "" {
		migrations = *migrationsDir
	}

	db, err := trackdb.Open(path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.MigrateUp(migrations); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if *migrateOnly {
		version, dirty, err := db.MigrateVersion(migrations)
		if err != nil {
			log.Fatalf("failed to read migration version: %v", err)
		}
		log.Printf("database at migration version %d (dirty=%v)", version, dirty)
		return
	}

	detectorCfg := track.DetectorConfig{
		Window:       cfg.GetWindow(),
		ThresholdDeg: cfg.GetThresholdDeg(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	apiMux := api.NewServer(trackdb.NewStore(db), detectorCfg).ServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	server := &http.Server{
		Addr:    addr,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("corner.report listening on %s (db=%s window=%d threshold=%.1f)",
			addr, path, detectorCfg.Window, detectorCfg.ThresholdDeg)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
