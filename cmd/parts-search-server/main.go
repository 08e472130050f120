// Package main provides the parts search server binary.
// The server answers catalog search queries over HTTP and keeps the
// Elasticsearch index in sync with the offers file.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/partsearch/parts-search/internal/brand"
	"github.com/partsearch/parts-search/internal/bus"
	"github.com/partsearch/parts-search/internal/cache"
	"github.com/partsearch/parts-search/internal/classify"
	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/datafile"
	"github.com/partsearch/parts-search/internal/elastic"
	"github.com/partsearch/parts-search/internal/etl"
	"github.com/partsearch/parts-search/internal/pkg/logger"
	"github.com/partsearch/parts-search/internal/search"
	"github.com/partsearch/parts-search/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parts-search-server",
		Short: "Auto parts catalog search server",
		Long: `parts-search-server answers free-form catalog queries over HTTP.

It classifies each query (article code, brand, generic text, URL), builds
an Elasticsearch query tuned for the detected kind, and serves the ranked
results. On startup it loads the manufacturer reference file, prepares the
brand catalog, and optionally imports the offers file into the index.

Examples:
  parts-search-server                          # Start with defaults
  parts-search-server --config config.yaml     # Use a config file
  PARTS_PORT=9090 parts-search-server          # Override via environment`,
		RunE:         runServer,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringP("config", "c", "", "config file path")
	rootCmd.Flags().BoolP("verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("parts-search-server %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("starting parts-search-server", "version", version, "addr", cfg.Address())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, err := bus.New(cfg.Bus, log)
	if err != nil {
		return fmt.Errorf("creating event bus: %w", err)
	}
	defer publisher.Close()

	queryCache := cache.New(cfg.Cache, log)

	es, err := elastic.NewClient(cfg.Elastic)
	if err != nil {
		return fmt.Errorf("creating Elasticsearch client: %w", err)
	}

	// The manufacturer file is required. Without it there is no brand
	// catalog and classification degrades to guesswork.
	brands := brand.NewProvider(func() ([]string, error) {
		path, err := datafile.Ensure(cfg.Data.ManufacturerPath, cfg.Data.ManufacturerURL)
		if err != nil {
			return nil, err
		}
		return datafile.ReadLines(path)
	}, log)
	if err := brands.Init(); err != nil {
		return fmt.Errorf("loading brand catalog: %w", err)
	}
	log.Info("brand catalog ready", "brands", len(brands.BrandIDs()))

	classifier := classify.New(brands)

	if err := elastic.EnsureIndex(ctx, es, cfg.Elastic.Index, cfg.Elastic.MappingPath); err != nil {
		return fmt.Errorf("ensuring index: %w", err)
	}

	importer := etl.NewImporter(es, cfg.Elastic, cfg.Data, brands, publisher, log)
	if cfg.Data.LoadOnStartup {
		indexed, err := importer.ImportIfEmpty(ctx)
		if err != nil {
			log.WithError(err).Warn("initial import failed, continuing with existing index")
		} else if indexed > 0 {
			log.Info("initial import done", "indexed", indexed)
		}
	}

	engine := search.NewElasticEngine(es, cfg.Elastic.Index)
	svc := search.NewService(engine, classifier, queryCache, publisher, log,
		cfg.Search.ResultSize, cfg.Cache.TTL)

	srv := server.New(cfg, svc, importer, brands, es, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return srv.Stop(context.Background())
}
