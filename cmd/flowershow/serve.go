package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/flowershow/flowershow/internal/api"
	"github.com/flowershow/flowershow/internal/content"
	"github.com/flowershow/flowershow/internal/metrics"
	"github.com/flowershow/flowershow/internal/sitemap"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the navigation API and rebuild on content changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Port = servePort
		}
		log := newLogger(cfg, os.Stdout)
		ctx := cmd.Context()

		builder, err := sitemap.NewBuilder(cfg.Locale)
		if err != nil {
			return err
		}

		indexer := content.NewIndexer(cfg.ContentDir, cfg.Exclude, log)
		orch := content.NewOrchestrator(indexer, content.Options{
			Watch:    cfg.Watch,
			Debounce: cfg.RebuildDebounce,
		}, log)
		orch.OnRebuild(func(index *content.Index, err error) {
			if err != nil || cfg.SearchIndex == "" {
				return
			}
			if werr := content.WriteSearchIndex(cfg.SearchIndex, index.Records()); werr != nil {
				log.Warn("write search index", "path", cfg.SearchIndex, "error", werr)
			}
		})

		srv := api.NewServer(orch, builder, metrics.New(Version), metrics.NewBuildStats(time.Hour), log, cfg)
		if err := orch.Start(ctx); err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		done := make(chan struct{})
		go func() {
			defer close(done)
			<-ctx.Done()
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting flowershow",
			"port", cfg.Port,
			"content_dir", cfg.ContentDir,
			"watch", cfg.Watch,
			"locale", builder.Locale(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			orch.Stop()
			return err
		}
		<-done
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (overrides port)")
	rootCmd.AddCommand(serveCmd)
}
