package main

import (
	"context"
	"log/slog"

	"github.com/flowershow/flowershow/internal/config"
	"github.com/flowershow/flowershow/internal/content"
	"github.com/flowershow/flowershow/internal/feed"
	"github.com/flowershow/flowershow/internal/sitemap"
	"github.com/spf13/cobra"
)

var (
	sitemapFeed    string
	sitemapCurrent string
	sitemapLocale  string
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print the grouped sitemap as JSON",
	Long: `Print the sidebar sitemap as JSON.

Pages come from the local content folder, or from a published site's
search.json when --feed is given. With --current the group holding that
page is reported as active_group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if sitemapLocale != "" {
			cfg.Locale = sitemapLocale
		}
		log := cliLogger(cfg)

		builder, err := sitemap.NewBuilder(cfg.Locale)
		if err != nil {
			return err
		}
		pages, err := loadPages(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		sm, err := builder.Build(pages)
		if err != nil {
			return err
		}

		out := map[string]any{"sitemap": sm}
		if sitemapCurrent != "" {
			if group, ok := sm.Locate(sitemapCurrent); ok {
				out["active_group"] = group
			}
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func loadPages(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]sitemap.PageRecord, error) {
	if sitemapFeed != "" {
		c := feed.NewClient(sitemapFeed)
		defer c.Close()
		log.Debug("fetching feed", "url", sitemapFeed+feed.IndexPath)
		return c.Pages(ctx)
	}
	index, err := content.NewIndexer(cfg.ContentDir, cfg.Exclude, log).Build(ctx)
	if err != nil {
		return nil, err
	}
	return index.Records(), nil
}

func init() {
	sitemapCmd.Flags().StringVar(&sitemapFeed, "feed", "", "base url of a published site to read search.json from")
	sitemapCmd.Flags().StringVar(&sitemapCurrent, "current", "", "url path of the current page")
	sitemapCmd.Flags().StringVar(&sitemapLocale, "locale", "", "collation locale (overrides locale)")
	rootCmd.AddCommand(sitemapCmd)
}
