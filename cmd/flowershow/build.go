package main

import (
	"fmt"

	"github.com/flowershow/flowershow/internal/content"
	"github.com/spf13/cobra"
)

var (
	buildContentDir string
	buildOut        string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the content folder and write search.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildContentDir != "" {
			cfg.ContentDir = buildContentDir
		}
		if buildOut != "" {
			cfg.SearchIndex = buildOut
		}
		log := cliLogger(cfg)

		index, err := content.NewIndexer(cfg.ContentDir, cfg.Exclude, log).Build(cmd.Context())
		if err != nil {
			return err
		}
		if err := content.WriteSearchIndex(cfg.SearchIndex, index.Records()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", len(index.Pages), cfg.SearchIndex)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildContentDir, "content", "", "content folder (overrides content_dir)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output path (overrides search_index)")
	rootCmd.AddCommand(buildCmd)
}
