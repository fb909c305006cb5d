package main

import (
	"fmt"
	"os"

	"github.com/flowershow/flowershow/internal/parser"
	"github.com/flowershow/flowershow/internal/toc"
	"github.com/spf13/cobra"
)

var (
	tocScrollY        []float64
	tocViewportOffset float64
)

type sectionSample struct {
	ScrollY  float64 `json:"scroll_y"`
	Section  *string `json:"section"`
	Scrolled bool    `json:"scrolled"`
}

var tocCmd = &cobra.Command{
	Use:   "toc <file>",
	Short: "Print the table of contents of a document",
	Long: `Print the headings and nested outline of a document as JSON.

Each --scroll-y value is fed to a section tracker in order, and the
active section for every sample is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := cliLogger(cfg)

		path := args[0]
		p, err := parser.ForFile(path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		tree, err := p.Parse(f, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		headings := tree.Headings()

		out := map[string]any{
			"title":    tree.Title,
			"headings": orEmpty(headings),
			"outline":  orEmpty(toc.Outline(headings)),
		}

		if len(tocScrollY) > 0 {
			offset := cfg.ViewportOffset
			if cmd.Flags().Changed("viewport-offset") {
				offset = tocViewportOffset
			}
			tracker := toc.NewTracker(offset)
			tracker.OnChange(func(id string, ok bool) {
				log.Debug("section changed", "id", id, "active", ok)
			})
			tracker.SetHeadings(headings)

			samples := make([]sectionSample, 0, len(tocScrollY))
			for _, y := range tocScrollY {
				s := sectionSample{ScrollY: y}
				if id, ok := tracker.Observe(y); ok {
					s.Section = &id
				}
				s.Scrolled = tracker.Scrolled()
				samples = append(samples, s)
			}
			out["sections"] = samples
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func init() {
	tocCmd.Flags().Float64SliceVar(&tocScrollY, "scroll-y", nil, "scroll positions to resolve, in order")
	tocCmd.Flags().Float64Var(&tocViewportOffset, "viewport-offset", 0, "anchor offset (overrides viewport_offset)")
	rootCmd.AddCommand(tocCmd)
}
