// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rusage converts resource-usage reports into a table and analyzes
// that table.
//
// Usage:
//
//	rusage csv [-o out.csv] [--buffered] [--category hash=label]... root
//	rusage summary [--format text|csv|html] [--raw] [--payload n] table.csv
//	rusage heatmap --const-a col [--value-a v] --const-b col [--value-b v] --metric m [--dir graphs] table.csv
//
// The csv command reads every report under root. Reports are the
// output of GNU time -v, stored as root/<hash>/<version>_<thread>_<segment_size>_<iteration>.
// With --buffered, file names carry a buffer size after the segment
// size. Reports that cannot be read are reported on stdout and
// skipped.
//
// The summary command prints the mean resource usage of every
// (version, thread, segment_size) configuration.
//
// The heatmap command pins two of version, thread, segment_size and
// buffer_size and draws the metric over the other two. An unset value
// draws one heatmap per distinct value. The metric may be a column or
// an arithmetic expression over columns, such as
// "usr_time / wall_clock". Each heatmap is written to the output
// directory, along with grid.png holding all of them.
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/rusage/rusagefmt"
	"golang.org/x/rusage/rusageplot"
	"golang.org/x/rusage/rusagetab"
	"gonum.org/v1/plot"
)

func main() {
	log.SetPrefix("rusage: ")
	log.SetFlags(0)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := newRootCmd(logger).Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "rusage",
		Short: "Convert and analyze resource-usage reports",
		Long: `Rusage converts a tree of resource-usage reports into a CSV table,
summarizes that table, and draws heatmaps from it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCSVCmd(logger),
		newSummaryCmd(),
		newHeatmapCmd(logger),
	)
	return root
}

func newCSVCmd(logger *slog.Logger) *cobra.Command {
	var (
		output     string
		buffered   bool
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "csv [flags] root",
		Short: "Convert a tree of reports into a CSV table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := rusagefmt.DefaultCategories()
			for _, c := range categories {
				hash, label, ok := strings.Cut(c, "=")
				if !ok || hash == "" || label == "" {
					return fmt.Errorf("bad --category %q: want hash=label", c)
				}
				cats = cats.With(hash, label)
			}
			tree := &rusagefmt.Tree{Root: args[0], Categories: cats}
			if buffered {
				tree.Schema = rusagefmt.BufferedSchema
			}

			skip := func(err error) {
				var path string
				if e, ok := err.(rusagefmt.Entry); ok {
					path = e.Pos()
				}
				logger.Info("skipping report", slog.String("path", path), slog.String("error", err.Error()))
			}
			n, err := rusagefmt.ConvertFile(tree, output, skip)
			if err != nil {
				return err
			}
			logger.Info("wrote table", slog.String("path", output), slog.Int("rows", n))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "rusage.csv",
		"Write the table to `file`")
	flags.BoolVar(&buffered, "buffered", false,
		"Report file names include a buffer size")
	flags.StringArrayVar(&categories, "category", nil,
		"Add a `hash=label` category; may be repeated")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var (
		format  string
		raw     bool
		payload float64
	)

	cmd := &cobra.Command{
		Use:   "summary [flags] table.csv",
		Short: "Print mean resource usage per configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "csv", "html":
			default:
				return fmt.Errorf("unknown format %q: want text, csv or html", format)
			}
			t, err := rusagetab.LoadFile(args[0])
			if err != nil {
				return err
			}
			s, err := rusagetab.Summarize(t, payload)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				return s.WriteCSV(out)
			case "html":
				return s.WriteHTML(out, raw)
			}
			return s.WriteText(out, raw)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&format, "format", "text",
		"Output format: text, csv or html")
	flags.BoolVar(&raw, "raw", false,
		"Print exact values instead of scaled ones")
	flags.Float64Var(&payload, "payload", rusagetab.DefaultPayload,
		"Data moved per run, for the bandwidth column")
	return cmd
}

func newHeatmapCmd(logger *slog.Logger) *cobra.Command {
	var (
		q   rusagetab.Query
		dir string
	)

	cmd := &cobra.Command{
		Use:   "heatmap [flags] table.csv",
		Short: "Draw heatmaps of a metric over two configuration columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rusagetab.LoadFile(args[0])
			if err != nil {
				return err
			}
			grid, err := rusagetab.Heatmaps(t, q)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := os.MkdirAll(dir, 0o777); err != nil {
				return err
			}

			plots := make([][]*plot.Plot, len(grid))
			for i, row := range grid {
				for _, m := range row {
					pl, err := rusageplot.Heatmap(m)
					if err != nil {
						return err
					}
					path := rusageplot.FileName(dir, m.Title)
					if err := rusageplot.Save(pl, path); err != nil {
						return err
					}
					logger.Info("wrote heatmap", slog.String("title", m.Title), slog.String("path", path))
					plots[i] = append(plots[i], pl)
				}
			}
			if len(plots) == 0 {
				return errors.New("no heatmaps")
			}
			path := filepath.Join(dir, "grid.png")
			if err := rusageplot.Grid(plots, path); err != nil {
				return err
			}
			logger.Info("wrote grid", slog.String("path", path))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&q.ConstA, "const-a", "",
		"First pinned `column`, one of version, thread, segment_size, buffer_size")
	flags.StringVar(&q.ValueA, "value-a", "",
		"Value of the first pinned column (default every value)")
	flags.StringVar(&q.ConstB, "const-b", "",
		"Second pinned `column`")
	flags.StringVar(&q.ValueB, "value-b", "",
		"Value of the second pinned column (default every value)")
	flags.StringVar(&q.Metric, "metric", "",
		"Column or arithmetic `expression` to draw")
	flags.StringVar(&dir, "dir", "graphs",
		"Write images to `directory`")
	cmd.MarkFlagRequired("const-a")
	cmd.MarkFlagRequired("const-b")
	cmd.MarkFlagRequired("metric")
	return cmd
}
