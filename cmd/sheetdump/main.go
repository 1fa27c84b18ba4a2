// Command sheetdump prints raw spreadsheet ranges for debugging the
// directory's sheet layout.
//
// Usage:
//
//	sheetdump priests
//	sheetdump range "Schools!A:F"
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tagumdiocese/directory/internal/clergy"
	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/repository"
	"github.com/tagumdiocese/directory/internal/sheets"
)

const fetchTimeout = 30 * time.Second

// fetcherFactory builds the range fetcher once flags are parsed.
type fetcherFactory func(ctx context.Context) (sheets.Fetcher, error)

func main() {
	if err := newRootCmd(defaultFetcher).Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultFetcher(ctx context.Context) (sheets.Fetcher, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(ctx, cfg.Sheets, logger.New(cfg.Server.Env))
}

func newRootCmd(newFetcher fetcherFactory) *cobra.Command {
	root := &cobra.Command{
		Use:          "sheetdump",
		Short:        "Print raw ranges from the directory spreadsheet",
		SilenceUsage: true,
	}
	root.AddCommand(newPriestsCmd(newFetcher), newRangeCmd(newFetcher))
	return root
}

func newPriestsCmd(newFetcher fetcherFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "priests",
		Short: "Print every clergy row with its category markers",
		Long: `Reads ` + repository.RangePriests + ` and prints each row's first four
columns, marking the rows detected as category headers and the layout used
for the rows beneath them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := fetch(cmd.Context(), newFetcher, repository.RangePriests)
			if err != nil {
				return err
			}
			return clergy.Inspect(cmd.OutOrStdout(), grid)
		},
	}
}

func newRangeCmd(newFetcher fetcherFactory) *cobra.Command {
	var separator string
	cmd := &cobra.Command{
		Use:   "range <expr>",
		Short: "Print any range as a grid",
		Example: `  sheetdump range "Schools!A:F"
  sheetdump range A:Z --separator ,`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := fetch(cmd.Context(), newFetcher, args[0])
			if err != nil {
				return err
			}
			return printGrid(cmd.OutOrStdout(), grid, separator)
		},
	}
	cmd.Flags().StringVarP(&separator, "separator", "s", " | ", "cell separator")
	return cmd
}

func fetch(ctx context.Context, newFetcher fetcherFactory, rangeExpr string) (sheets.Grid, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	fetcher, err := newFetcher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet client: %w", err)
	}
	grid, err := fetcher.FetchRange(ctx, rangeExpr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rangeExpr, err)
	}
	return grid, nil
}

// printGrid writes one numbered line per row. Multi-line cells are folded
// onto one line.
func printGrid(w io.Writer, grid sheets.Grid, separator string) error {
	if _, err := fmt.Fprintf(w, "Total rows: %d\n", len(grid)); err != nil {
		return err
	}
	for i, row := range grid {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.ReplaceAll(cell, "\n", `\n`)
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", i, strings.Join(cells, separator)); err != nil {
			return err
		}
	}
	return nil
}
