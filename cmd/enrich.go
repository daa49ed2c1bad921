package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajofficial223/Data-Scraper/internal/config"
	"github.com/ajofficial223/Data-Scraper/internal/table"
)

var (
	enrichInput      string
	enrichOutput     string
	enrichFailureLog string
	enrichPlan       string
	enrichLimit      int
	enrichDryRun     bool
)

// enrichOptions carries command-line overrides for one enrich run.
type enrichOptions struct {
	Input      string
	Output     string
	FailureLog string
	Plan       string
	Limit      int
	DryRun     bool
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a spreadsheet of businesses with contact details",
	Long: `Reads a CSV or XLSX sheet with Business Type, Company Name and Location
columns and fills in website, email, phone, social and owner columns.

Rows without a website are researched through AI search, web search and
search-engine results, then adjudicated and validated. Rows that already
have a website are scraped directly.

Examples:
  # Check the sheet without calling any API
  data-scraper enrich --input firms.csv --dry-run

  # Enrich the first five rows
  data-scraper enrich --input firms.xlsx --limit 5 --output contacts.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runEnrich(cmd.Context(), cmd.OutOrStdout(), cfg, enrichOptions{
			Input:      enrichInput,
			Output:     enrichOutput,
			FailureLog: enrichFailureLog,
			Plan:       enrichPlan,
			Limit:      enrichLimit,
			DryRun:     enrichDryRun,
		})
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "firms.csv", "input sheet (.csv or .xlsx)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output sheet (overrides output.path)")
	enrichCmd.Flags().StringVar(&enrichFailureLog, "failure-log", "", "unparseable reconcile answers (overrides output.failure_log)")
	enrichCmd.Flags().StringVar(&enrichPlan, "plan", "", "web search query plan YAML (overrides search.plan_path)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max rows to process (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "load and check the sheet only")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(ctx context.Context, w io.Writer, c *config.Config, opts enrichOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Output != "" {
		c.Output.Path = opts.Output
	}
	if opts.FailureLog != "" {
		c.Output.FailureLog = opts.FailureLog
	}
	if opts.Plan != "" {
		c.Search.PlanPath = opts.Plan
	}

	tbl, err := table.Load(opts.Input)
	if err != nil {
		return eris.Wrap(err, "enrich: load input")
	}
	if err := tbl.RequireColumns(table.RequiredColumns); err != nil {
		return err
	}

	zap.L().Info("input loaded",
		zap.String("path", opts.Input),
		zap.Int("rows", tbl.Len()),
		zap.Strings("missing_output_columns", tbl.Missing(table.ExpectedColumns)),
	)

	if opts.DryRun {
		withSite := 0
		for i := 0; i < tbl.Len(); i++ {
			if tbl.Get(i, table.ColWebsite) != "" {
				withSite++
			}
		}
		fmt.Fprintf(w, "%s: %d rows, %d to research, %d to scrape\n",
			opts.Input, tbl.Len(), tbl.Len()-withSite, withSite)
		return nil
	}

	env, err := initEnv(ctx, c, uuid.NewString())
	if err != nil {
		return err
	}

	sum := env.Driver.Run(ctx, tbl, opts.Limit)

	saved, err := table.NewWriter().Save(tbl, c.Output.Path)
	if err != nil {
		return eris.Wrap(err, "enrich: save output")
	}
	zap.L().Info("output saved", zap.String("path", saved), zap.String("run_id", env.RunID))

	fmt.Fprintln(w, sum.String())
	fmt.Fprintf(w, "saved %s\n", saved)
	return nil
}
