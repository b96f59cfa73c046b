package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/finder"
	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/internal/queryio"
	"github.com/sells-group/profile-finder/internal/store"
)

var (
	batchInput    string
	batchOutput   string
	batchFormat   string
	batchWorkers  int
	batchLimit    int
	batchDelay    float64
	batchSemantic bool
	batchQuiet    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve a file of people concurrently",
	Long: `Reads queries from a CSV, XLSX, JSON or YAML file, resolves them on a
bounded worker pool, and writes one result per query in input order.

CSV and XLSX files take name, company, job_title and keywords columns, either
by header or in that order. Keywords are separated by ";".

Examples:
  profile-finder batch --input people.csv --output results.csv --format csv
  profile-finder batch --input people.xlsx --workers 5 --delay 2`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		format := queryio.Format(batchFormat)
		if format != queryio.FormatJSON && format != queryio.FormatCSV {
			return eris.Errorf("batch: --format must be json or csv, got %q", batchFormat)
		}

		queries, err := queryio.ReadFile(ctx, batchInput)
		if err != nil {
			return eris.Wrap(err, "batch: read input")
		}
		if batchLimit > 0 && len(queries) > batchLimit {
			queries = queries[:batchLimit]
		}

		applyFinderFlags(cmd, cfg)
		if cmd.Flags().Changed("workers") {
			cfg.Finder.MaxWorkers = batchWorkers
		}

		env, err := initFinder(ctx, cfg, "batch")
		if err != nil {
			return err
		}
		defer env.Close()

		var progress finder.ProgressFunc
		if !batchQuiet {
			progress = progressPrinter(cmd.ErrOrStderr())
		}

		results, runErr := processBatch(ctx, env, queries, progress)

		out := cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrap(err, "batch: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if err := queryio.WriteResults(out, format, queryio.Pair(queries, results)); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "input file (.csv, .xlsx, .json, .yaml)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (default stdout)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "output format: json or csv")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "max concurrent resolutions (default from config)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of queries to process (0 = all)")
	batchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress output")
	addFinderFlags(batchCmd, &batchDelay, &batchSemantic)
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// processBatch resolves queries on the environment's worker pool and, when a
// store is configured, records the batch as a run. On interruption it returns
// the partial results together with the context error.
func processBatch(ctx context.Context, env *finderEnv, queries []model.Query, progress finder.ProgressFunc) ([]model.SearchResult, error) {
	if len(queries) == 0 {
		zap.L().Info("no queries to process")
		return nil, nil
	}

	zap.L().Info("processing batch",
		zap.Int("queries", len(queries)),
		zap.Int("workers", env.Options.MaxWorkers),
	)

	run := startRun(ctx, env.Store, queries)

	var opts []finder.SchedulerOption
	if progress != nil {
		opts = append(opts, finder.WithProgress(progress))
	}
	results := finder.NewScheduler(env.Resolver, env.Options.MaxWorkers, opts...).Run(ctx, queries)

	if run != nil {
		if err := env.Store.CompleteRun(context.WithoutCancel(ctx), run.ID, results); err != nil {
			zap.L().Warn("batch: record run results", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	found := model.CountFound(results)
	fields := []zap.Field{
		zap.Int("found", found),
		zap.Int("not_found", len(results)-found),
	}
	if run != nil {
		fields = append(fields, zap.String("run_id", run.ID))
	}
	zap.L().Info("batch complete", fields...)

	if ctx.Err() != nil {
		return results, eris.Wrap(ctx.Err(), "batch interrupted")
	}
	return results, nil
}

func startRun(ctx context.Context, st store.Store, queries []model.Query) *model.Run {
	if st == nil {
		return nil
	}
	run, err := st.CreateRun(ctx, queries)
	if err != nil {
		zap.L().Warn("batch: record run", zap.Error(err))
		return nil
	}
	return run
}

// progressPrinter writes one line per finished query.
func progressPrinter(w io.Writer) finder.ProgressFunc {
	return func(done, total, index int, result model.SearchResult) {
		status := "found"
		if !result.Success {
			status = string(result.Error)
		}
		_, _ = fmt.Fprintf(w, "[%d/%d] #%d %s\n", done, total, index+1, status)
	}
}
