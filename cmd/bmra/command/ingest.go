package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridflow/bmra/config"
	"github.com/gridflow/bmra/ingest"
	"github.com/gridflow/bmra/report"
)

var ingestParams = struct {
	Workers     int
	ReportPath  string
	MetricsPath string
}{}

var ingestCmd = &cobra.Command{
	Use:   "ingest {file|dir}...",
	Args:  cobra.MinimumNArgs(1),
	Short: "Load daily feed files into the database",
	Long:  "The ingest command decodes daily feed files, plain or gzip compressed, and stores the records. Directories are expanded to the files they contain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := expandPaths(args)
		if err != nil {
			return err
		}
		return Run(func(processor ingest.Processor, metrics *ingest.Metrics, cfg *config.Config, logger *zap.SugaredLogger) error {
			return ingestFiles(cmd.Context(), paths, processor, metrics, cfg, logger)
		})
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestParams.Workers, "workers", 0, "Number of files processed concurrently (defaults to BMRA_INGEST_WORKERS)")
	ingestCmd.Flags().StringVar(&ingestParams.ReportPath, "report", "", "Write an xlsx report of the run to this path")
	ingestCmd.Flags().StringVar(&ingestParams.MetricsPath, "metrics-file", "", "Write prometheus metrics of the run to this path")

	rootCmd.AddCommand(ingestCmd)
}

func ingestFiles(ctx context.Context, paths []string, processor ingest.Processor, metrics *ingest.Metrics, cfg *config.Config, logger *zap.SugaredLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	workers := cfg.Workers
	if ingestParams.Workers > 0 {
		workers = ingestParams.Workers
	}

	logger.Infow("starting ingest", "files", len(paths), "workers", workers)
	started := time.Now()
	summaries, err := processor.ProcessFiles(ctx, paths, workers)

	total := ingest.Total(summaries)
	logger.Infow("finished ingest", total.LogFields()...)
	fmt.Printf("Processed %d messages from %d files in %s\n", total.Seen, len(paths), time.Since(started).Round(time.Millisecond))

	if ingestParams.ReportPath != "" {
		if rerr := report.NewReport(summaries, started).Save(ingestParams.ReportPath); rerr != nil {
			logger.Errorw("unable to write report", "path", ingestParams.ReportPath, "error", rerr)
		}
	}
	if ingestParams.MetricsPath != "" {
		if merr := metrics.WriteToTextfile(ingestParams.MetricsPath); merr != nil {
			logger.Errorw("unable to write metrics", "path", ingestParams.MetricsPath, "error", merr)
		}
	}

	return err
}

func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
