package command

import (
	"fmt"
	"os"

	"github.com/DataDog/datadog-agent/pkg/util/fxutil"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/gridflow/bmra/config"
	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/ingest"
	"github.com/gridflow/bmra/logger"
	"github.com/gridflow/bmra/records"
	"github.com/gridflow/bmra/store"
	"github.com/gridflow/bmra/units"
)

var logLevel string

// Run executes a given function with dependencies supplied by the ingest DI graph
// `f` must return an error or nothing
// `opts` can be used to supply additional arguments that are not provided by the graph
func Run(f interface{}, opts ...fx.Option) error {
	deps := append(opts, Dependencies()...)
	return fxutil.OneShot(f, deps...)
}

// RunOffline is like Run but without a database.
func RunOffline(f interface{}, opts ...fx.Option) error {
	deps := append(opts, DecoderDependencies()...)
	return fxutil.OneShot(f, deps...)
}

func DecoderDependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			func() *decoder.Decoder {
				return decoder.NewDecoder()
			},
		),
	}
}

func Dependencies() []fx.Option {
	return append(DecoderDependencies(),
		fx.Provide(
			config.NewConfig,
			store.NewConfig,
			store.NewClient,
			store.NewDatabase,
			store.NewTransactor,
			records.NewRepository,
			units.NewRegistry,
			ingest.NewMetrics,
			ingest.NewProcessor,
		),
	)
}

var rootCmd = &cobra.Command{
	Use:   "bmra",
	Short: "Decode and load BMRA market data feed archives",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level
		return os.Setenv("LOG_LEVEL", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "info", "Log Level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
