package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/feed"
)

var decodeParams = struct {
	FailFast bool
}{}

var decodeCmd = &cobra.Command{
	Use:   "decode {file}",
	Args:  cobra.ExactArgs(1),
	Short: "Decode a feed file and print the messages as JSON",
	Long:  "The decode command prints every decoded message of a feed file as a JSON line. Nothing is written to the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOffline(func(d *decoder.Decoder, logger *zap.SugaredLogger) error {
			return decodeFile(args[0], d, logger)
		})
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeParams.FailFast, "fail-fast", false, "Stop at the first message that cannot be decoded")

	rootCmd.AddCommand(decodeCmd)
}

func decodeFile(path string, d *decoder.Decoder, logger *zap.SugaredLogger) error {
	reader, err := feed.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	encoder := json.NewEncoder(os.Stdout)
	decoded, skipped, failed := 0, 0, 0
	for reader.Next() {
		msg, err := d.Decode(reader.Message())
		switch {
		case err == nil:
			decoded++
			if err := encoder.Encode(msg); err != nil {
				return err
			}
		case errors.IsSkip(err):
			skipped++
		case errors.IsFatal(err) || decodeParams.FailFast:
			return err
		default:
			failed++
			logger.Warnw("unable to decode message", "error", err)
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "decoded %d, skipped %d, failed %d\n", decoded, skipped, failed)
	return nil
}
