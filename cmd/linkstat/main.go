// cmd/linkstat/main.go
package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/linkstat/internal/status"
)

// version is set by ldflags at build time.
var version = "dev"

func main() {
	var (
		flagConfig  string
		flagVerbose bool
	)

	rootCmd := &cobra.Command{
		Use:     "linkstat",
		Short:   "layered, confidence-degrading link status resolver",
		Long:    "linkstat resolves wireless link and thermal sensor status through a chain of\nprogressively cruder sources and publishes one best-effort snapshot, annotated\nwith how much it should be trusted.",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "linkstat.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the resolver daemon",
		Long: `Runs the resolution pipeline continuously: path-change and permission
triggers coalesce into single resolution runs, the current snapshot is
served over HTTP/WebSocket, runs are appended to the history log, and
connectivity transitions fire webhooks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(flagConfig, flagVerbose)
		},
	}

	onceCmd := &cobra.Command{
		Use:   "once",
		Short: "run one resolution and print the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(flagConfig, flagVerbose)
		},
	}

	var (
		scoreFloor float64
		scoreCeil  float64
	)
	scoreCmd := &cobra.Command{
		Use:   "score <raw-signal>",
		Short: "map a raw signal onto quality, percent and bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("not a number: %q", args[0])
			}
			q := status.Score(raw, scoreFloor, scoreCeil)
			pct := status.Percent(q)
			fmt.Printf("quality=%.3f percent=%d bucket=%s\n", q, pct, status.Bucket(pct))
			return nil
		},
	}
	scoreCmd.Flags().Float64Var(&scoreFloor, "floor", status.DefaultSignalFloor, "valid range floor")
	scoreCmd.Flags().Float64Var(&scoreCeil, "ceil", status.DefaultSignalCeil, "valid range ceiling")

	rootCmd.AddCommand(runCmd, onceCmd, scoreCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("linkstat: %v", err)
	}
}
