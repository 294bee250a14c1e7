// Package cmd contains the scroogecoind demo command, a thin cobra-based
// wrapper around the ledger and chain packages for manual end-to-end
// exercise. Per §4.7 it carries no consensus logic of its own and nothing
// under ledger/ or chain/ imports it.
package cmd

import (
	"os"

	"github.com/scroogecoin/core/util/testutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug bool
	log   *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "scroogecoind",
	Short: "Demo driver for the scroogecoin ledger and chain packages",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = testutil.NewSimpleLogger("scroogecoind", debug)
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug-level logging")
}
