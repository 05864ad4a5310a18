package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file (default ./config.yaml or ./config/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listingsCmd)
	rootCmd.AddCommand(nearestCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "energymarket",
	Short: "Client core for the peer-to-peer energy marketplace",
	Long: `energymarket discovers energy listings on the ledger, ranks them for a
browsing user and drives the user's marketplace transactions through the
wallet until the ledger confirms them.

Settings come from the config file and SEM_* environment variables, e.g.
SEM_NETWORK_MARKETPLACE_ID or SEM_LEDGER_RPC_URL.`,
	SilenceUsage: true,
}
