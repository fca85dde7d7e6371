// Command selectctl is the CLI client for selectiond, mirroring
// cmd/ocean's root-command/sub-command cobra layout (including a
// PersistentPreRun that ensures the datadir exists and a formatVersion
// helper) but talking to selectiond's HTTP+JSON API instead of a gRPC
// service, since spec §6 scopes the core to a thin boundary with no
// wallet-style RPC surface of its own.
package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	datadir      = btcutil.AppDataDir("selectctl", false)
	initialState = map[string]string{
		"apiserver": "http://localhost:19000",
	}

	rootCmd = &cobra.Command{
		Use:   "selectctl",
		Short: "CLI for selectiond",
		Long:  "This CLI lets you drive a running selectiond instance's coin-selection engine",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if _, err := os.Stat(datadir); os.IsNotExist(err) {
				os.Mkdir(datadir, os.ModeDir|0755)
			}
		},
		Version: formatVersion(),
	}
)

func init() {
	rootCmd.AddCommand(configCmd, selectCmd, bnbCmd, explainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatVersion() string {
	return fmt.Sprintf("\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date)
}
