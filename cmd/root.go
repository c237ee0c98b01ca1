package cmd

import (
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	logLevel string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "momo-sms",
	Short: "Parse mobile-money SMS backups and serve the transaction API",
	Long: `momo-sms extracts structured transactions from mobile-money SMS backup
XML files and serves them through a CRUD and dashboard API backed by SQLite.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "momo.db", "SQLite database path")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
