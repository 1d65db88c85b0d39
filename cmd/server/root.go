package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dice-tracker",
	Short: "Shared dice table for a physical dice-pool board game",
	Long: `dice-tracker keeps the authoritative state of a table's dice (pool, muster,
monster slots, exhausted, banished) and streams it to every viewer over websockets.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
}
