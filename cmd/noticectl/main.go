package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	output  string
	actorID string
)

var rootCmd = &cobra.Command{
	Use:   "noticectl",
	Short: "CLI for the inactivity notice service",
	Long:  `noticectl is a command line interface for managing workspace inactivity notices.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "http://localhost:8080", "notice API URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&actorID, "as-user", "u", "", "Acting user id (sent as X-User-ID)")
}
