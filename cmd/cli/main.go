package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	token  string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "league-cli",
	Short: "A CLI to interact with the sports-manager server",
	Long: `A command-line interface for making requests to the various endpoints
of the sports-manager API. Most commands need a session token, obtained
with "login" and passed with --token or LEAGUE_TOKEN.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("LEAGUE_TOKEN"), "Session token from the login command")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Suppress notifications and events for this request")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
