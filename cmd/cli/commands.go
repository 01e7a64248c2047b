package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(sportsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(postStandingsCmd)
	rootCmd.AddCommand(recordResultCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and print a session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auth/login", map[string]string{
			"username": args[0],
			"password": args[1],
		})
	},
}

var sportsCmd = &cobra.Command{
	Use:   "sports",
	Short: "List all sports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/sports", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <sport-id>",
	Short: "Show the standings table of a sport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/sports/"+args[0]+"/standings", nil)
	},
}

var postStandingsCmd = &cobra.Command{
	Use:   "post-standings <sport-id>",
	Short: "Send the standings table of a sport to the notification channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/sports/"+args[0]+"/standings/notify", nil)
	},
}

var recordResultCmd = &cobra.Command{
	Use:   "record-result <match-id> <team1-score> <team2-score>",
	Short: "Record or correct the result of a match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s1, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid team1 score %q: %w", args[1], err)
		}
		s2, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid team2 score %q: %w", args[2], err)
		}
		return performRequest(http.MethodPost, "/matches/"+args[0]+"/result", map[string]int{
			"team1_score": s1,
			"team2_score": s2,
		})
	},
}

func performRequest(method, endpoint string, body any) error {
	url := host + endpoint
	if dryRun {
		url += "?dry_run=true"
	}
	fmt.Printf("Making request to %s %s\n", method, url)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
