package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

var (
	category string
	refresh  bool
	dryRun   bool
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

func init() {
	rankingCmd.Flags().StringVar(&category, "category", "", "Only rank players of this category")
	rankingCmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached ranking")
	categoriesCmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached ranking")
	challengeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Store the challenge without notifying Slack or publishing events")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(opponentsCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(expireCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the ranked players",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if category != "" {
			query.Set("category", category)
		}
		if refresh {
			query.Set("refresh", "true")
		}
		return performRequest(http.MethodGet, withQuery("/ranking", query), nil)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the ranking grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if refresh {
			query.Set("refresh", "true")
		}
		return performRequest(http.MethodGet, withQuery("/ranking/categories", query), nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show one player's ranked stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+url.PathEscape(args[0])+"/stats", nil)
	},
}

var opponentsCmd = &cobra.Command{
	Use:   "opponents <id>",
	Short: "List the players a player can challenge right now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+url.PathEscape(args[0])+"/opponents", nil)
	},
}

var limitsCmd = &cobra.Command{
	Use:   "limits <id>",
	Short: "Show a player's monthly challenge quota",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+url.PathEscape(args[0])+"/limits", nil)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <challenger> <target>",
	Short: "Check whether a challenge would be allowed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{"challenger": {args[0]}, "target": {args[1]}}
		return performRequest(http.MethodGet, withQuery("/challenges/check", query), nil)
	},
}

var challengeCmd = &cobra.Command{
	Use:   "challenge <challenger> <target>",
	Short: "Create a challenge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if dryRun {
			query.Set("dry_run", "true")
		}
		body := map[string]string{"challenger_id": args[0], "challenged_id": args[1]}
		return performRequest(http.MethodPost, withQuery("/challenges", query), body)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <challenge-id> <status>",
	Short: "Move a challenge to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/challenges/"+url.PathEscape(args[0])+"/status", map[string]string{"status": args[1]})
	},
}

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Expire open challenges from previous months",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/challenges/expire", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func withQuery(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
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
