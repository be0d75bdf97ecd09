package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wallet-cli",
		Short: "Credit ledger CLI tool",
		Long:  `A command line interface for interacting with the credit ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the credit ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	summaryCmd := &cobra.Command{
		Use:   "summary <account-id>",
		Short: "Show an account's balances and UAC total",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/balances")
		},
	}
	rootCmd.AddCommand(summaryCmd)

	// Rate commands
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Rate table operations",
	}

	ratesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List active conversion rates",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/rates")
		},
	}

	ratesSetCmd := &cobra.Command{
		Use:   "set <currency> <rate>",
		Short: "Record a new rate version for a currency",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			putJSON("/api/v1/rates/"+args[0], map[string]string{"rate": args[1]})
		},
	}

	ratesCmd.AddCommand(ratesListCmd, ratesSetCmd)
	rootCmd.AddCommand(ratesCmd)

	// Exchange command
	exchangeCmd := &cobra.Command{
		Use:   "exchange <account-id> <from> <to> <amount>",
		Short: "Convert credits between currencies",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/exchanges", map[string]string{
				"account_id":    args[0],
				"from_currency": args[1],
				"to_currency":   args[2],
				"amount":        args[3],
			})
		},
	}
	rootCmd.AddCommand(exchangeCmd)

	// Transfer command
	transferCmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount>",
		Short: "Send UAC to another account",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]string{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          args[2],
			})
		},
	}
	rootCmd.AddCommand(transferCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, payload any) {
	doJSON(http.MethodPost, path, payload)
}

func putJSON(path string, payload any) {
	doJSON(http.MethodPut, path, payload)
}

func doJSON(method, path string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(raw))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && !consistent {
		fmt.Printf("Consistency check FAILED\n")
		if mismatched, ok := result["mismatched"].([]any); ok {
			for _, key := range mismatched {
				fmt.Printf("  mismatched: %v\n", key)
			}
		}
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	fmt.Printf("Status: %s\n", result["status"])
}
