package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerkv/internal/adapter/http/dto"
)

const getRetries = 3

// apiError is a non-2xx response from the server.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, truncate(e.Body, 200))
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	defaultURL := os.Getenv("LEDGERKV_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	rootCmd := &cobra.Command{
		Use:           "ledgerkv-cli",
		Short:         "ledgerkv CLI tool",
		Long:          `A command line interface for interacting with the ledgerkv API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", defaultURL, "Base URL of the ledgerkv API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	client := func() *apiClient {
		return &apiClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
	}

	rootCmd.AddCommand(
		addCmd(client),
		removeCmd(client),
		getCmd(client),
		sumCmd(client),
		balanceCmd(client),
		entriesCmd(client),
		clearCmd(client),
		reconcileCmd(client),
	)

	return rootCmd
}

func addCmd(client func() *apiClient) *cobra.Command {
	var id, entryContext string

	cmd := &cobra.Command{
		Use:   "add <account> <currency> <amount>",
		Short: "Add an entry to a ledger",
		Long:  "Add an entry to a ledger. Put negative amounts after -- so they are not read as flags.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = ulid.Make().String()
			}

			body := map[string]string{
				"id":      id,
				"context": entryContext,
				"amount":  args[2],
			}

			var entry dto.EntryResponse
			if err := client().do(cmd.Context(), http.MethodPost, ledgerPath(args[0], args[1], "entries"), body, &entry); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Entry ID (generated when empty)")
	cmd.Flags().StringVar(&entryContext, "context", "default", "Context tag for the entry")

	return cmd
}

func removeCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account> <currency> <id>",
		Short: "Remove an entry from a ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := client().do(cmd.Context(), http.MethodDelete, ledgerPath(args[0], args[1], "entries", args[2]), nil, nil)

			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "entry %s not present\n", args[2])
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "entry %s removed\n", args[2])
			return nil
		},
	}
}

func getCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "get <account> <currency> <id>",
		Short: "Show a single entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry dto.EntryResponse
			if err := client().get(cmd.Context(), ledgerPath(args[0], args[1], "entries", args[2]), &entry); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
}

func sumCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "sum <account> <currency>",
		Short: "Print the ledger total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sum dto.SumResponse
			if err := client().get(cmd.Context(), ledgerPath(args[0], args[1], "sum"), &sum); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum.Sum)
			return nil
		},
	}
}

func balanceCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account> <currency>",
		Short: "Show total, per-context totals and entry count",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var balance dto.BalanceResponse
			if err := client().get(cmd.Context(), ledgerPath(args[0], args[1], "balance"), &balance); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balance)
		},
	}
}

func entriesCmd(client func() *apiClient) *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "entries <account> <currency>",
		Short: "List ledger entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client()
			out := cmd.OutOrStdout()
			cursor := "0"

			for {
				query := url.Values{}
				query.Set("cursor", cursor)
				query.Set("limit", strconv.Itoa(limit))

				var page dto.EntryPageResponse
				if err := c.get(cmd.Context(), ledgerPath(args[0], args[1], "entries")+"?"+query.Encode(), &page); err != nil {
					return err
				}

				for _, e := range page.Entries {
					fmt.Fprintf(out, "%-28s %-16s %s %s\n", truncate(e.ID, 28), truncate(e.Context, 16), e.Amount.String(), e.Currency)
				}
				for _, id := range page.Skipped {
					fmt.Fprintf(out, "%-28s (unreadable record skipped)\n", truncate(id, 28))
				}

				if !page.HasMore || !all {
					if page.HasMore {
						fmt.Fprintf(out, "next cursor: %s\n", page.NextCursor)
					}
					return nil
				}
				cursor = page.NextCursor
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Entries per page")
	cmd.Flags().BoolVar(&all, "all", true, "Follow cursors until the scan completes")

	return cmd
}

func clearCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <account> <currency>",
		Short: "Delete a ledger and all its entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().do(cmd.Context(), http.MethodDelete, ledgerPath(args[0], args[1]), nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ledger %s/%s cleared\n", args[0], args[1])
			return nil
		},
	}
}

func reconcileCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <account> <currency>",
		Short: "Check stored aggregates against the entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationResponse
			err := client().get(cmd.Context(), ledgerPath(args[0], args[1], "reconcile"), &report)

			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				if jsonErr := json.Unmarshal([]byte(apiErr.Body), &report); jsonErr == nil {
					_ = printJSON(cmd.OutOrStdout(), report)
				}
				return fmt.Errorf("reconciliation FAILED for %s/%s", args[0], args[1])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Reconciliation PASSED")
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func ledgerPath(account, currency string, parts ...string) string {
	p := "/api/v1/ledgers/" + url.PathEscape(account) + "/" + url.PathEscape(currency)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// get retries transport failures; reads are safe to repeat.
func (c *apiClient) get(ctx context.Context, path string, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond

	return backoff.Retry(func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)

		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, getRetries), ctx))
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
