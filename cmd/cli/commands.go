package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/infrastructure/config"
	"github.com/iho/cashflow/internal/infrastructure/logger"
	"github.com/iho/cashflow/internal/infrastructure/postgres"
)

const tokenEnv = "CASHFLOW_TOKEN"

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func (o *options) client() *apiClient {
	token := o.token
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	return newAPIClient(o.baseURL, token, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "cashflow-cli",
		Short:         "Cashflow CLI tool",
		Long:          `A command line interface for interacting with the Cashflow API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the Cashflow API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token (defaults to $"+tokenEnv+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(opts),
		loginCmd(opts),
		balanceCmd(opts),
		transferCmd(opts),
		historyCmd(opts),
		ledgerCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}

func registerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create a user with a funded account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var user dto.UserResponse
			err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/users", dto.RegisterRequest{
				Username:             args[0],
				Password:             args[1],
				PasswordConfirmation: args[1],
			}, &user, nil)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func loginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TokenResponse
			err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
				Username: args[0],
				Password: args[1],
			}, &resp, nil)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}
}

func balanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the caller's balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.BalanceResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/balance", nil, &resp, nil); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Balance)
			return nil
		},
	}
}

func transferCmd(opts *options) *cobra.Command {
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "transfer <recipient> <value>",
		Short: "Send value to another user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			var headers map[string]string
			if idempotencyKey != "" {
				headers = map[string]string{middleware.IdempotencyKeyHeader: idempotencyKey}
			}

			var tx dto.TransactionResponse
			err = opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
				RecipientUsername: args[0],
				Value:             &value,
			}, &tx, headers)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), tx)
		},
	}

	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	return cmd
}

func historyCmd(opts *options) *cobra.Command {
	var date, typ string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the caller's transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if date != "" {
				query.Set("date", date)
			}
			if typ != "" {
				query.Set("type", typ)
			}

			path := "/api/v1/transactions"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			txs := []dto.TransactionResponse{}
			if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, &txs, nil); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-28s %-28s %-28s %12s  %s\n", "ID", "FROM", "TO", "VALUE", "CREATED")
			for _, tx := range txs {
				fmt.Fprintf(out, "%-28s %-28s %-28s %12s  %s\n",
					truncate(tx.ID, 28), truncate(tx.DebitedAccountID, 28), truncate(tx.CreditedAccountID, 28),
					tx.Value, tx.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typ, "type", "", "cash-in or cash-out")
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ConsistencyResponse
			err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, &report, nil)

			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				fmt.Fprintf(cmd.OutOrStdout(), "Consistency check FAILED\nAccounts: %d\nTotal: %s\nExpected: %s\n",
					report.Accounts, report.TotalBalance, report.Expected)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Consistency check PASSED\nAccounts: %d\nTotal: %s\n",
				report.Accounts, report.TotalBalance)
			return nil
		},
	})

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	newMigrator := func() (*postgres.Migrator, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "cashflow-cli"})
		return postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newMigrator()
				if err != nil {
					return err
				}
				return m.Up()
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newMigrator()
				if err != nil {
					return err
				}
				return m.Down()
			},
		},
	)

	return cmd
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
