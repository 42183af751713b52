package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reshadx/reshadx-go"
)

func loginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session tokens",
		Long: `Log in with email and password and print the user and session tokens.

Export the printed access token as RESHADX_ACCESS_TOKEN to use it with
other commands.`,
		Example: `  reshadx login --email ama@example.com --password "$PASSWORD"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(cmd)
			if err != nil {
				return err
			}
			resp, err := client.Auth.Login(cmd.Context(), reshadx.LoginParams{Email: email, Password: password})
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func accountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Read linked accounts",
	}

	var itemID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(cmd)
			if err != nil {
				return err
			}
			accounts, err := client.Accounts.List(cmd.Context(), itemID)
			if err != nil {
				return err
			}
			return a.print(accounts)
		},
	}
	list.Flags().StringVar(&itemID, "item", "", "only accounts of this item")

	balance := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd)
			if err != nil {
				return err
			}
			bal, err := client.Accounts.Balance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(bal)
		},
	}

	cmd.AddCommand(list, balance)
	return cmd
}

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Read transactions",
	}

	var params reshadx.TransactionListParams
	list := &cobra.Command{
		Use:     "list",
		Short:   "List transactions",
		Example: `  reshadx transactions list --account acc_123 --start 2024-01-01 --end 2024-01-31`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(cmd)
			if err != nil {
				return err
			}
			txns, err := client.Transactions.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(txns)
		},
	}
	f := list.Flags()
	f.StringVar(&params.ItemID, "item", "", "filter by item")
	f.StringVar(&params.AccountID, "account", "", "filter by account")
	f.StringVar(&params.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&params.EndDate, "end", "", "end date (YYYY-MM-DD)")
	f.StringSliceVar(&params.Categories, "category", nil, "filter by category (repeatable)")
	f.IntVar(&params.Page, "page", 0, "page number (default 1)")
	f.IntVar(&params.Limit, "limit", 0, "page size (default 50)")

	cmd.AddCommand(list)
	return cmd
}

func creditScoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credit-score",
		Short: "Read credit scores",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the current credit score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(cmd)
			if err != nil {
				return err
			}
			score, err := client.CreditScore.Get(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(score)
		},
	}

	cmd.AddCommand(get)
	return cmd
}

func webhooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Work with webhook deliveries",
	}

	var secret, signature, file string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Verify a webhook delivery and print its payload",
		Long: `Verify the HMAC-SHA256 signature of a webhook delivery body and print the
decoded payload. The body is read from --file, or from stdin when --file is
not given. No API request is made.`,
		Example: `  reshadx webhooks verify --secret "$WEBHOOK_SECRET" --signature 3f1a... --file body.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = a.env.Getenv("RESHADX_WEBHOOK_SECRET")
			}
			if secret == "" {
				return usageErrorf("--secret or RESHADX_WEBHOOK_SECRET is required")
			}

			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			payload := reshadx.ParseWebhookPayload(body, signature, secret)
			if payload == nil {
				return errInvalidSignature
			}
			return a.print(payload)
		},
	}
	verify.Flags().StringVar(&secret, "secret", "", "webhook secret (env: RESHADX_WEBHOOK_SECRET)")
	verify.Flags().StringVar(&signature, "signature", "", "hex signature sent with the delivery")
	verify.Flags().StringVar(&file, "file", "", "file holding the raw delivery body")
	_ = verify.MarkFlagRequired("signature")

	cmd.AddCommand(verify)
	return cmd
}

func readBody(stdin io.Reader, file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return body, nil
}
