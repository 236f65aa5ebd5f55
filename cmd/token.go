package cmd

import (
	"context"
	"fmt"
	"time"

	"storefront/core/config"
	"storefront/core/database"
	"storefront/core/logger"
	"storefront/feature/token"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tokenConnectionName string
	tokenValidityDays   int
)

// tokenCmd is the parent command for credential administration.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage warehouse sync credentials",
	Long:  `Issue, list, revoke and delete the API tokens the warehouse uses to call the sync gateway.`,
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new sync credential",
	Long: `Issue a signed credential for a warehouse connection and print the token string.

The token string is shown exactly once; store it on the warehouse side.`,
	RunE: runTokenIssue,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued credentials and their status",
	RunE:  runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Toggle the revoked flag on a credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a credential record",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDelete,
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenConnectionName, "connection", "Warehouse", "Connection name recorded with the credential")
	tokenIssueCmd.Flags().IntVar(&tokenValidityDays, "days", 30, "Validity period in days from now")

	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
	RootCmd.AddCommand(tokenCmd)
}

// tokenService builds the credential service from configuration the same
// way the server does.
func tokenService() (*token.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Server.TokenSecret == "" {
		return nil, nil, fmt.Errorf("SERVER_TOKEN_SECRET must be set")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	issuer := token.NewIssuer(db, cfg.Server.AppID, cfg.Server.TokenSecret, cfg.Server.TokenMaxValidityDays, l)
	return token.NewService(db, issuer, l), l, nil
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	svc, l, err := tokenService()
	if err != nil {
		return err
	}

	expiration := time.Now().UTC().AddDate(0, 0, tokenValidityDays)
	record, err := svc.Issuer().Issue(context.Background(), expiration, tokenConnectionName)
	if err != nil {
		return fmt.Errorf("failed to issue credential: %w", err)
	}

	l.Info("Credential issued",
		zap.Int("id", record.ID),
		zap.String("connection_name", record.ConnectionName),
		zap.Time("expires_at", record.ExpiresAt))
	fmt.Println(record.Token)
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	svc, _, err := tokenService()
	if err != nil {
		return err
	}

	records, err := svc.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	now := time.Now().UTC()
	for _, record := range records {
		fmt.Printf("%d\t%s\t%s\texpires %s\n",
			record.ID,
			record.ConnectionName,
			record.Status(now),
			record.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	svc, l, err := tokenService()
	if err != nil {
		return err
	}

	record, err := svc.ToggleRevoked(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle credential: %w", err)
	}

	l.Info("Credential toggled",
		zap.Int("id", record.ID),
		zap.Bool("revoked", record.Revoked))
	return nil
}

func runTokenDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	svc, l, err := tokenService()
	if err != nil {
		return err
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	l.Info("Credential deleted", zap.Int("id", id))
	return nil
}

func parseID(raw string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid credential id %q", raw)
	}
	return id, nil
}
