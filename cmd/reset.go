package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"storefront/core/config"
	"storefront/core/database"
	"storefront/core/logger"
	"storefront/core/storage"
	"storefront/feature/sync"

	"github.com/spf13/cobra"
)

var resetYes bool

// resetCmd wipes the store locally, the same operation the warehouse can
// trigger through the API before a full re-upload.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all sales items and purchase history",
	Long: `Deletes every sales item and every purchase record from the store and
purges stored item pictures. A sync session of type 'reset' is recorded.

Examples:
  # Interactive (asks for confirmation)
  storefront reset

  # Non-interactive
  storefront reset --yes`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Auto-confirm the wipe (non-interactive)")
	RootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !confirmReset() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var store storage.Client
	if cfg.Storage.Enabled {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc, err := sync.NewService(db, store, cfg.Storage.Bucket, cfg.Storage.PicturePrefix, cfg.Server.WarehouseName, l)
	if err != nil {
		return fmt.Errorf("failed to initialize sync service: %w", err)
	}

	if err := svc.ResetStore(context.Background()); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	l.Info("Store reset complete")
	return nil
}

// confirmReset prompts the user for confirmation or uses the --yes flag.
func confirmReset() bool {
	if resetYes {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("Type 'yes' to delete all sales items and purchase history: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == "yes"
}
