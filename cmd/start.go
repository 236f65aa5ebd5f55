package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/core/config"
	"storefront/core/database"
	"storefront/core/loader"
	"storefront/core/logger"
	"storefront/core/middleware/auth"
	"storefront/core/middleware/rayid"
	"storefront/core/storage"

	"storefront/feature/catalog"
	"storefront/feature/sync"
	"storefront/feature/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Storefront Warehouse Sync API
// @version 1.0
// @description API for synchronizing store inventory with the warehouse.
// @host localhost:8080
// @BasePath /

// requiredColumns lists the columns each table must carry for the sync
// engine to operate. Checked once at startup so a drifted schema fails
// loudly instead of mid-batch.
var requiredColumns = map[string][]string{
	"sales_items":      {"id", "code", "name", "vendor_name", "price_per_unit", "units_in_stock", "last_updated"},
	"purchase_history": {"id", "purchase_code", "salesitem_code", "requires_sync"},
	"api_tokens":       {"id", "token", "expires_at", "revoked"},
	"sync_history":     {"id", "connection_type", "timestamp_start", "timestamp_end"},
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storefront sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if cfg.Server.TokenSecret == "" {
			logg.Fatal("SERVER_TOKEN_SECRET must be set; refusing to start without a signing secret")
		}

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to store database", zap.String("database", cfg.Database.Name))

		// Schema drift check
		for table, columns := range requiredColumns {
			missing, err := database.MissingColumns(db, table, columns)
			if err != nil {
				logg.Fatal("Failed to inspect table", zap.String("table", table), zap.Error(err))
			}
			if len(missing) > 0 {
				logg.Fatal("Table is missing required columns",
					zap.String("table", table),
					zap.Strings("columns", missing))
			}
		}

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			ok, err := store.BucketExists(context.Background(), cfg.Storage.Bucket)
			if err != nil {
				logg.Fatal("Failed to probe storage bucket", zap.Error(err))
			}
			if !ok {
				logg.Fatal("Storage bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
			}
			logg.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
		} else {
			logg.Info("Object storage disabled, picture checks and purges are skipped")
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		adminGuard := auth.New(auth.Config{ApiKey: cfg.Server.ApiKey})

		tokenFeature := token.NewFeature(db, cfg.Server.AppID, cfg.Server.TokenSecret, cfg.Server.TokenMaxValidityDays, logg, adminGuard)
		tokenGuard := token.RequireValid(tokenFeature.Validator())

		syncFeature, err := sync.NewFeature(db, store, cfg.Storage.Bucket, cfg.Storage.PicturePrefix, cfg.Server.WarehouseName, logg, tokenGuard, adminGuard)
		if err != nil {
			logg.Fatal("Failed to initialize sync feature", zap.Error(err))
		}

		mgr.Register(tokenFeature)
		mgr.Register(catalog.NewFeature(db, store, cfg.Storage.Bucket, cfg.Storage.PicturePrefix, logg))
		mgr.Register(syncFeature)

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
