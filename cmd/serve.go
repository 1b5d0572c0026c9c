package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"netbox-sync/core/loader"
	"netbox-sync/core/logger"
	"netbox-sync/core/middleware/auth"
	"netbox-sync/core/middleware/rayid"
	"netbox-sync/core/object"
	"netbox-sync/core/reconcile"
	"netbox-sync/feature/inspect"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveSource string

// serveCmd serves the loaded inventory read-only.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merged inventory over HTTP",
	Long:  `Loads the snapshot and the source file, then serves objects and the pending plan read-only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		sourceFile := serveSource
		if sourceFile == "" {
			sourceFile = cfg.Sync.SourceFile
		}
		inv, _, err := loadInventory(ctx, cfg, l, sourceFile)
		if err != nil {
			if errors.Is(err, object.ErrInvalidDiscriminator) {
				l.Fatal("Invalid polymorphic relation, aborting", zap.Error(err))
			}
			return err
		}

		plans := reconcile.NewPlanCache(cfg.Server.PlanCacheTTL(), func() (*reconcile.ReconcilePlan, error) {
			return reconcile.BuildPlan(inv), nil
		})

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// rayid first so every later log line carries the id
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			rl := logger.WithRayID(l, c)
			rl.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				rl.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health"}}))

		mgr := loader.NewManager()
		mgr.Register(inspect.NewFeature(inv, plans, l))
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			l.Info("Starting server", zap.String("addr", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				l.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		l.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveSource, "source", "", "Source file (defaults to sync.source_file)")
	RootCmd.AddCommand(serveCmd)
}
