// cmd/server/commands.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Annany2002/cafe-api/api"
	"github.com/Annany2002/cafe-api/config"
	"github.com/Annany2002/cafe-api/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:           "cafe-api",
	Short:         "Cafe & Wi-Fi REST API",
	Long:          `HTTP service listing cafes, with HTML pages for browsers and JSON for API clients.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the cafe table if it does not exist, then exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port, overrides SERVER_PORT")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	customLog.Println("Starting Cafe API server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.ServerPort = port
	}

	// 2. Initialize Cafe Database Connection
	db, err := storage.ConnectCafeDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cafe database: %w", err)
	}
	defer func() {
		customLog.Println("Closing cafe database connection...")
		if err := db.Close(); err != nil {
			customLog.Printf("Error closing cafe database: %v", err)
		}
	}()

	// 3. Setup Router (passing dependencies)
	router, err := api.SetupRouter(db, cfg)
	if err != nil {
		return err
	}

	// 4. Start Server
	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// ConnectCafeDB ensures the schema as part of connecting
	db, err := storage.ConnectCafeDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to migrate cafe database: %w", err)
	}
	defer db.Close()

	customLog.Println("Cafe table is up to date.")
	return nil
}
