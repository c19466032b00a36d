package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"homescout/client-app/pkg/adapter"
	"homescout/client-app/pkg/api"
	"homescout/client-app/pkg/cli"
	"homescout/client-app/pkg/config"
	"homescout/client-app/pkg/data"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/session"
	"homescout/client-app/pkg/storage"
)

// bootstrap initializes and runs the application: configuration, logger,
// storage, backend client, data manager, session manager, adapters and
// finally the interactive CLI. Returns an error if any part of the
// initialization or execution fails.
func bootstrap() error {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("Failed to close logger: %v\n", err)
		}
	}()

	ctx := context.Background()
	logger.Info(ctx, "Application started", log.Fields{"backendURL": cfg.BackendURL})

	// Initialize storage
	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}()

	logger.Info(ctx, "Storage initialized", nil)

	// Initialize backend API client
	apiClient := api.NewClient(cfg, logger)

	// Initialize data manager
	dataManager, err := data.NewDataManager(store, apiClient, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}

	logger.Info(ctx, "Data manager initialized", nil)

	// Initialize session manager
	sessionManager := session.NewSessionManager(dataManager, logger)
	defer sessionManager.StopCleanupRoutine()

	logger.Info(ctx, "Session manager initialized", nil)

	// Initialize adapter manager
	adapterManager := adapter.NewAdapterManager(sessionManager, logger)
	defer adapterManager.Shutdown()

	// Initialize cli adapter
	cliAdapter, err := adapter.NewCLIAdapter(adapterManager, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI adapter: %w", err)
	}
	if err := adapterManager.AdapterAdd(cliAdapter); err != nil {
		logger.Error(ctx, "Failed to register CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to register CLI adapter: %w", err)
	}

	logger.Info(ctx, "CLI adapter initialized", nil)

	// Create the CLI
	cliInstance, err := cli.NewCLI(cliAdapter, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(ctx, "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	// Run the CLI
	if err := cliInstance.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("cli error: %w", err)
	}

	logger.Info(ctx, "Application shutting down", nil)
	return nil
}
