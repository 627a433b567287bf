package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/basket-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/basket-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/basket-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/basket-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/core/services"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// configDir is overridden in tests.
var configDir = ""

// bootstrap wires the driven adapters behind the core services.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	var configStore driven.ConfigStore
	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore)

	if opts.Ephemeral {
		logger.Debug("using in-memory store")
		return &cli.Services{
			Items:      services.NewItemService(memory.NewItemStore()),
			Settings:   settingsService,
			ConfigPath: configStore.Path(),
		}, nil
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		dataDir = settings.Storage.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	logger.Debug("using store at %s", store.Path())

	return &cli.Services{
		Items:      services.NewItemService(store.ItemStore()),
		Settings:   settingsService,
		Watcher:    watcher.New(store.Path()),
		Store:      store,
		ConfigPath: configStore.Path(),
		Close:      store.Close,
	}, nil
}
