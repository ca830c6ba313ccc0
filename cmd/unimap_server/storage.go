package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/internal/catalog/gormstore"
	"github.com/unimap/globe/internal/catalog/memory"
	"github.com/unimap/globe/internal/config"
)

func createCatalogBackend(storageCfg config.StorageConfig, zlog zerolog.Logger) (catalog.Backend, error) {
	switch storageCfg.Type {
	case "gorm":
		Logger.Info("Database catalog backend initialized")
		return gormstore.New(zlog, storageCfg.SQLite.Path), nil

	default:
		Logger.Info("Memory catalog backend initialized")
		return memory.New(), nil
	}
}

// seedCatalog loads the seed file into the backend. A missing seed file is
// not an error; the catalog starts empty and fills through the API.
func seedCatalog(backend catalog.Backend, seedPath string) {
	if seedPath == "" {
		return
	}
	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		Logger.Warn("Seed file not found, starting with empty catalog", "path", seedPath)
		return
	}

	seed, err := catalog.LoadSeed(seedPath)
	if err != nil {
		Logger.Error("Failed to load seed file", "error", err, "path", seedPath)
		return
	}
	if err := catalog.ApplySeed(backend, seed); err != nil {
		Logger.Error("Failed to apply seed data", "error", err)
		return
	}
	Logger.Info("Catalog seeded", "universities", len(seed.Universities), "mentors", len(seed.Mentors))
}
