package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/medialog/medialog-server/internal/config"
	"github.com/medialog/medialog-server/internal/logger"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/store"
)

// ProvideRegistry provides the entity registry.
func ProvideRegistry(i do.Injector) (*registry.Registry, error) {
	return registry.New(), nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reg := do.MustInvoke[*registry.Registry](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger, reg)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
