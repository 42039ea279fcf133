package providers

import (
	"github.com/samber/do/v2"

	"github.com/medialog/medialog-server/internal/config"
	"github.com/medialog/medialog-server/internal/logger"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/service"
)

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideCatalogService provides the catalog service and wires it to the
// store as the search indexer.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}

// ProvideListService provides the list service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*registry.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewListService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideStatsService provides the stats read service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*registry.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideReconcileService provides the reconciliation service with the
// configured drift tolerance.
func ProvideReconcileService(i do.Injector) (*service.ReconcileService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*registry.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReconcileService(storeHandle.Store, reg, cfg.Reconcile.Tolerance, log.Logger), nil
}
