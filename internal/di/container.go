// Package di provides dependency injection configuration for the MediaLog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/medialog/medialog-server/internal/config"
	"github.com/medialog/medialog-server/internal/di/providers"
	"github.com/medialog/medialog-server/internal/logger"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideRegistry)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideListService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideReconcileService)

	// Workers
	do.Provide(injector, providers.ProvideReconcileJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*registry.Registry](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.ListService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*service.ReconcileService](injector)

	// Workers and server
	_ = do.MustInvoke[*providers.ReconcileJob](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
