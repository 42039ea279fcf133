package api

import (
	"github.com/medialog/medialog-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	User      *service.UserService
	Catalog   *service.CatalogService
	List      *service.ListService
	Stats     *service.StatsService
	Reconcile *service.ReconcileService
}
