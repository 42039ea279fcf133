package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/medialog/medialog-server/internal/config"
	"github.com/medialog/medialog-server/internal/logger"
	"github.com/medialog/medialog-server/internal/service"
)

// ReconcileJob runs periodic reconciliation passes over every category.
type ReconcileJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *ReconcileJob) Shutdown() error {
	if j.cancel != nil {
		j.cancel()
	}
	return nil
}

// ProvideReconcileJob provides the scheduled reconciliation job. When
// disabled by config it returns an inert handle.
func ProvideReconcileJob(i do.Injector) (*ReconcileJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reconcile := do.MustInvoke[*service.ReconcileService](i)

	if !cfg.Reconcile.Enabled {
		log.Info("Reconciliation job disabled")
		return &ReconcileJob{}, nil
	}

	interval := cfg.Reconcile.Interval
	if interval == 0 {
		interval = 6 * time.Hour
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				reports, err := reconcile.RunAll(ctx)
				if err != nil {
					log.Warn("Scheduled reconciliation failed", "error", err)
					continue
				}
				drift := 0
				for _, r := range reports {
					drift += len(r.Discrepancies)
				}
				log.Info("Scheduled reconciliation completed",
					"categories", len(reports), "discrepancies", drift)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Reconciliation job started", "interval", interval)

	return &ReconcileJob{cancel: cancel}, nil
}
