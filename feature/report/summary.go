package report

import (
	"netbox-sync/core/reconcile"

	"go.uber.org/zap"
)

const maxShown = 10

// Log writes a readable summary of the plan. Prune candidates are listed
// only when withPrune is set.
func Log(l *zap.Logger, plan *reconcile.ReconcilePlan, withPrune bool) {
	s := plan.Summary
	l.Info("Reconcile report",
		zap.String("run_id", plan.RunID),
		zap.Int("total_objects", s.TotalObjects),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("unsets", s.Unsets),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("prune_candidates", s.PruneCandidates),
	)

	for i, action := range plan.Actions {
		if i == maxShown {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShown))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("object_type", string(action.ObjectType)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}

	if !withPrune {
		return
	}
	for _, p := range plan.Prune {
		l.Info("Prune candidate",
			zap.String("object_type", string(p.ObjectType)),
			zap.String("key", p.Key),
			zap.Int("remote_id", p.RemoteID),
		)
	}
}
