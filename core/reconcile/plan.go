package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"netbox-sync/core/object"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildPlan builds the mutation plan for the current inventory state.
// It does NOT execute actions; use ApplyPlan for that.
func BuildPlan(inv Inventory) *ReconcilePlan {
	plan := &ReconcilePlan{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Actions:   []Action{},
		Prune:     []PruneCandidate{},
	}

	reg := inv.Registry()
	for _, t := range reg.Types() {
		sc := reg.MustLookup(t)
		for _, e := range inv.All(t) {
			plan.Summary.TotalObjects++
			key := e.DisplayName(true)

			if unset := e.PendingUnset(); len(unset) > 0 && !e.IsNew() {
				plan.Actions = append(plan.Actions, Action{
					Type:       ActionUnset,
					ObjectType: t,
					Key:        key,
					RemoteID:   e.RemoteID(),
					Attributes: unset,
					Reason:     "marked for deletion",
					Entity:     e,
				})
				plan.Summary.Unsets++
			}

			switch {
			case e.IsNew():
				plan.Actions = append(plan.Actions, Action{
					Type:       ActionCreate,
					ObjectType: t,
					Key:        key,
					Attributes: setAttributes(e),
					Reason:     "new object",
					Entity:     e,
				})
				plan.Summary.Creates++

			case len(e.Changed()) > 0:
				changed := dedup(e.Changed())
				plan.Actions = append(plan.Actions, Action{
					Type:       ActionUpdate,
					ObjectType: t,
					Key:        key,
					RemoteID:   e.RemoteID(),
					Attributes: changed,
					Reason:     "changed: " + strings.Join(changed, ", "),
					Entity:     e,
				})
				plan.Summary.Updates++

			case len(e.PendingUnset()) == 0:
				plan.Summary.Unchanged++
			}

			if sc.Prune && !e.IsNew() && e.Source() == nil {
				plan.Prune = append(plan.Prune, PruneCandidate{ObjectType: t, Key: key, RemoteID: e.RemoteID()})
				plan.Summary.PruneCandidates++
			}
		}
	}

	return plan
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, plan *ReconcilePlan, inv Inventory, mutator Mutator, opts ReconcileOptions) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if plan == nil || mutator == nil {
		return 0, fmt.Errorf("%w: plan and mutator are required", object.ErrInvalidArgument)
	}

	log := zap.L().With(zap.String("run_id", plan.RunID))
	reg := inv.Registry()

	type pending struct {
		entity *object.Entity
		attrs  []string
	}
	var deferred []pending

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		e := action.Entity
		if e == nil {
			continue
		}
		sc := reg.MustLookup(action.ObjectType)

		switch action.Type {
		case ActionUnset:
			if err := mutator.Unset(ctx, sc, e.RemoteID(), action.Attributes); err != nil {
				return executed, fmt.Errorf("failed to unset %s %q: %w", sc.Name, action.Key, err)
			}
			executed++

		case ActionCreate:
			payload, missing := e.Payload(setAttributes(e))
			id, err := mutator.Create(ctx, sc, payload)
			if err != nil {
				return executed, fmt.Errorf("failed to create %s %q: %w", sc.Name, action.Key, err)
			}
			if err := inv.AssignRemoteID(e, id); err != nil {
				return executed, err
			}
			log.Info("Created object", zap.String("object_type", sc.Name), zap.String("object", action.Key), zap.Int("id", id))
			if len(missing) > 0 {
				deferred = append(deferred, pending{entity: e, attrs: missing})
			}
			executed++

		case ActionUpdate:
			payload, missing := e.Payload(action.Attributes)
			if len(payload) > 0 {
				if err := mutator.Update(ctx, sc, e.RemoteID(), payload); err != nil {
					return executed, fmt.Errorf("failed to update %s %q: %w", sc.Name, action.Key, err)
				}
				log.Info("Updated object", zap.String("object_type", sc.Name), zap.String("object", action.Key), zap.Strings("attributes", keys(payload)))
				executed++
			}
			if err := inv.AssignRemoteID(e, e.RemoteID()); err != nil {
				return executed, err
			}
			if len(missing) > 0 {
				deferred = append(deferred, pending{entity: e, attrs: missing})
			}
		}
	}

	for _, p := range deferred {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		sc := p.entity.Schema()
		payload, missing := p.entity.Payload(p.attrs)
		if len(missing) > 0 {
			log.Error("Unable to resolve references, attributes not written",
				zap.String("object_type", sc.Name),
				zap.String("object", p.entity.DisplayName(true)),
				zap.Strings("attributes", missing))
		}
		if len(payload) == 0 {
			continue
		}
		if err := mutator.Update(ctx, sc, p.entity.RemoteID(), payload); err != nil {
			return executed, fmt.Errorf("failed to update %s %q: %w", sc.Name, p.entity.DisplayName(true), err)
		}
		executed++
	}

	return executed, nil
}

// PlanAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func PlanAndApply(ctx context.Context, inv Inventory, mutator Mutator, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan := BuildPlan(inv)
	executed, err := ApplyPlan(ctx, plan, inv, mutator, opts)
	return plan, executed, err
}

// setAttributes returns the attributes holding a value, in schema order.
func setAttributes(e *object.Entity) []string {
	var names []string
	for _, name := range e.Schema().Names() {
		if e.Get(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

func dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
