package reconcile

import (
	"context"
	"time"

	"netbox-sync/core/object"
	"netbox-sync/core/schema"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionUnset deletes attribute values of an existing remote object.
	ActionUnset ActionType = "unset"
	// ActionCreate creates a new remote object.
	ActionCreate ActionType = "create"
	// ActionUpdate writes changed attributes of an existing remote object.
	ActionUpdate ActionType = "update"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// ObjectType is the type of the affected object.
	ObjectType schema.ObjectType `json:"object_type"`

	// Key is the display name of the object including its secondary key.
	Key string `json:"key"`

	// RemoteID is the remote id at planning time, 0 for creates.
	RemoteID int `json:"remote_id,omitempty"`

	// Attributes lists the attributes written or unset.
	Attributes []string `json:"attributes"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Entity is the inventory entity the action applies to.
	Entity *object.Entity `json:"-"`
}

// PruneCandidate is a remote object no source referenced during the pass.
type PruneCandidate struct {
	ObjectType schema.ObjectType `json:"object_type"`
	Key        string            `json:"key"`
	RemoteID   int               `json:"remote_id"`
}

// ReconcilePlan contains planned actions for one pass.
type ReconcilePlan struct {
	// RunID identifies the pass.
	RunID string `json:"run_id"`

	// CreatedAt is the time the plan was built.
	CreatedAt time.Time `json:"created_at"`

	// Actions contains planned mutation operations in execution order.
	Actions []Action `json:"actions"`

	// Prune lists prune candidates. They are reported only.
	Prune []PruneCandidate `json:"prune"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalObjects is the number of entities in the inventory.
	TotalObjects int `json:"total_objects"`

	// Creates counts planned create actions.
	Creates int `json:"creates"`

	// Updates counts planned update actions.
	Updates int `json:"updates"`

	// Unsets counts planned unset actions.
	Unsets int `json:"unsets"`

	// Unchanged counts remote objects without any pending change.
	Unchanged int `json:"unchanged"`

	// PruneCandidates counts objects reported in Prune.
	PruneCandidates int `json:"prune_candidates"`
}

// ReconcileOptions controls whether a plan is executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the user has confirmed the mutations.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

// Inventory is the part of the entity registry the planner needs.
type Inventory interface {
	Registry() *schema.Registry
	All(t schema.ObjectType) []*object.Entity
	AssignRemoteID(e *object.Entity, id int) error
}

// Mutator writes planned changes to the remote side.
type Mutator interface {
	// Create creates an object and returns its remote id.
	Create(ctx context.Context, sc *schema.Schema, payload map[string]any) (int, error)

	// Update writes payload to an existing object.
	Update(ctx context.Context, sc *schema.Schema, id int, payload map[string]any) error

	// Unset clears the given attributes of an existing object.
	Unset(ctx context.Context, sc *schema.Schema, id int, attrs []string) error
}
