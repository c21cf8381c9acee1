package access

import (
	"context"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

type grantKey struct {
	Kind     platform.GrantKind
	EntityID string
}

// Change is a single server mutation required to reach the desired
// grant state.
type Change struct {
	Kind     platform.GrantKind
	EntityID string
	// Grant is true for a grant call, false for a revoke call.
	Grant bool
}

// String renders the change the way the dry-run output shows it.
func (c Change) String() string {
	verb := "revoke"
	if c.Grant {
		verb = "grant"
	}
	return fmt.Sprintf("%s %s %s", verb, KindLabel(c.Kind), c.EntityID)
}

// Editor accumulates grant toggles against a baseline snapshot of a
// user's grants. Toggles are intents, not calls: the change set is
// computed by diffing the desired state against the baseline, so
// toggling an entity on and then off again nets zero changes.
type Editor struct {
	userID   string
	baseline map[grantKey]bool
	desired  map[grantKey]bool
}

// NewEditor snapshots the user's current grants as the baseline.
func NewEditor(user *platform.User) *Editor {
	e := &Editor{
		userID:   user.ID,
		baseline: make(map[grantKey]bool),
		desired:  make(map[grantKey]bool),
	}
	e.reset(user)
	return e
}

func (e *Editor) reset(user *platform.User) {
	e.userID = user.ID
	e.baseline = make(map[grantKey]bool)
	for _, g := range Grants(user) {
		e.baseline[grantKey{Kind: g.Kind, EntityID: g.EntityID}] = g.Active
	}
	e.desired = make(map[grantKey]bool, len(e.baseline))
	for k, v := range e.baseline {
		e.desired[k] = v
	}
}

// UserID returns the ID of the user being edited.
func (e *Editor) UserID() string {
	return e.userID
}

// Active reports the desired (post-toggle) state of a grant. Entities
// absent from the baseline default to inactive.
func (e *Editor) Active(kind platform.GrantKind, entityID string) bool {
	return e.desired[grantKey{Kind: kind, EntityID: entityID}]
}

// Toggle flips the desired state of a grant. The last intent wins.
func (e *Editor) Toggle(kind platform.GrantKind, entityID string) {
	key := grantKey{Kind: kind, EntityID: entityID}
	e.desired[key] = !e.desired[key]
}

// Set records an explicit desired state for a grant.
func (e *Editor) Set(kind platform.GrantKind, entityID string, active bool) {
	e.desired[grantKey{Kind: kind, EntityID: entityID}] = active
}

// Dirty reports whether any change would be applied.
func (e *Editor) Dirty() bool {
	return len(e.Changes()) > 0
}

// Changes computes the minimal change set: one entry per grant whose
// desired state differs from the baseline, ordered by kind then entity
// ID so output and application order are deterministic.
func (e *Editor) Changes() []Change {
	var changes []Change
	for key, want := range e.desired {
		if e.baseline[key] != want {
			changes = append(changes, Change{
				Kind:     key.Kind,
				EntityID: key.EntityID,
				Grant:    want,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Kind != changes[j].Kind {
			return kindRank(changes[i].Kind) < kindRank(changes[j].Kind)
		}
		return changes[i].EntityID < changes[j].EntityID
	})

	return changes
}

func kindRank(kind platform.GrantKind) int {
	for i, k := range kindOrder {
		if k == kind {
			return i
		}
	}
	return len(kindOrder)
}

// Apply issues one API call per change, stopping at the first failure,
// then refetches the user so the baseline reflects what the server
// actually holds. The refetched user is returned for display.
func (e *Editor) Apply(ctx context.Context, api *platform.Client) (*platform.User, error) {
	var applyErr error
	for _, change := range e.Changes() {
		var err error
		if change.Grant {
			err = api.GrantAccess(ctx, e.userID, change.Kind, change.EntityID)
		} else {
			err = api.RevokeAccess(ctx, e.userID, change.Kind, change.EntityID)
		}
		if err != nil {
			applyErr = errors.Wrap(errors.ErrCodeGrantApplyFailed,
				fmt.Sprintf("failed to %s", change), err)
			break
		}
	}

	user, fetchErr := api.GetUser(ctx, e.userID)
	if fetchErr != nil {
		if applyErr != nil {
			return nil, applyErr
		}
		return nil, fetchErr
	}
	e.reset(user)

	return user, applyErr
}
