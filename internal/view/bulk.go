package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoSelection is returned when an action is dispatched with
	// nothing selected. The action is not invoked.
	ErrNoSelection = errors.New("no items selected")

	// ErrUnknownAction is returned for an action key that is not
	// registered.
	ErrUnknownAction = errors.New("unknown bulk action")

	// ErrNoPendingAction is returned when confirming or cancelling a
	// token that does not match the action awaiting confirmation.
	ErrNoPendingAction = errors.New("no bulk action awaiting confirmation")

	// ErrConfirmationExpired is returned when a confirmation arrives after
	// the dispatcher's TTL.
	ErrConfirmationExpired = errors.New("bulk action confirmation expired")
)

// DefaultConfirmationTTL bounds how long a destructive action waits for
// confirmation.
const DefaultConfirmationTTL = 5 * time.Minute

// ActionFunc applies an action to the given ids.
type ActionFunc func(ctx context.Context, ids []string) error

// Action is a bulk action offered for a selection. Destructive actions
// run only after explicit confirmation.
type Action struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Destructive bool       `json:"destructive"`
	Run         ActionFunc `json:"-"`
}

// Outcome is what a dispatch did.
type Outcome string

const (
	OutcomeExecuted  Outcome = "executed"
	OutcomeFailed    Outcome = "failed"
	OutcomePending   Outcome = "pending_confirmation"
	OutcomeCancelled Outcome = "cancelled"
)

// DispatchResult reports a dispatch, confirmation or cancellation.
// For OutcomePending, Token must be passed to Confirm and Prompt is the
// question to put to the user.
type DispatchResult struct {
	Action  string   `json:"action"`
	Label   string   `json:"label"`
	IDs     []string `json:"ids"`
	Outcome Outcome  `json:"outcome"`
	Token   string   `json:"token,omitempty"`
	Prompt  string   `json:"prompt,omitempty"`
	Err     error    `json:"-"`
}

// Pending is a destructive action awaiting confirmation. IDs are the
// selection at dispatch time.
type Pending struct {
	Token     string    `json:"token"`
	Action    Action    `json:"action"`
	IDs       []string  `json:"ids"`
	CreatedAt time.Time `json:"createdAt"`
}

// Prompt is the confirmation question for the pending action.
func (p Pending) Prompt() string {
	return ConfirmPrompt(p.Action, len(p.IDs))
}

// Dispatcher runs bulk actions against a selection. At most one action
// awaits confirmation at a time; dispatching another destructive action
// replaces it. Safe for concurrent use, though the SelectionSet passed in
// is not.
type Dispatcher struct {
	mu      sync.Mutex
	actions []Action
	pending *Pending
	ttl     time.Duration
	now     func() time.Time
}

// NewDispatcher registers actions. A non-positive ttl uses
// DefaultConfirmationTTL.
func NewDispatcher(ttl time.Duration, actions ...Action) *Dispatcher {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &Dispatcher{
		actions: actions,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Actions returns the registered actions in registration order.
func (d *Dispatcher) Actions() []Action {
	return d.actions
}

// Action looks up an action by key.
func (d *Dispatcher) Action(key string) (Action, bool) {
	i := slices.IndexFunc(d.actions, func(a Action) bool { return a.Key == key })
	if i < 0 {
		return Action{}, false
	}
	return d.actions[i], true
}

// ConfirmPrompt is the confirmation question for running a on n items.
func ConfirmPrompt(a Action, n int) string {
	return fmt.Sprintf("%s %d items?", a.Label, n)
}

// Dispatch applies the action named key to the selected ids.
//
// With nothing selected it returns ErrNoSelection without invoking the
// action. A destructive action is parked as pending and reported with
// OutcomePending. Otherwise the action runs and the selection is cleared,
// whether or not the action succeeded; DispatchResult.IDs keeps the ids it ran on.
func (d *Dispatcher) Dispatch(ctx context.Context, key string, sel *SelectionSet) (DispatchResult, error) {
	action, ok := d.Action(key)
	if !ok {
		return DispatchResult{Action: key}, fmt.Errorf("%w: %s", ErrUnknownAction, key)
	}

	ids := sel.IDs()
	if len(ids) == 0 {
		return DispatchResult{Action: key, Label: action.Label}, ErrNoSelection
	}

	if action.Destructive {
		p := &Pending{
			Token:     uuid.NewString(),
			Action:    action,
			IDs:       ids,
			CreatedAt: d.now(),
		}
		d.mu.Lock()
		d.pending = p
		d.mu.Unlock()

		return DispatchResult{
			Action:  key,
			Label:   action.Label,
			IDs:     ids,
			Outcome: OutcomePending,
			Token:   p.Token,
			Prompt:  ConfirmPrompt(action, len(ids)),
		}, nil
	}

	return d.run(ctx, action, ids, sel)
}

// Confirm runs the pending action identified by token on the ids captured
// at dispatch, then clears the selection. A token is good for one run.
func (d *Dispatcher) Confirm(ctx context.Context, token string, sel *SelectionSet) (DispatchResult, error) {
	p, err := d.take(token)
	if err != nil {
		return DispatchResult{}, err
	}
	if d.now().Sub(p.CreatedAt) > d.ttl {
		return DispatchResult{Action: p.Action.Key, Label: p.Action.Label, IDs: p.IDs}, ErrConfirmationExpired
	}
	return d.run(ctx, p.Action, p.IDs, sel)
}

// Cancel drops the pending action identified by token. The selection is
// left as it was.
func (d *Dispatcher) Cancel(token string) (DispatchResult, error) {
	p, err := d.take(token)
	if err != nil {
		return DispatchResult{}, err
	}
	return DispatchResult{
		Action:  p.Action.Key,
		Label:   p.Action.Label,
		IDs:     p.IDs,
		Outcome: OutcomeCancelled,
	}, nil
}

// Pending returns the action awaiting confirmation, if any.
func (d *Dispatcher) Pending() (Pending, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return Pending{}, false
	}
	return *d.pending, true
}

// Discard drops any pending action without reporting it.
func (d *Dispatcher) Discard() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}

func (d *Dispatcher) take(token string) (*Pending, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil || token == "" || d.pending.Token != token {
		return nil, ErrNoPendingAction
	}
	p := d.pending
	d.pending = nil
	return p, nil
}

func (d *Dispatcher) run(ctx context.Context, action Action, ids []string, sel *SelectionSet) (DispatchResult, error) {
	err := action.Run(ctx, slices.Clone(ids))
	sel.DeselectAll()

	res := DispatchResult{
		Action:  action.Key,
		Label:   action.Label,
		IDs:     ids,
		Outcome: OutcomeExecuted,
	}
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res, fmt.Errorf("bulk %s: %w", action.Key, err)
	}
	return res, nil
}
