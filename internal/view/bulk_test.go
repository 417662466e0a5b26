package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recorder is an ActionFunc that remembers its calls.
type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) run(_ context.Context, ids []string) error {
	r.calls = append(r.calls, ids)
	return r.err
}

func selected(ids ...string) *SelectionSet {
	sel := NewSelectionSet()
	sel.SelectAll(ids)
	return sel
}

// ============================================================================
// Dispatcher Tests
// ============================================================================

func TestDispatch_NoSelection(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "archive", Label: "Archive", Run: rec.run})

	sel := NewSelectionSet()
	sel.SetVisible([]string{"1", "2"})

	_, err := d.Dispatch(context.Background(), "archive", sel)
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("action invoked %d times with no selection", len(rec.calls))
	}
}

func TestDispatch_DestructiveRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
	sel := selected("a", "b", "c")

	res, err := d.Dispatch(ctx, "delete", sel)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Outcome != OutcomePending || res.Token == "" {
		t.Fatalf("Dispatch result = %+v, want pending with token", res)
	}
	if res.Prompt != "Delete 3 items?" {
		t.Errorf("Prompt = %q", res.Prompt)
	}
	if len(rec.calls) != 0 {
		t.Fatal("destructive action ran before confirmation")
	}
	if sel.Count() != 3 {
		t.Errorf("selection changed before confirmation: %d", sel.Count())
	}

	res, err = d.Confirm(ctx, res.Token, sel)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Outcome != OutcomeExecuted {
		t.Errorf("Outcome = %q, want executed", res.Outcome)
	}
	if diff := cmp.Diff([][]string{{"a", "b", "c"}}, rec.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	if sel.Count() != 0 {
		t.Errorf("selection count after confirm = %d, want 0", sel.Count())
	}

	if _, err := d.Confirm(ctx, res.Token, sel); !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("second Confirm err = %v, want ErrNoPendingAction", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("action ran %d times, want 1", len(rec.calls))
	}
}

func TestDispatch_NonDestructiveRunsImmediately(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "activate", Label: "Activate", Run: rec.run})
	sel := selected("x", "y")

	res, err := d.Dispatch(context.Background(), "activate", sel)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Outcome != OutcomeExecuted {
		t.Errorf("Outcome = %q, want executed", res.Outcome)
	}
	if len(rec.calls) != 1 || sel.Count() != 0 {
		t.Errorf("calls=%d selection=%d, want 1 and 0", len(rec.calls), sel.Count())
	}
}

func TestDispatch_FailureStillClearsSelection(t *testing.T) {
	boom := errors.New("store unavailable")
	rec := &recorder{err: boom}
	d := NewDispatcher(0, Action{Key: "activate", Label: "Activate", Run: rec.run})
	sel := selected("x", "y")

	res, err := d.Dispatch(context.Background(), "activate", sel)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if res.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %q, want failed", res.Outcome)
	}
	if sel.Count() != 0 {
		t.Errorf("selection count = %d, want 0 after a failed action", sel.Count())
	}
	if diff := cmp.Diff([]string{"x", "y"}, res.IDs); diff != "" {
		t.Errorf("DispatchResult.IDs should keep the attempted ids (-want +got):\n%s", diff)
	}
}

func TestDispatch_Cancel(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
	sel := selected("a")

	res, _ := d.Dispatch(context.Background(), "delete", sel)
	got, err := d.Cancel(res.Token)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Outcome != OutcomeCancelled {
		t.Errorf("Outcome = %q, want cancelled", got.Outcome)
	}
	if _, ok := d.Pending(); ok {
		t.Error("pending action survived Cancel")
	}
	if sel.Count() != 1 {
		t.Errorf("Cancel changed the selection: %d", sel.Count())
	}
	if _, err := d.Confirm(context.Background(), res.Token, sel); !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("Confirm after Cancel err = %v", err)
	}
	if len(rec.calls) != 0 {
		t.Error("cancelled action ran")
	}
}

func TestDispatch_ConfirmationExpires(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(time.Minute, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	sel := selected("a")

	res, _ := d.Dispatch(context.Background(), "delete", sel)
	now = now.Add(2 * time.Minute)

	if _, err := d.Confirm(context.Background(), res.Token, sel); !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("err = %v, want ErrConfirmationExpired", err)
	}
	if len(rec.calls) != 0 {
		t.Error("expired action ran")
	}
}

func TestDispatch_WrongTokenAndUnknownAction(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
	sel := selected("a")

	if _, err := d.Dispatch(context.Background(), "explode", sel); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action err = %v", err)
	}

	d.Dispatch(context.Background(), "delete", sel)
	if _, err := d.Confirm(context.Background(), "not-the-token", sel); !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("wrong token err = %v", err)
	}
	if _, ok := d.Pending(); !ok {
		t.Error("a wrong token must not discard the pending action")
	}
}
