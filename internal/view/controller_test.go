package view

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func manyMembers(n int) []member {
	out := make([]member, n)
	for i := range out {
		role := "User"
		if i%2 == 0 {
			role = "Manager"
		}
		out[i] = member{ID: strconv.Itoa(i + 1), Name: "Member " + strconv.Itoa(i+1), Role: role}
	}
	return out
}

func memberConfig() Config[member] {
	return Config[member]{
		Schema:     memberSchema,
		SearchKeys: []string{"name", "email"},
		Filters:    memberFilters,
		Threshold:  DefaultThreshold,
		PageWindow: DefaultPageWindow,
	}
}

// ============================================================================
// Run Tests
// ============================================================================

func TestRun_ComposesStages(t *testing.T) {
	st := NewState(2)
	st.Query = "o"
	st.Filters = st.Filters.With("role", Is("User"))
	st.Sort = SortBy("name", Desc)

	res := Run(sampleMembers(), st, memberConfig())

	// "o" is in every email; role=User leaves Bob and Alice;
	// name desc puts Bob first.
	if diff := cmp.Diff([]string{"3", "4"}, res.VisibleIDs); diff != "" {
		t.Errorf("VisibleIDs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"3", "4"}, ids(res.Items)); diff != "" {
		t.Errorf("Items (-want +got):\n%s", diff)
	}
	if res.Meta.TotalItems != 2 || res.Meta.TotalPages != 1 {
		t.Errorf("Meta = %+v", res.Meta)
	}
	if len(res.Chips) != 1 || res.Chips[0].Key != "role" {
		t.Errorf("Chips = %+v", res.Chips)
	}
}

func TestRun_ClampsStatePage(t *testing.T) {
	st := NewState(10)
	st.Page.CurrentPage = 7

	res := Run(manyMembers(23), st, memberConfig())
	if res.Meta.Page != 3 || res.State.Page.CurrentPage != 3 {
		t.Errorf("page = %d / state page = %d, want 3", res.Meta.Page, res.State.Page.CurrentPage)
	}
	if diff := cmp.Diff([]string{"21", "22", "23"}, ids(res.Items)); diff != "" {
		t.Errorf("Items (-want +got):\n%s", diff)
	}
}

func TestRun_ZeroThresholdIsExact(t *testing.T) {
	items := manyMembers(3)
	st := NewState(10)
	st.Query = "Membr 1"

	cfg := memberConfig()
	if got := Run(items, st, cfg).Meta.TotalItems; got == 0 {
		t.Fatal("default threshold should match a one-letter typo")
	}

	cfg.Threshold = 0
	if got := ids(Run(items, st, cfg).Items); len(got) != 0 {
		t.Errorf("threshold 0 matched %v, want nothing", got)
	}

	st.Query = "member 2"
	if diff := cmp.Diff([]string{"2"}, ids(Run(items, st, cfg).Items)); diff != "" {
		t.Errorf("exact search (-want +got):\n%s", diff)
	}
}

func TestRun_ZeroPageWindow(t *testing.T) {
	st := NewState(10)
	st.Page.CurrentPage = 5

	cfg := memberConfig()
	cfg.PageWindow = 0
	if got := renderLinks(Run(manyMembers(100), st, cfg).Pages); got != "1 ... [5] ... 10" {
		t.Errorf("page links = %q, want %q", got, "1 ... [5] ... 10")
	}
}

func TestRun_UsesIndex(t *testing.T) {
	items := sampleMembers()
	cfg := memberConfig()
	cfg.Index = NewIndex(items, memberSchema, cfg.SearchKeys)

	st := NewState(10)
	st.Query = "charlie"
	res := Run(items, st, cfg)
	if diff := cmp.Diff([]string{"5"}, res.VisibleIDs); diff != "" {
		t.Errorf("VisibleIDs (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Controller Tests
// ============================================================================

func TestController_PageNavigation(t *testing.T) {
	items := manyMembers(23)
	c := NewController(NewState(10), nil)
	Render(c, items, memberConfig())

	c.LastPage()
	if got := Render(c, items, memberConfig()).Meta.Page; got != 3 {
		t.Errorf("LastPage -> %d, want 3", got)
	}

	c.NextPage()
	if got := c.State().Page.CurrentPage; got != 3 {
		t.Errorf("NextPage past end -> %d, want 3", got)
	}

	c.PrevPage()
	c.PrevPage()
	c.PrevPage()
	if got := c.State().Page.CurrentPage; got != 1 {
		t.Errorf("PrevPage past start -> %d, want 1", got)
	}

	c.GoToPage(2)
	c.SetPageSize(20)
	res := Render(c, items, memberConfig())
	if res.Meta.Page != 1 || res.Meta.PageSize != 20 || res.Meta.TotalPages != 2 {
		t.Errorf("after SetPageSize(20) meta = %+v, want page 1 of 2", res.Meta)
	}

	c.SetPageSize(0)
	if got := c.State().Page.ItemsPerPage; got != 20 {
		t.Errorf("SetPageSize(0) changed size to %d", got)
	}
}

func TestController_QueryLastWins(t *testing.T) {
	c := NewController(NewState(10), nil)

	if !c.SetQuery("jo", 2) {
		t.Fatal("SetQuery seq 2 rejected")
	}
	if c.SetQuery("j", 1) {
		t.Error("stale SetQuery seq 1 applied")
	}
	if got := c.State().Query; got != "jo" {
		t.Errorf("Query = %q, want jo", got)
	}
	if !c.SetQuery("john", 3) || c.State().Query != "john" {
		t.Error("newer query not applied")
	}
}

func TestController_FilterPrunesSelection(t *testing.T) {
	items := manyMembers(20)
	cfg := memberConfig()
	c := NewController(NewState(10), nil)

	Render(c, items, cfg)
	c.SelectAll()
	if got := c.Selection().Count; got != 20 {
		t.Fatalf("SelectAll over unfiltered view selected %d, want 20", got)
	}

	c.SetFilter("role", Is("Manager"))
	Render(c, items, cfg)

	sel := c.Selection()
	if sel.Count != 10 || sel.Total != 10 || sel.State != Checked {
		t.Errorf("after filtering selection = %+v, want 10 of 10 checked", sel)
	}
	for _, id := range sel.IDs {
		n, _ := strconv.Atoi(id)
		if (n-1)%2 != 0 {
			t.Errorf("hidden id %s still selected", id)
		}
	}

	c.ClearFilter("role")
	Render(c, items, cfg)
	if got := c.Selection(); got.Count != 10 || got.State != Indeterminate {
		t.Errorf("after clearing filter selection = %d (%s), want 10 indeterminate", got.Count, got.State)
	}
}

func TestController_DestructiveFlow(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
	c := NewController(NewState(10), d)
	items := sampleMembers()
	Render(c, items, memberConfig())

	if _, err := c.Dispatch(ctx, "delete"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("empty dispatch err = %v", err)
	}

	c.Toggle("1")
	c.Toggle("3")
	c.Toggle("5")

	res, err := c.Dispatch(ctx, "delete")
	if err != nil || res.Outcome != OutcomePending {
		t.Fatalf("Dispatch = %+v, %v", res, err)
	}
	if _, ok := c.Pending(); !ok {
		t.Fatal("no pending action")
	}
	if len(rec.calls) != 0 {
		t.Fatal("ran before confirmation")
	}

	if _, err := c.Confirm(ctx, res.Token); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if diff := cmp.Diff([][]string{{"1", "3", "5"}}, rec.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	if c.Selection().Count != 0 {
		t.Error("selection not cleared after confirm")
	}
}

func TestController_Reset(t *testing.T) {
	d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: (&recorder{}).run})
	c := NewController(NewState(10), d)
	Render(c, sampleMembers(), memberConfig())

	c.SetQuery("bob", 5)
	c.SetFilter("role", Is("User"))
	c.ToggleSort("name")
	c.SelectAll()
	c.Dispatch(context.Background(), "delete")

	c.Reset()

	if diff := cmp.Diff(NewState(10), c.State()); diff != "" {
		t.Errorf("state after Reset (-want +got):\n%s", diff)
	}
	if c.Selection().Count != 0 {
		t.Error("selection survived Reset")
	}
	if _, ok := c.Pending(); ok {
		t.Error("pending action survived Reset")
	}
	if !c.SetQuery("a", 1) {
		t.Error("query sequence not reset")
	}
}

func TestController_FilterDropsHiddenPending(t *testing.T) {
	ctx := context.Background()
	items := manyMembers(6)
	cfg := memberConfig()

	t.Run("pending ids hidden", func(t *testing.T) {
		rec := &recorder{}
		d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
		c := NewController(NewState(10), d)
		Render(c, items, cfg)

		c.SelectAll()
		res, err := c.Dispatch(ctx, "delete")
		if err != nil || res.Outcome != OutcomePending {
			t.Fatalf("Dispatch = %+v, %v", res, err)
		}

		c.SetFilter("role", Is("User"))
		Render(c, items, cfg)

		if _, ok := c.Pending(); ok {
			t.Error("pending action survived a filter hiding its items")
		}
		if _, err := c.Confirm(ctx, res.Token); !errors.Is(err, ErrNoPendingAction) {
			t.Errorf("Confirm err = %v, want ErrNoPendingAction", err)
		}
		if len(rec.calls) != 0 {
			t.Errorf("action ran on %v", rec.calls)
		}
		if diff := cmp.Diff([]string{"2", "4", "6"}, c.Selection().IDs); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("pending ids still visible", func(t *testing.T) {
		rec := &recorder{}
		d := NewDispatcher(0, Action{Key: "delete", Label: "Delete", Destructive: true, Run: rec.run})
		c := NewController(NewState(10), d)
		Render(c, items, cfg)

		c.Toggle("2")
		c.Toggle("4")
		res, err := c.Dispatch(ctx, "delete")
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}

		c.SetFilter("role", Is("User"))
		Render(c, items, cfg)

		if _, err := c.Confirm(ctx, res.Token); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if diff := cmp.Diff([][]string{{"2", "4"}}, rec.calls); diff != "" {
			t.Errorf("calls (-want +got):\n%s", diff)
		}
	})
}

func TestRender_KeepsPageSizeChangedMidRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	schema := NewSchema(
		func(m member) string { return m.ID },
		TextField("name", "Name", func(m member) string {
			once.Do(func() {
				close(started)
				<-release
			})
			return m.Name
		}),
	)
	cfg := Config[member]{Schema: schema, PageWindow: DefaultPageWindow}

	c := NewController(NewState(10), nil)
	c.SetSort(SortBy("name", Asc))

	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		Render(c, manyMembers(30), cfg)
	}()
	<-started

	resized := make(chan struct{})
	go func() {
		defer close(resized)
		c.SetPageSize(20)
	}()
	select {
	case <-resized:
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-rendered
	<-resized

	if got := c.State().Page.ItemsPerPage; got != 20 {
		t.Errorf("ItemsPerPage = %d, want 20", got)
	}
}
