package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestImportAssets(t *testing.T) {
	s := newTestService(t)
	csvData := "\xEF\xBB\xBFName,Category,Status,Value,Purchase Date,Location\n" +
		"Monitor,Electronics,Active,\"$1,250.00\",2024-02-01,Office B\n" +
		",Electronics,active,100,2024-02-01,Office B\n" +
		"Desk Lamp,,,45,02/03/2024,\n" +
		"\n" +
		"Whiteboard,Office,broken,abc,not a date,Room 1\n"

	res, err := s.ImportAssets(context.Background(), "assets.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportAssets() error = %v", err)
	}

	if res.TotalRows != 4 || res.Inserted != 2 || res.Skipped != 2 {
		t.Errorf("result = total %d, inserted %d, skipped %d; want 4, 2, 2", res.TotalRows, res.Inserted, res.Skipped)
	}

	var lines []int
	for _, fr := range res.FailedRows {
		lines = append(lines, fr.LineNumber)
	}
	if diff := cmp.Diff([]int{3, 6}, lines); diff != "" {
		t.Errorf("failed line numbers (-want +got):\n%s", diff)
	}
	if reason := res.FailedRows[0].Reason; !strings.Contains(reason, "Name: required field is empty") {
		t.Errorf("reason = %q", reason)
	}
	reason := res.FailedRows[1].Reason
	for _, want := range []string{"invalid enum value", "invalid number", "invalid date"} {
		if !strings.Contains(reason, want) {
			t.Errorf("reason %q missing %q", reason, want)
		}
	}

	items, _ := s.assets.Snapshot()
	monitor, lamp := items[3], items[4]
	if monitor.Name != "Monitor" || monitor.Status != "active" || monitor.Value != 1250 {
		t.Errorf("monitor = %+v", monitor)
	}
	if !monitor.PurchaseDate.Equal(day("2024-02-01")) {
		t.Errorf("monitor PurchaseDate = %v", monitor.PurchaseDate)
	}
	if lamp.Status != "pending" || lamp.Category != "document" {
		t.Errorf("lamp defaults = status %q, category %q", lamp.Status, lamp.Category)
	}

	entry := s.Activity(ActivityFilter{Limit: 1})[0]
	if entry.Action != "imported assets" || entry.Item != "assets.csv" || entry.Count != 2 {
		t.Errorf("activity = %+v", entry)
	}
}

func TestImportAssets_FileErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{name: "empty file", input: "", wantCode: "FILE005"},
		{name: "header only", input: "Name,Status\n", wantCode: "FILE005"},
		{name: "missing name column", input: "Status,Value\nactive,10\n", wantCode: "VAL004"},
		{name: "broken quoting", input: "Name,Status\n\"Desk,active\nChair\"x,active\n", wantCode: "FILE002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			_, err := s.ImportAssets(context.Background(), "bad.csv", strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ImportAssets() expected error")
			}
			if got := MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			if s.assets.Len() != 3 {
				t.Error("a failed import must not add assets")
			}
		})
	}
}

func TestImportAssets_Canceled(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ImportAssets(ctx, "assets.csv", strings.NewReader("Name\nDesk\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ImportAssets() error = %v, want context.Canceled", err)
	}
}

func TestImportAssets_QueueFull(t *testing.T) {
	data := testDataset()
	s, err := NewService(data, Options{MaxConcurrentImports: 1, ImportWait: 1})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if !s.imports.TryAcquire() {
		t.Fatal("TryAcquire failed")
	}
	defer s.imports.Release()

	_, err = s.ImportAssets(context.Background(), "assets.csv", strings.NewReader("Name\nDesk\n"))
	if !errors.Is(err, ErrTooManyImports) {
		t.Errorf("ImportAssets() error = %v, want ErrTooManyImports", err)
	}
}
