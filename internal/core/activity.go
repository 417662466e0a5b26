package core

import (
	"context"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dashboard/internal/export"
)

// ActivityType classifies an activity entry.
type ActivityType string

const (
	ActivityUpload      ActivityType = "upload"
	ActivityUser        ActivityType = "user"
	ActivityMaintenance ActivityType = "maintenance"
	ActivityUpdate      ActivityType = "update"
	ActivityExport      ActivityType = "export"
	ActivityDelete      ActivityType = "delete"
)

// Severity is how much attention an activity entry deserves.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultActivityLimit is the page size of Activity when none is given.
const DefaultActivityLimit = 20

// maxActivityEntries bounds the in-memory log; the oldest entries go first.
const maxActivityEntries = 500

// Activity is one entry in the activity log.
type Activity struct {
	ID         string       `json:"id" yaml:"id"`
	User       string       `json:"user" yaml:"user"`
	Action     string       `json:"action" yaml:"action"`
	Item       string       `json:"item" yaml:"item"`
	Timestamp  time.Time    `json:"timestamp" yaml:"timestamp"`
	Type       ActivityType `json:"type" yaml:"type"`
	Severity   Severity     `json:"severity" yaml:"severity,omitempty"`
	Collection string       `json:"collection,omitempty" yaml:"collection,omitempty"`
	Count      int          `json:"count,omitempty" yaml:"count,omitempty"`
	IPAddress  string       `json:"ipAddress,omitempty" yaml:"-"`
	UserAgent  string       `json:"userAgent,omitempty" yaml:"-"`
}

// ActivityParams describes an activity to record. The actor, IP address
// and user agent come from the context.
type ActivityParams struct {
	Type       ActivityType
	Action     string
	Item       string
	Collection string
	Count      int
}

// determineSeverity returns the appropriate severity for an activity type.
func determineSeverity(t ActivityType) Severity {
	switch t {
	case ActivityDelete:
		return SeverityHigh
	case ActivityExport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// activityLog keeps entries oldest first.
type activityLog struct {
	mu      sync.RWMutex
	entries []Activity
}

func newActivityLog(seed []Activity) *activityLog {
	entries := slices.Clone(seed)
	for i := range entries {
		if entries[i].Severity == "" {
			entries[i].Severity = determineSeverity(entries[i].Type)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	if len(entries) > maxActivityEntries {
		entries = entries[len(entries)-maxActivityEntries:]
	}
	return &activityLog{entries: entries}
}

func (l *activityLog) add(a Activity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, a)
	if over := len(l.entries) - maxActivityEntries; over > 0 {
		l.entries = slices.Delete(l.entries, 0, over)
	}
}

// LogActivity records an activity entry and returns it.
func (s *Service) LogActivity(ctx context.Context, params ActivityParams) Activity {
	a := Activity{
		ID:         uuid.NewString(),
		User:       ActorFromContext(ctx),
		Action:     params.Action,
		Item:       params.Item,
		Timestamp:  s.now().UTC(),
		Type:       params.Type,
		Severity:   determineSeverity(params.Type),
		Collection: params.Collection,
		Count:      params.Count,
		IPAddress:  IPAddressFromContext(ctx),
		UserAgent:  UserAgentFromContext(ctx),
	}
	s.activity.add(a)
	return a
}

// ActivityFilter contains filtering options for querying the activity log.
type ActivityFilter struct {
	Collection string
	Type       ActivityType
	Limit      int
	Offset     int
}

// Activity returns matching entries, newest first.
func (s *Service) Activity(filter ActivityFilter) []Activity {
	if filter.Limit <= 0 {
		filter.Limit = DefaultActivityLimit
	}

	s.activity.mu.RLock()
	defer s.activity.mu.RUnlock()

	out := make([]Activity, 0, filter.Limit)
	skipped := 0
	for i := len(s.activity.entries) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		a := s.activity.entries[i]
		if filter.Collection != "" && a.Collection != filter.Collection {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, a)
	}
	return out
}

// ActivityColumns are the columns of an activity log export.
var ActivityColumns = []export.Column{
	{Key: "timestamp", Label: "Timestamp"},
	{Key: "user", Label: "User"},
	{Key: "action", Label: "Action"},
	{Key: "item", Label: "Item"},
	{Key: "type", Label: "Type"},
	{Key: "severity", Label: "Severity"},
	{Key: "collection", Label: "Collection"},
}

// ExportActivity writes the entries matching filter, newest first, to w.
// A zero Limit exports the whole log.
func (s *Service) ExportActivity(w io.Writer, f export.Format, filter ActivityFilter) (int, error) {
	if filter.Limit <= 0 {
		filter.Limit = maxActivityEntries
	}
	entries := s.Activity(filter)

	opts := export.Options{
		Filename:    "activity",
		Title:       "Activity Log",
		Columns:     ActivityColumns,
		GeneratedAt: s.now(),
	}
	err := export.Write(w, f, entries, opts, func(a Activity, key string) string {
		switch key {
		case "timestamp":
			return a.Timestamp.Format(time.RFC3339)
		case "user":
			return a.User
		case "action":
			return a.Action
		case "item":
			return a.Item
		case "type":
			return string(a.Type)
		case "severity":
			return string(a.Severity)
		case "collection":
			return a.Collection
		}
		return ""
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
