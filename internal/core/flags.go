package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// ParseFilter reads a "key=value" filter for the collection described by
// info. Checkbox filters take a comma separated list; date filters take
// "from..to".
func ParseFilter(info CollectionInfo, raw string) (string, view.FilterValue, error) {
	k, v, ok := strings.Cut(raw, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", view.FilterValue{}, fmt.Errorf("invalid filter %q: want key=value", raw)
	}

	i := slices.IndexFunc(info.Filters, func(f view.FilterSpec) bool { return f.Key == k })
	if i < 0 {
		return "", view.FilterValue{}, fmt.Errorf("unknown filter %q for %s", k, info.Key)
	}

	if info.Filters[i].Type != view.FilterCheckbox {
		return k, view.FilterValue{Value: strings.TrimSpace(v)}, nil
	}
	var values []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return k, view.FilterValue{Values: values}, nil
}

// ParseSort reads a "key" or "key:desc" sort for the collection described
// by info. An empty string clears the sort.
func ParseSort(info CollectionInfo, raw string) (view.SortState, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return view.SortState{}, nil
	}
	k, dir, _ := strings.Cut(raw, ":")
	if !slices.ContainsFunc(info.Columns, func(col export.Column) bool { return col.Key == k }) {
		return view.SortState{}, fmt.Errorf("unknown sort column %q for %s", k, info.Key)
	}
	return view.SortBy(k, view.ParseDirection(dir)), nil
}
