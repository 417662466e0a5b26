package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
)

func (s *Service) peopleActions() []view.Action {
	setStatus := func(p *Person, status string) { p.Status = status }
	return []view.Action{
		statusAction(s, s.people, PeopleKey, "activate", "Activate", "active", setStatus),
		statusAction(s, s.people, PeopleKey, "deactivate", "Deactivate", "inactive", setStatus),
		deleteAction(s, s.people, PeopleKey),
	}
}

func (s *Service) libraryActions() []view.Action {
	return []view.Action{
		{
			Key:   "export",
			Label: "Export selection",
			Run: func(ctx context.Context, ids []string) error {
				items := s.library.Select(ids)
				if len(items) == 0 {
					return fmt.Errorf("export selection: %w", ErrItemNotFound)
				}
				s.LogActivity(ctx, ActivityParams{
					Type:       ActivityExport,
					Action:     "exported library items",
					Item:       countNoun(len(items), "item"),
					Collection: LibraryKey,
					Count:      len(items),
				})
				logging.FromContext(ctx).Info("library selection exported", "count", len(items))
				return nil
			},
		},
		deleteAction(s, s.library, LibraryKey),
	}
}

func (s *Service) assetActions() []view.Action {
	setStatus := func(a *Asset, status string) { a.Status = status }
	return []view.Action{
		statusAction(s, s.assets, AssetsKey, "activate", "Mark active", "active", setStatus),
		statusAction(s, s.assets, AssetsKey, "pending", "Mark pending", "pending", setStatus),
		statusAction(s, s.assets, AssetsKey, "retire", "Retire", "inactive", setStatus),
		deleteAction(s, s.assets, AssetsKey),
	}
}

// statusAction builds a non-destructive action that sets the status of
// every selected item.
func statusAction[T any](s *Service, st *store[T], collection, key, label, status string, set func(*T, string)) view.Action {
	return view.Action{
		Key:   key,
		Label: label,
		Run: func(ctx context.Context, ids []string) error {
			n := st.UpdateMany(ids, func(item *T) { set(item, status) })
			if n == 0 {
				return fmt.Errorf("%s %s: %w", collection, key, ErrItemNotFound)
			}
			s.LogActivity(ctx, ActivityParams{
				Type:       ActivityUpdate,
				Action:     "set status to " + status,
				Item:       countNoun(n, "item"),
				Collection: collection,
				Count:      n,
			})
			logging.FromContext(ctx).Info("bulk status change",
				"collection", collection, "action", key, "status", status, "count", n)
			return nil
		},
	}
}

// deleteAction builds the destructive delete action of a collection.
func deleteAction[T any](s *Service, st *store[T], collection string) view.Action {
	return view.Action{
		Key:         "delete",
		Label:       "Delete",
		Destructive: true,
		Run: func(ctx context.Context, ids []string) error {
			n := st.Delete(ids)
			if n == 0 {
				return fmt.Errorf("%s delete: %w", collection, ErrItemNotFound)
			}
			s.LogActivity(ctx, ActivityParams{
				Type:       ActivityDelete,
				Action:     "deleted " + collection,
				Item:       countNoun(n, "item"),
				Collection: collection,
				Count:      n,
			})
			logging.FromContext(ctx).Info("bulk delete", "collection", collection, "count", n)
			return nil
		},
	}
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
