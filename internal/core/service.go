package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCollectionNotFound is returned for an unregistered collection key.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = errors.New("item not found")
)

// Options configures a Service.
type Options struct {
	View ViewOptions

	// MaxConcurrentImports and ImportWait configure the ImportLimiter.
	MaxConcurrentImports int
	ImportWait           time.Duration
}

// Service provides the dashboard's business logic: the registered
// collections, their mutations and bulk actions, the activity log and
// the dashboard statistics. It holds everything in memory and is safe
// for concurrent use.
type Service struct {
	opts     Options
	now      func() time.Time
	registry *Registry
	imports  *ImportLimiter

	people   *store[Person]
	library  *store[LibraryItem]
	assets   *store[Asset]
	activity *activityLog
}

// NewService creates a Service seeded with data. Items without an id get
// a new one.
func NewService(data Dataset, opts Options) (*Service, error) {
	s := &Service{
		opts:     opts,
		now:      time.Now,
		registry: NewRegistry(),
		imports:  NewImportLimiter(opts.MaxConcurrentImports, opts.ImportWait),
		people:   newStore(personSchema.ID, withIDs(data.People, func(p *Person) *string { return &p.ID })),
		library:  newStore(librarySchema.ID, withIDs(data.Library, func(l *LibraryItem) *string { return &l.ID })),
		assets:   newStore(assetSchema.ID, withIDs(data.Assets, func(a *Asset) *string { return &a.ID })),
		activity: newActivityLog(withIDs(data.Activity, func(a *Activity) *string { return &a.ID })),
	}

	people, err := newCollection(peopleInfo(), personSchema, s.people, s.peopleActions(), opts.View)
	if err != nil {
		return nil, fmt.Errorf("people collection: %w", err)
	}
	library, err := newCollection(libraryInfo(), librarySchema, s.library, s.libraryActions(), opts.View)
	if err != nil {
		return nil, fmt.Errorf("library collection: %w", err)
	}
	assets, err := newCollection(assetsInfo(), assetSchema, s.assets, s.assetActions(), opts.View)
	if err != nil {
		return nil, fmt.Errorf("assets collection: %w", err)
	}

	s.registry.Register(people)
	s.registry.Register(library)
	s.registry.Register(assets)
	return s, nil
}

// Registry returns the collection registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// ImportStatus reports the import limiter's current state.
func (s *Service) ImportStatus() ImportLimiterStatus {
	return s.imports.Status()
}

// Collection returns the collection registered under key.
func (s *Service) Collection(key string) (Collection, error) {
	c, ok := s.registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, key)
	}
	return c, nil
}

// ListCollections returns information about all registered collections.
func (s *Service) ListCollections() []CollectionInfo {
	all := s.registry.All()
	infos := make([]CollectionInfo, len(all))
	for i, c := range all {
		infos[i] = c.Info()
	}
	return infos
}

// ListCollectionsByGroup returns collections organized by group.
func (s *Service) ListCollectionsByGroup() map[string][]CollectionInfo {
	result := make(map[string][]CollectionInfo)
	for _, group := range s.registry.Groups() {
		for _, c := range s.registry.ByGroup(group) {
			result[group] = append(result[group], c.Info())
		}
	}
	return result
}

// Person returns the person with the given id.
func (s *Service) Person(id string) (Person, error) {
	p, ok := s.people.Get(id)
	if !ok {
		return Person{}, fmt.Errorf("person %s: %w", id, ErrItemNotFound)
	}
	return p, nil
}

// LibraryItem returns the library item with the given id.
func (s *Service) LibraryItem(id string) (LibraryItem, error) {
	l, ok := s.library.Get(id)
	if !ok {
		return LibraryItem{}, fmt.Errorf("library item %s: %w", id, ErrItemNotFound)
	}
	return l, nil
}

// Asset returns the asset with the given id.
func (s *Service) Asset(id string) (Asset, error) {
	a, ok := s.assets.Get(id)
	if !ok {
		return Asset{}, fmt.Errorf("asset %s: %w", id, ErrItemNotFound)
	}
	return a, nil
}

// today is the current date at midnight UTC.
func (s *Service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func withIDs[T any](items []T, id func(*T) *string) []T {
	for i := range items {
		if p := id(&items[i]); *p == "" {
			*p = uuid.NewString()
		}
	}
	return items
}
