package core

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/JonMunkholm/dashboard/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDataset() Dataset {
	return Dataset{
		People: []Person{
			{ID: "p1", Name: "John Doe", Email: "john@example.com", Role: "Administrator", Status: "active", Department: "IT", CreatedAt: day("2024-01-15")},
			{ID: "p2", Name: "Jane Smith", Email: "jane@example.com", Role: "Manager", Status: "active", Department: "Marketing", CreatedAt: day("2024-01-10")},
			{ID: "p3", Name: "Bob Johnson", Email: "bob@example.com", Role: "User", Status: "inactive", Department: "Sales", CreatedAt: day("2024-01-05")},
			{ID: "p4", Name: "Alice Brown", Email: "alice@example.com", Role: "Moderator", Status: "active", Department: "IT", CreatedAt: day("2024-01-08")},
		},
		Library: []LibraryItem{
			{ID: "l1", Title: "Quarterly Report", Type: "document", Size: 2048000, UploadedBy: "John Doe", UploadedAt: day("2024-01-15"), Tags: []string{"finance", "report"}},
			{ID: "l2", Title: "Team Photo", Type: "image", Size: 1536, UploadedBy: "Jane Smith", UploadedAt: day("2024-01-14"), Tags: []string{"team"}},
			{ID: "l3", Title: "Product Demo", Type: "video", Size: 52428800, UploadedBy: "Alice Brown", UploadedAt: day("2024-01-13"), Tags: []string{"demo", "product"}},
		},
		Assets: []Asset{
			{ID: "a1", Name: "Laptop Dell XPS 15", Type: "Computer", Category: "Electronics", Status: "active", Value: 1200, AssignedTo: "John Doe", Location: "Office A", PurchaseDate: day("2023-06-15")},
			{ID: "a2", Name: "Office Chair", Type: "Furniture", Category: "Furniture", Status: "pending", Value: 350, Location: "Warehouse", PurchaseDate: day("2023-08-01")},
			{ID: "a3", Name: "Projector", Type: "AV", Category: "Electronics", Status: "inactive", Value: 800, Location: "Room 2", PurchaseDate: day("2022-11-20")},
		},
		Activity: []Activity{
			{ID: "act1", User: "John Doe", Action: "uploaded new document", Item: "Quarterly Report", Timestamp: day("2024-01-15"), Type: ActivityUpload},
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(testDataset(), Options{View: ViewOptions{PageSize: 10, Threshold: view.DefaultThreshold, PageWindow: view.DefaultPageWindow}})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	s.now = func() time.Time { return fixedNow }
	return s
}

// mount returns a rendered controller over a collection.
func mount(t *testing.T, s *Service, key string) (Collection, *view.Controller) {
	t.Helper()
	c, err := s.Collection(key)
	if err != nil {
		t.Fatalf("Collection(%q) error = %v", key, err)
	}
	ctl := c.NewController()
	c.Render(ctl)
	return c, ctl
}
