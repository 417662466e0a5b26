package core

import (
	"strings"
	"time"

	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// Navigation groups.
const (
	GroupDirectory  = "Directory"
	GroupContent    = "Content"
	GroupOperations = "Operations"
)

// ============================================================================
// People
// ============================================================================

var personSchema = view.NewSchema(
	func(p Person) string { return p.ID },
	view.TextField("name", "Name", func(p Person) string { return p.Name }),
	view.TextField("email", "Email", func(p Person) string { return p.Email }),
	view.TextField("role", "Role", func(p Person) string { return p.Role }),
	view.TextField("status", "Status", func(p Person) string { return p.Status }),
	view.TextField("department", "Department", func(p Person) string { return p.Department }),
	view.TextField("phone", "Phone", func(p Person) string { return p.Phone }),
	view.DateField("createdAt", "Created", func(p Person) time.Time { return p.CreatedAt }),
	view.DateField("lastLogin", "Last Login", func(p Person) time.Time { return p.LastLogin }),
)

func peopleInfo() CollectionInfo {
	return CollectionInfo{
		Key:   PeopleKey,
		Group: GroupDirectory,
		Label: "People",
		Columns: []export.Column{
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "role", Label: "Role"},
			{Key: "department", Label: "Department"},
			{Key: "status", Label: "Status"},
			{Key: "createdAt", Label: "Created"},
			{Key: "lastLogin", Label: "Last Login"},
		},
		SearchKeys: []string{"name", "email"},
		Filters: []view.FilterSpec{
			{Key: "status", Label: "Status", Type: view.FilterCheckbox, Options: titled(PersonStatuses)},
			{Key: "role", Label: "Role", Type: view.FilterSelect, Options: titled(Roles)},
			{Key: "department", Label: "Department", Type: view.FilterSelect},
			{Key: "createdAt", Label: "Created", Type: view.FilterDate},
		},
	}
}

// ============================================================================
// Library
// ============================================================================

var librarySchema = view.NewSchema(
	func(l LibraryItem) string { return l.ID },
	view.TextField("title", "Title", func(l LibraryItem) string { return l.Title }),
	view.TextField("type", "Type", func(l LibraryItem) string { return l.Type }),
	view.Field[LibraryItem]{
		Key: "size", Label: "Size", Kind: view.KindNumber,
		Number: func(l LibraryItem) float64 { return float64(l.Size) },
		Format: FormatBytes,
	},
	view.TextField("uploadedBy", "Uploaded By", func(l LibraryItem) string { return l.UploadedBy }),
	view.DateField("uploadedAt", "Uploaded", func(l LibraryItem) time.Time { return l.UploadedAt }),
	view.ListField("tags", "Tags", func(l LibraryItem) []string { return l.Tags }),
	view.TextField("description", "Description", func(l LibraryItem) string { return l.Description }),
	view.TextField("url", "URL", func(l LibraryItem) string { return l.URL }),
)

func libraryInfo() CollectionInfo {
	return CollectionInfo{
		Key:   LibraryKey,
		Group: GroupContent,
		Label: "Library",
		Columns: []export.Column{
			{Key: "title", Label: "Title"},
			{Key: "type", Label: "Type"},
			{Key: "size", Label: "Size"},
			{Key: "uploadedBy", Label: "Uploaded By"},
			{Key: "uploadedAt", Label: "Uploaded"},
			{Key: "tags", Label: "Tags"},
		},
		SearchKeys: []string{"title", "description", "tags", "uploadedBy"},
		Filters: []view.FilterSpec{
			{Key: "type", Label: "Type", Type: view.FilterCheckbox, Options: titled(LibraryTypes)},
			{Key: "tags", Label: "Tags", Type: view.FilterCheckbox},
			{Key: "uploadedBy", Label: "Uploaded By", Type: view.FilterText},
			{Key: "uploadedAt", Label: "Uploaded", Type: view.FilterDate},
		},
	}
}

// ============================================================================
// Assets
// ============================================================================

var assetSchema = view.NewSchema(
	func(a Asset) string { return a.ID },
	view.TextField("name", "Name", func(a Asset) string { return a.Name }),
	view.TextField("type", "Type", func(a Asset) string { return a.Type }),
	view.TextField("category", "Category", func(a Asset) string { return a.Category }),
	view.TextField("status", "Status", func(a Asset) string { return a.Status }),
	view.Field[Asset]{
		Key: "value", Label: "Value", Kind: view.KindNumber,
		Number: func(a Asset) float64 { return a.Value },
		Format: FormatCurrency,
	},
	view.TextField("assignedTo", "Assigned To", func(a Asset) string { return a.AssignedTo }),
	view.TextField("location", "Location", func(a Asset) string { return a.Location }),
	view.DateField("purchaseDate", "Purchased", func(a Asset) time.Time { return a.PurchaseDate }),
	view.DateField("lastMaintenance", "Last Maintenance", func(a Asset) time.Time { return a.LastMaintenance }),
)

func assetsInfo() CollectionInfo {
	return CollectionInfo{
		Key:   AssetsKey,
		Group: GroupOperations,
		Label: "Assets",
		Columns: []export.Column{
			{Key: "name", Label: "Name"},
			{Key: "type", Label: "Type"},
			{Key: "category", Label: "Category"},
			{Key: "status", Label: "Status"},
			{Key: "value", Label: "Value"},
			{Key: "assignedTo", Label: "Assigned To"},
			{Key: "location", Label: "Location"},
			{Key: "purchaseDate", Label: "Purchased"},
		},
		SearchKeys: []string{"name", "type", "category", "location", "assignedTo"},
		Filters: []view.FilterSpec{
			{Key: "status", Label: "Status", Type: view.FilterCheckbox, Options: titled(AssetStatuses)},
			{Key: "category", Label: "Category", Type: view.FilterSelect},
			{Key: "location", Label: "Location", Type: view.FilterText},
			{Key: "purchaseDate", Label: "Purchased", Type: view.FilterDate},
		},
	}
}

// titled offers values as options labelled with an initial capital.
func titled(values []string) []view.Option {
	opts := make([]view.Option, len(values))
	for i, v := range values {
		label := v
		if v != "" {
			label = strings.ToUpper(v[:1]) + v[1:]
		}
		opts[i] = view.Option{Value: v, Label: label}
	}
	return opts
}
