package core

import (
	"time"

	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// Collection keys.
const (
	PeopleKey  = "people"
	LibraryKey = "library"
	AssetsKey  = "assets"
)

// Allowed enum values.
var (
	Roles          = []string{"Administrator", "Manager", "User", "Moderator"}
	PersonStatuses = []string{"active", "inactive"}
	LibraryTypes   = []string{"document", "image", "video", "audio"}
	AssetStatuses  = []string{"active", "inactive", "pending"}
)

// Person is a member of the organisation.
type Person struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Email      string    `json:"email" yaml:"email"`
	Role       string    `json:"role" yaml:"role"`
	Status     string    `json:"status" yaml:"status"`
	Department string    `json:"department" yaml:"department"`
	Phone      string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	LastLogin  time.Time `json:"lastLogin,omitzero" yaml:"lastLogin,omitempty"`
}

// LibraryItem is an uploaded file in the content library.
type LibraryItem struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Type        string    `json:"type" yaml:"type"`
	Size        int64     `json:"size" yaml:"size"`
	UploadedBy  string    `json:"uploadedBy" yaml:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt" yaml:"uploadedAt"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string    `json:"url" yaml:"url"`
}

// Asset is a tracked physical asset.
type Asset struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Type            string    `json:"type" yaml:"type"`
	Category        string    `json:"category" yaml:"category"`
	Status          string    `json:"status" yaml:"status"`
	Value           float64   `json:"value" yaml:"value"`
	AssignedTo      string    `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty"`
	Location        string    `json:"location" yaml:"location"`
	PurchaseDate    time.Time `json:"purchaseDate" yaml:"purchaseDate"`
	LastMaintenance time.Time `json:"lastMaintenance,omitzero" yaml:"lastMaintenance,omitempty"`
}

// Dataset is the full initial content of the service.
type Dataset struct {
	People   []Person      `yaml:"people"`
	Library  []LibraryItem `yaml:"library"`
	Assets   []Asset       `yaml:"assets"`
	Activity []Activity    `yaml:"activity"`
}

// CollectionInfo describes a collection for navigation and rendering.
type CollectionInfo struct {
	Key        string            `json:"key"`
	Group      string            `json:"group"`
	Label      string            `json:"label"`
	Columns    []export.Column   `json:"columns"`
	SearchKeys []string          `json:"searchKeys"`
	Filters    []view.FilterSpec `json:"filters"`
	Actions    []ActionInfo      `json:"actions"`
}

// ActionInfo describes a bulk action without its implementation.
type ActionInfo struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Destructive bool   `json:"destructive"`
}

// Row is one rendered item: its id and display text per column key.
type Row struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

// ViewResult is the type-erased view model of one render.
type ViewResult struct {
	Collection string                 `json:"collection"`
	Rows       []Row                  `json:"rows"`
	Meta       view.PageMeta          `json:"meta"`
	Pages      []view.PageLink        `json:"pages"`
	Chips      []view.Chip            `json:"chips,omitempty"`
	VisibleIDs []string               `json:"visibleIds"`
	State      view.State             `json:"state"`
	Selection  view.SelectionSnapshot `json:"selection"`
	Pending    *PendingInfo           `json:"pending,omitempty"`
}

// PendingInfo describes a destructive action awaiting confirmation.
type PendingInfo struct {
	Token  string `json:"token"`
	Action string `json:"action"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
	Count  int    `json:"count"`
}

// HeaderIndex maps column names (lowercase) to their position in a CSV row.
type HeaderIndex map[string]int

// FieldType is the expected data type of an imported CSV column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
)

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	Name       string              // Column header name, matched case-insensitively
	Type       FieldType           // Expected data type
	Required   bool                // Column must exist in the header and be non-empty
	EnumValues []string            // Valid values for FieldEnum
	Normalizer func(string) string // Optional transformation applied before validation
}

// FailedRow is an imported row that was rejected.
type FailedRow struct {
	LineNumber int      `json:"lineNumber"`
	Reason     string   `json:"reason"`
	Data       []string `json:"data"`
}

// ImportResult reports an import.
type ImportResult struct {
	FileName   string        `json:"fileName"`
	TotalRows  int           `json:"totalRows"`
	Inserted   int           `json:"inserted"`
	Skipped    int           `json:"skipped"`
	FailedRows []FailedRow   `json:"failedRows,omitempty"`
	Duration   time.Duration `json:"duration"`
}
