package core

import (
	"context"
	"errors"
	"testing"
)

func TestAddPerson(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	before := s.people.Version()

	p, err := s.AddPerson(ctx, PersonInput{
		Name:       "  Dana Scully ",
		Email:      "dana@example.com",
		Role:       "manager",
		Department: "Research",
	})
	if err != nil {
		t.Fatalf("AddPerson() error = %v", err)
	}

	if p.ID == "" || p.Name != "Dana Scully" {
		t.Errorf("person = %+v", p)
	}
	if p.Role != "Manager" {
		t.Errorf("Role = %q, want canonical Manager", p.Role)
	}
	if p.Status != "active" {
		t.Errorf("Status = %q, want default active", p.Status)
	}
	if !p.CreatedAt.Equal(day("2024-06-15")) {
		t.Errorf("CreatedAt = %v, want today", p.CreatedAt)
	}
	if s.people.Version() == before {
		t.Error("AddPerson should bump the collection version")
	}
	if got := s.Activity(ActivityFilter{Limit: 1})[0]; got.Type != ActivityUser || got.Item != "Dana Scully" {
		t.Errorf("activity = %+v", got)
	}
}

func TestAddPerson_Validation(t *testing.T) {
	tests := []struct {
		name     string
		in       PersonInput
		wantCode string
	}{
		{
			name:     "missing name",
			in:       PersonInput{Email: "x@example.com"},
			wantCode: "VAL003",
		},
		{
			name:     "email without at sign",
			in:       PersonInput{Name: "X", Email: "x.example.com"},
			wantCode: "VAL005",
		},
		{
			name:     "unknown role",
			in:       PersonInput{Name: "X", Email: "x@example.com", Role: "Owner"},
			wantCode: "VAL006",
		},
		{
			name:     "unknown status",
			in:       PersonInput{Name: "X", Email: "x@example.com", Status: "suspended"},
			wantCode: "VAL006",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			_, err := s.AddPerson(context.Background(), tt.in)
			if err == nil {
				t.Fatal("AddPerson() expected error")
			}
			if !IsValidationError(err) {
				t.Errorf("error %v should be a validation error", err)
			}
			if got := MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			if s.people.Len() != 4 {
				t.Error("invalid person must not be stored")
			}
		})
	}
}

func TestUpdatePerson(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	p, err := s.UpdatePerson(ctx, "p3", PersonInput{
		Name:   "Bob Johnson",
		Email:  "bob.j@example.com",
		Role:   "Moderator",
		Status: "ACTIVE",
	})
	if err != nil {
		t.Fatalf("UpdatePerson() error = %v", err)
	}
	if p.Email != "bob.j@example.com" || p.Role != "Moderator" || p.Status != "active" {
		t.Errorf("updated person = %+v", p)
	}
	if !p.CreatedAt.Equal(day("2024-01-05")) {
		t.Error("UpdatePerson must keep CreatedAt")
	}

	_, err = s.UpdatePerson(ctx, "missing", PersonInput{Name: "X", Email: "x@example.com"})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("UpdatePerson(missing) error = %v, want ErrItemNotFound", err)
	}
}

func TestAddLibraryItem_Defaults(t *testing.T) {
	s := newTestService(t)
	ctx := ContextWithActor(context.Background(), "Jane Smith")

	item, err := s.AddLibraryItem(ctx, LibraryInput{
		Title: "Onboarding Guide",
		Size:  4096,
		Tags:  []string{" hr ", "", "guide"},
	})
	if err != nil {
		t.Fatalf("AddLibraryItem() error = %v", err)
	}

	if item.Type != "document" {
		t.Errorf("Type = %q, want document", item.Type)
	}
	if item.UploadedBy != "Jane Smith" {
		t.Errorf("UploadedBy = %q, want the actor", item.UploadedBy)
	}
	if !item.UploadedAt.Equal(day("2024-06-15")) {
		t.Errorf("UploadedAt = %v, want today", item.UploadedAt)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "hr" {
		t.Errorf("Tags = %q, want trimmed non-empty tags", item.Tags)
	}
	if got := s.Activity(ActivityFilter{Limit: 1})[0]; got.Action != "uploaded new document" {
		t.Errorf("activity action = %q", got.Action)
	}
}

func TestAddLibraryItem_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   LibraryInput
	}{
		{"missing title", LibraryInput{}},
		{"unknown type", LibraryInput{Title: "X", Type: "spreadsheet"}},
		{"negative size", LibraryInput{Title: "X", Size: -1}},
		{"bad date", LibraryInput{Title: "X", UploadedAt: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddLibraryItem(ctx, tt.in); !IsValidationError(err) {
				t.Errorf("AddLibraryItem() error = %v, want validation error", err)
			}
		})
	}
}

func TestAddAsset_Defaults(t *testing.T) {
	s := newTestService(t)

	a, err := s.AddAsset(context.Background(), AssetInput{
		Name:         "Standing Desk",
		Value:        640,
		PurchaseDate: "03/15/2024",
	})
	if err != nil {
		t.Fatalf("AddAsset() error = %v", err)
	}

	if a.Category != "document" {
		t.Errorf("Category = %q, want the uploader default", a.Category)
	}
	if a.Status != "pending" {
		t.Errorf("Status = %q, want pending", a.Status)
	}
	if !a.PurchaseDate.Equal(day("2024-03-15")) {
		t.Errorf("PurchaseDate = %v, want 2024-03-15", a.PurchaseDate)
	}
	if s.Stats().TotalAssets != 4 {
		t.Error("asset not stored")
	}
}

func TestAddAsset_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddAsset(context.Background(), AssetInput{Status: "lost", Value: -5})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("AddAsset() error = %v, want ValidationErrors", err)
	}
	if len(errs) != 3 {
		t.Errorf("got %d validation errors, want name, status and value: %v", len(errs), errs)
	}
}
