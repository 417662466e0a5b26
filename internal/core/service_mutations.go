package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// PersonInput is the editable part of a Person.
type PersonInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// LibraryInput describes a new library item.
type LibraryInput struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Size        int64    `json:"size"`
	UploadedBy  string   `json:"uploadedBy"`
	UploadedAt  string   `json:"uploadedAt"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
}

// AssetInput describes a new asset.
type AssetInput struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	Value        float64 `json:"value"`
	AssignedTo   string  `json:"assignedTo"`
	Location     string  `json:"location"`
	PurchaseDate string  `json:"purchaseDate"`
}

// defaultAssetCategory matches what the uploader stored when none was given.
const defaultAssetCategory = "document"

// normalize trims every field and fills the defaults for a new person.
func (in PersonInput) normalize() PersonInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.Status = strings.TrimSpace(in.Status)
	in.Department = strings.TrimSpace(in.Department)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Role == "" {
		in.Role = "User"
	}
	if in.Status == "" {
		in.Status = "active"
	}
	return in
}

// validate checks in and canonicalizes its enum fields.
func (in *PersonInput) validate() error {
	var errs ValidationErrors
	if in.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "required field is empty"})
	}
	switch {
	case in.Email == "":
		errs = append(errs, ValidationError{Field: "email", Message: "required field is empty"})
	case !strings.Contains(in.Email, "@"):
		errs = append(errs, ValidationError{Field: "email", Value: in.Email, Message: "invalid email address"})
	}
	if role, ok := canonical(Roles, in.Role); ok {
		in.Role = role
	} else {
		errs = append(errs, enumError("role", in.Role, Roles))
	}
	if status, ok := canonical(PersonStatuses, in.Status); ok {
		in.Status = status
	} else {
		errs = append(errs, enumError("status", in.Status, PersonStatuses))
	}
	return errs.Err()
}

func enumError(field, value string, allowed []string) ValidationError {
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("invalid enum value %q: must be one of %s", value, strings.Join(allowed, ", ")),
	}
}

// AddPerson validates in and adds a new person.
func (s *Service) AddPerson(ctx context.Context, in PersonInput) (Person, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return Person{}, fmt.Errorf("add person: %w", err)
	}

	p := Person{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Status:     in.Status,
		Department: in.Department,
		Phone:      in.Phone,
		CreatedAt:  s.today(),
	}
	s.people.Add(p)

	s.LogActivity(ctx, ActivityParams{
		Type:       ActivityUser,
		Action:     "added new user",
		Item:       p.Name,
		Collection: PeopleKey,
		Count:      1,
	})
	logging.FromContext(ctx).Info("person added", "id", p.ID)
	return p, nil
}

// UpdatePerson validates in and replaces the editable fields of person id.
func (s *Service) UpdatePerson(ctx context.Context, id string, in PersonInput) (Person, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return Person{}, fmt.Errorf("update person: %w", err)
	}

	p, err := s.people.Update(id, func(p *Person) error {
		p.Name = in.Name
		p.Email = in.Email
		p.Role = in.Role
		p.Status = in.Status
		p.Department = in.Department
		p.Phone = in.Phone
		return nil
	})
	if err != nil {
		return Person{}, fmt.Errorf("update person %s: %w", id, err)
	}

	s.LogActivity(ctx, ActivityParams{
		Type:       ActivityUpdate,
		Action:     "updated user",
		Item:       p.Name,
		Collection: PeopleKey,
		Count:      1,
	})
	return p, nil
}

// AddLibraryItem validates in and adds a new library item. The uploader
// defaults to the actor in ctx.
func (s *Service) AddLibraryItem(ctx context.Context, in LibraryInput) (LibraryItem, error) {
	var errs ValidationErrors

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "required field is empty"})
	}

	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = "document"
	}
	if t, ok := canonical(LibraryTypes, typ); ok {
		typ = t
	} else {
		errs = append(errs, enumError("type", typ, LibraryTypes))
	}

	if in.Size < 0 {
		errs = append(errs, ValidationError{Field: "size", Value: fmt.Sprint(in.Size), Message: "invalid number: size must not be negative"})
	}

	uploadedAt, ok := s.dateOrToday(in.UploadedAt)
	if !ok {
		errs = append(errs, ValidationError{Field: "uploadedAt", Value: in.UploadedAt, Message: "invalid date"})
	}

	if err := errs.Err(); err != nil {
		return LibraryItem{}, fmt.Errorf("add library item: %w", err)
	}

	uploadedBy := strings.TrimSpace(in.UploadedBy)
	if uploadedBy == "" {
		uploadedBy = ActorFromContext(ctx)
	}

	var tags []string
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	item := LibraryItem{
		ID:          uuid.NewString(),
		Title:       title,
		Type:        typ,
		Size:        in.Size,
		UploadedBy:  uploadedBy,
		UploadedAt:  uploadedAt,
		Tags:        tags,
		Description: strings.TrimSpace(in.Description),
		URL:         strings.TrimSpace(in.URL),
	}
	s.library.Add(item)

	s.LogActivity(ctx, ActivityParams{
		Type:       ActivityUpload,
		Action:     "uploaded new " + typ,
		Item:       item.Title,
		Collection: LibraryKey,
		Count:      1,
	})
	logging.FromContext(ctx).Info("library item added", "id", item.ID, "type", typ)
	return item, nil
}

// AddAsset validates in and adds a new asset.
func (s *Service) AddAsset(ctx context.Context, in AssetInput) (Asset, error) {
	var errs ValidationErrors

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "required field is empty"})
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "pending"
	}
	if st, ok := canonical(AssetStatuses, status); ok {
		status = st
	} else {
		errs = append(errs, enumError("status", status, AssetStatuses))
	}

	if in.Value < 0 {
		errs = append(errs, ValidationError{Field: "value", Value: fmt.Sprint(in.Value), Message: "invalid number: value must not be negative"})
	}

	purchased, ok := s.dateOrToday(in.PurchaseDate)
	if !ok {
		errs = append(errs, ValidationError{Field: "purchaseDate", Value: in.PurchaseDate, Message: "invalid date"})
	}

	if err := errs.Err(); err != nil {
		return Asset{}, fmt.Errorf("add asset: %w", err)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultAssetCategory
	}

	a := Asset{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         strings.TrimSpace(in.Type),
		Category:     category,
		Status:       status,
		Value:        in.Value,
		AssignedTo:   strings.TrimSpace(in.AssignedTo),
		Location:     strings.TrimSpace(in.Location),
		PurchaseDate: purchased,
	}
	s.assets.Add(a)

	s.LogActivity(ctx, ActivityParams{
		Type:       ActivityUpload,
		Action:     "added new asset",
		Item:       a.Name,
		Collection: AssetsKey,
		Count:      1,
	})
	logging.FromContext(ctx).Info("asset added", "id", a.ID)
	return a, nil
}

// dateOrToday parses s, defaulting to today when blank.
func (s *Service) dateOrToday(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return s.today(), true
	}
	return view.ParseDate(v)
}
