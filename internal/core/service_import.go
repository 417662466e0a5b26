package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// AssetFieldSpecs are the columns accepted by ImportAssets. Headers match
// case-insensitively and in any order; unknown columns are ignored.
var AssetFieldSpecs = []FieldSpec{
	{Name: "Name", Type: FieldText, Required: true},
	{Name: "Type", Type: FieldText},
	{Name: "Category", Type: FieldText},
	{Name: "Status", Type: FieldEnum, EnumValues: AssetStatuses, Normalizer: strings.ToLower},
	{Name: "Value", Type: FieldNumeric},
	{Name: "Assigned To", Type: FieldText},
	{Name: "Location", Type: FieldText},
	{Name: "Purchase Date", Type: FieldDate},
	{Name: "Last Maintenance", Type: FieldDate},
}

// importCheckInterval is how many rows are read between context checks.
const importCheckInterval = 100

// ImportAssets reads a CSV of assets from r and appends every valid row.
// Invalid rows are reported in the result with their line number and
// reason; they never abort the import. The returned error is reserved for
// problems with the file itself.
func (s *Service) ImportAssets(ctx context.Context, fileName string, r io.Reader) (ImportResult, error) {
	result := ImportResult{FileName: fileName}
	if err := s.imports.Acquire(ctx); err != nil {
		return result, err
	}
	defer s.imports.Release()

	start := s.now()
	log := logging.WithFields(ctx, "file", fileName, "collection", AssetsKey)

	src := newImportReader(r)
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return result, errors.New("empty file: no header row")
	}
	if err != nil {
		return result, fmt.Errorf("invalid csv: %w", err)
	}

	headerIdx, err := ValidateHeaders(header, AssetFieldSpecs)
	if err != nil {
		return result, err
	}
	validator := NewRowValidator(AssetFieldSpecs, headerIdx)

	var valid []Asset
	for {
		if result.TotalRows%importCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("invalid csv: %w", err)
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalRows++
		line, _ := cr.FieldPos(0)

		check := validator.ValidateRow(row)
		if !check.Valid {
			result.Skipped++
			result.FailedRows = append(result.FailedRows, FailedRow{
				LineNumber: line,
				Reason:     check.Reason(),
				Data:       row,
			})
			continue
		}
		valid = append(valid, s.assetFromRow(validator, row))
	}

	if result.TotalRows == 0 {
		return result, errors.New("empty file: no data rows")
	}

	if len(valid) > 0 {
		s.assets.Add(valid...)
		s.LogActivity(ctx, ActivityParams{
			Type:       ActivityUpload,
			Action:     "imported assets",
			Item:       fileName,
			Collection: AssetsKey,
			Count:      len(valid),
		})
	}
	result.Inserted = len(valid)
	result.Duration = s.now().Sub(start)

	log.Info("asset import finished",
		"total", result.TotalRows,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"replaced_bytes", src.Replaced(),
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// assetFromRow builds an Asset from a row that passed validation.
func (s *Service) assetFromRow(v *RowValidator, row []string) Asset {
	cell := func(name string) string {
		for _, spec := range AssetFieldSpecs {
			if spec.Name == name {
				return v.Cell(row, spec)
			}
		}
		return ""
	}

	a := Asset{
		ID:         uuid.NewString(),
		Name:       cell("Name"),
		Type:       cell("Type"),
		Category:   cell("Category"),
		Status:     cell("Status"),
		AssignedTo: cell("Assigned To"),
		Location:   cell("Location"),
	}
	if a.Category == "" {
		a.Category = defaultAssetCategory
	}
	if a.Status == "" {
		a.Status = "pending"
	} else if st, ok := canonical(AssetStatuses, a.Status); ok {
		a.Status = st
	}
	if val, ok := ParseNumber(cell("Value")); ok {
		a.Value = val
	}
	if d, ok := view.ParseDate(cell("Purchase Date")); ok {
		a.PurchaseDate = d
	} else {
		a.PurchaseDate = s.today()
	}
	if d, ok := view.ParseDate(cell("Last Maintenance")); ok {
		a.LastMaintenance = d
	}
	return a
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
