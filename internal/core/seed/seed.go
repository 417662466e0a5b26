// Package seed loads the dashboard's initial data.
//
// The default data set is embedded in the binary. A YAML file with the
// same shape can replace it at startup (DATA_SEED_FILE).
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/dashboard/internal/core"
)

//go:embed seed.yaml
var embedded []byte

// Default returns the embedded data set.
func Default() (core.Dataset, error) {
	return Parse(bytes.NewReader(embedded))
}

// Load reads the data set at path, or the embedded one when path is empty.
func Load(path string) (core.Dataset, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a YAML data set. Unknown keys and duplicate ids are
// rejected.
func Parse(r io.Reader) (core.Dataset, error) {
	var data core.Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return core.Dataset{}, fmt.Errorf("decode seed: %w", err)
	}

	if err := unique("people", data.People, func(p core.Person) string { return p.ID }); err != nil {
		return core.Dataset{}, err
	}
	if err := unique("library", data.Library, func(l core.LibraryItem) string { return l.ID }); err != nil {
		return core.Dataset{}, err
	}
	if err := unique("assets", data.Assets, func(a core.Asset) string { return a.ID }); err != nil {
		return core.Dataset{}, err
	}
	return data, nil
}

// unique rejects repeated non-empty ids. Empty ids are assigned later.
func unique[T any](name string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := id(item)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%s: duplicate id %q", name, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
