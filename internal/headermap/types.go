package headermap

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// HeaderAlias maps a header as spelled in a report to a known header label
type HeaderAlias struct {
	SheetHeader string  `json:"sheet_header"`
	Canonical   string  `json:"canonical"`
	Confidence  float64 `json:"confidence"`
}

// AliasFile holds all known header aliases
type AliasFile struct {
	Aliases []HeaderAlias `json:"aliases"`
}

// SaveToFile saves the aliases to a JSON file
func (af *AliasFile) SaveToFile(path string) error {
	data, err := json.MarshalIndent(af, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads aliases from a JSON file. A missing file yields an empty set.
func LoadFromFile(path string) (*AliasFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AliasFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	var af AliasFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, err
	}
	return &af, nil
}

// Map returns the aliases keyed by sheet header
func (af *AliasFile) Map() map[string]string {
	out := make(map[string]string, len(af.Aliases))
	for _, a := range af.Aliases {
		out[a.SheetHeader] = a.Canonical
	}
	return out
}

// Merge adds or replaces aliases by sheet header and keeps the list sorted
func (af *AliasFile) Merge(aliases []HeaderAlias) {
	index := make(map[string]int, len(af.Aliases))
	for i, a := range af.Aliases {
		index[a.SheetHeader] = i
	}
	for _, a := range aliases {
		if i, ok := index[a.SheetHeader]; ok {
			af.Aliases[i] = a
			continue
		}
		index[a.SheetHeader] = len(af.Aliases)
		af.Aliases = append(af.Aliases, a)
	}
	sort.Slice(af.Aliases, func(i, j int) bool {
		return af.Aliases[i].SheetHeader < af.Aliases[j].SheetHeader
	})
}
