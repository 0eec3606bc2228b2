// Package csvsource reads bids from delimited text exports.
package csvsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout maps bid fields to zero-based CSV column indexes.
type Layout struct {
	Title     int  `yaml:"title"`
	ID        int  `yaml:"id"`
	Amount    int  `yaml:"amount"`
	Fund      int  `yaml:"fund"`
	HasHeader bool `yaml:"has_header"`
}

// DefaultLayout matches the eBid monthly sales export.
var DefaultLayout = Layout{
	Title:     0,
	ID:        1,
	Amount:    4,
	Fund:      8,
	HasHeader: true,
}

// LoadLayout reads a column layout from a YAML file.
// An empty path returns DefaultLayout. Keys missing from the file keep
// their DefaultLayout values.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	layout := DefaultLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}

	return layout, nil
}

// Validate checks that every column index is usable.
func (l Layout) Validate() error {
	columns := map[string]int{
		"title":  l.Title,
		"id":     l.ID,
		"amount": l.Amount,
		"fund":   l.Fund,
	}
	for name, idx := range columns {
		if idx < 0 {
			return fmt.Errorf("invalid layout: column %q has negative index %d", name, idx)
		}
	}
	return nil
}

// width returns the minimum number of fields a row needs.
func (l Layout) width() int {
	return max(l.Title, l.ID, l.Amount, l.Fund) + 1
}
