// Package config reads the optional table.yaml that overrides selection
// behaviour and column presentation.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/matst80/slask-table/pkg/types"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid table config")

// TableConfig represents table.yaml.
type TableConfig struct {
	SelectionMode   types.SelectionMode   `yaml:"selectionMode"`
	SelectionMethod types.SelectionMethod `yaml:"selectionMethod"`
	Columns         []ColumnConfig        `yaml:"columns"`
}

// ColumnConfig overrides the column with the same id. Unset fields keep the
// value of the column definition.
type ColumnConfig struct {
	Id       string               `yaml:"id"`
	Title    *string              `yaml:"title,omitempty"`
	Hidden   *bool                `yaml:"hidden,omitempty"`
	Position *int                 `yaml:"position,omitempty"`
	Sort     *types.SortDirection `yaml:"sort,omitempty"`
	MinWidth *int                 `yaml:"minWidth,omitempty"`
	MaxWidth *int                 `yaml:"maxWidth,omitempty"`
}

// Parse decodes a YAML document.
func Parse(data []byte) (*TableConfig, error) {
	var cfg TableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse table config: %w", err)
	}
	return &cfg, nil
}

// LoadOptional reads path if present. A missing file yields an empty config.
func LoadOptional(path string) (*TableConfig, error) {
	if path == "" {
		return &TableConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TableConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the config back to YAML.
func (c *TableConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the overrides against the known column ids.
func (c *TableConfig) Validate(known func(id string) bool) error {
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.Id == "" {
			return fmt.Errorf("%w: column without id", ErrInvalidConfig)
		}
		if seen[col.Id] {
			return fmt.Errorf("%w: column %s listed twice", ErrInvalidConfig, col.Id)
		}
		seen[col.Id] = true
		if known != nil && !known(col.Id) {
			return fmt.Errorf("%w: unknown column %s", ErrInvalidConfig, col.Id)
		}
		if col.MinWidth != nil && col.MaxWidth != nil && *col.MaxWidth > 0 && *col.MinWidth > *col.MaxWidth {
			return fmt.Errorf("%w: column %s minWidth %d exceeds maxWidth %d", ErrInvalidConfig, col.Id, *col.MinWidth, *col.MaxWidth)
		}
	}
	return nil
}

func applyColumn[R any](override ColumnConfig, col *types.Column[R]) {
	if override.Title != nil {
		col.Title = *override.Title
	}
	if override.Hidden != nil {
		col.Hidden = *override.Hidden
	}
	if override.Position != nil {
		col.Position = *override.Position
	}
	if override.Sort != nil {
		col.SortDirectionDefault = *override.Sort
	}
	if override.MinWidth != nil {
		col.MinWidth = *override.MinWidth
	}
	if override.MaxWidth != nil {
		col.MaxWidth = *override.MaxWidth
	}
}

// Apply validates cfg against set and returns a new set with the overrides
// applied. set is not modified.
func Apply[R any](cfg *TableConfig, set types.ColumnSet[R]) (types.ColumnSet[R], error) {
	if err := cfg.Validate(func(id string) bool {
		_, ok := set.Get(id)
		return ok
	}); err != nil {
		return types.ColumnSet[R]{}, err
	}
	overrides := make(map[string]ColumnConfig, len(cfg.Columns))
	for _, o := range cfg.Columns {
		overrides[o.Id] = o
	}
	columns := set.Columns()
	for i := range columns {
		o, ok := overrides[columns[i].Id]
		if !ok {
			continue
		}
		applyColumn(o, &columns[i])
		if c := columns[i]; c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
			return types.ColumnSet[R]{}, fmt.Errorf("%w: column %s minWidth %d exceeds maxWidth %d", ErrInvalidConfig, c.Id, c.MinWidth, c.MaxWidth)
		}
	}
	return types.NewColumnSet(columns...)
}
