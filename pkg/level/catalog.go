// pkg/level/catalog.go
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Catalog errors
var (
	ErrUnknownLevel     = errors.New("unknown level")
	ErrDuplicateLevel   = errors.New("duplicate level id")
	ErrUnknownSuccessor = errors.New("successor level not in catalog")
	ErrEmptyCatalog     = errors.New("catalog has no levels")
)

// Catalog is an ordered table of levels. Progression between levels is
// resolved by looking up Level.Next.
type Catalog struct {
	order  []ID
	levels map[ID]*Level
}

// File is the on-disk layout of a level catalog
type File struct {
	Levels []Definition `json:"levels"`
}

// NewCatalog builds every definition and checks that ids are unique and
// that every successor exists.
func NewCatalog(defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{levels: make(map[ID]*Level, len(defs))}
	for _, d := range defs {
		lvl, err := d.Build()
		if err != nil {
			return nil, err
		}
		if _, exists := c.levels[lvl.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLevel, lvl.ID)
		}
		c.levels[lvl.ID] = lvl
		c.order = append(c.order, lvl.ID)
	}

	for _, id := range c.order {
		next := c.levels[id].Next
		if next == "" {
			continue
		}
		if _, ok := c.levels[next]; !ok {
			return nil, fmt.Errorf("level %q: %w: %q", id, ErrUnknownSuccessor, next)
		}
	}

	return c, nil
}

// Get returns the level with the given id
func (c *Catalog) Get(id ID) (*Level, error) {
	lvl, ok := c.levels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return lvl, nil
}

// First returns the first level in catalog order
func (c *Catalog) First() *Level {
	return c.levels[c.order[0]]
}

// Next returns the successor of the given level. ok is false when the
// level is the last one.
func (c *Catalog) Next(id ID) (lvl *Level, ok bool, err error) {
	current, err := c.Get(id)
	if err != nil {
		return nil, false, err
	}
	if current.Next == "" {
		return nil, false, nil
	}
	return c.levels[current.Next], true, nil
}

// IDs returns level ids in catalog order
func (c *Catalog) IDs() []ID {
	return append([]ID(nil), c.order...)
}

// Len returns the number of levels
func (c *Catalog) Len() int {
	return len(c.order)
}

// Definitions returns the data form of every level in order
func (c *Catalog) Definitions() []Definition {
	defs := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.levels[id].Definition())
	}
	return defs
}

// Decode reads a JSON catalog
func Decode(r io.Reader) (*Catalog, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse level file: %w", err)
	}
	return NewCatalog(f.Levels)
}

// LoadFile reads a catalog from a JSON file
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// SaveFile writes the catalog to a JSON file
func SaveFile(c *Catalog, path string) error {
	data, err := json.MarshalIndent(File{Levels: c.Definitions()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal levels: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	return nil
}
