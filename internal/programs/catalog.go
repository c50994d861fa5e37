package programs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrNotFound indicates no program has the requested id.
	ErrNotFound = errors.New("program not found")

	// ErrNoLabel indicates no status label applies to a progress value.
	ErrNoLabel = errors.New("no status label for progress")
)

// Catalog provides read-only, indexed access to a fixed program list.
// A Catalog is never modified after construction and is safe for
// concurrent use.
type Catalog struct {
	name     string
	programs []Program
	byID     map[int]int // id -> index into programs
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := newNamedCatalog(BuiltinName, builtinPrograms())
		if err != nil {
			panic(fmt.Sprintf("built-in program catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// NewCatalog validates programs and builds an indexed catalog from a copy
// of them. The caller keeps no handle into the catalog's storage.
func NewCatalog(programs []Program) (*Catalog, error) {
	return newNamedCatalog("", programs)
}

// NewCatalogFromFile builds a catalog from a decoded catalog file.
func NewCatalogFromFile(f *File) (*Catalog, error) {
	if f.Version != FileVersion {
		return nil, fmt.Errorf("unsupported catalog version: %d", f.Version)
	}
	return newNamedCatalog(f.Name, f.Programs)
}

func newNamedCatalog(name string, programs []Program) (*Catalog, error) {
	if err := Validate(programs).Err(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		name:     name,
		programs: make([]Program, len(programs)),
		byID:     make(map[int]int, len(programs)),
	}
	for i, p := range programs {
		c.programs[i] = p.Clone()
		c.byID[p.ID] = i
	}
	return c, nil
}

// Name returns the catalog name, empty for unnamed catalogs.
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of programs.
func (c *Catalog) Len() int {
	return len(c.programs)
}

// All returns every program in authored order.
func (c *Catalog) All() []Program {
	out := make([]Program, len(c.programs))
	for i, p := range c.programs {
		out[i] = p.Clone()
	}
	return out
}

// IDs returns program ids in authored order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.programs))
	for i, p := range c.programs {
		ids[i] = p.ID
	}
	return ids
}

// Lookup finds a program by id.
func (c *Catalog) Lookup(id int) (Program, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Program{}, false
	}
	return c.programs[i].Clone(), true
}

// ByID finds a program by id. A missing id returns an error wrapping
// ErrNotFound.
func (c *Catalog) ByID(id int) (Program, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return Program{}, fmt.Errorf("program %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// ByDeviceKey finds a program by the firmware key, e.g. "program01".
func (c *Catalog) ByDeviceKey(key string) (Program, error) {
	id, err := ParseDeviceKey(key)
	if err != nil {
		return Program{}, err
	}
	return c.ByID(id)
}

// Search finds programs whose name or description contains query.
// An empty query returns every program.
func (c *Catalog) Search(query string) []Program {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}

	var matches []Program
	for _, p := range c.programs {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matches = append(matches, p.Clone())
		}
	}
	return matches
}

// File returns the catalog as a serializable file.
func (c *Catalog) File() *File {
	name := c.name
	if name == "" {
		name = "custom"
	}
	return &File{
		Version:  FileVersion,
		Name:     name,
		Programs: c.All(),
	}
}
