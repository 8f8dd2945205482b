// Package catalog owns the registry of materialized tools. Registration
// runs single-threaded at startup; after that the catalog is read-only and
// safe for concurrent lookups from the dispatch layer.
package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bobmcallan/toolgate/internal/schema"
	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/wire"
)

// DefaultVersion is used for tools registered outside a versioned toolkit.
const DefaultVersion = "default"

// InvokeEndpoint is the path advertised in catalog listings.
const InvokeEndpoint = "/worker/tools/invoke"

// ToolMeta is registration bookkeeping. It never crosses the wire.
type ToolMeta struct {
	Toolkit      string
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// MaterializedTool bundles a callable's binding with its derived wire
// contract and a compiled validator for its input schema. Entries are
// owned by the catalog and treated as read-only by everyone else.
type MaterializedTool struct {
	Definition     wire.ToolDefinition
	Binding        *schema.Binding
	InputValidator *gojsonschema.Schema
	Meta           ToolMeta
}

// Catalog maps qualified tool names to materialized tools. The effective
// key is (fully qualified name, version); lookups without a version get
// whichever version was registered for that name most recently.
type Catalog struct {
	mu      sync.RWMutex
	tools   map[string]*MaterializedTool
	current map[string]string // fq name -> version served for bare lookups
	order   []string          // registration order of keys, not a contract
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		tools:   make(map[string]*MaterializedTool),
		current: make(map[string]string),
	}
}

func key(name, version string) string { return name + "@" + version }

// AddTool infers the schema for a single descriptor and inserts it under
// the given group name with the default version. Re-registering the same
// (name, version) overwrites the previous entry.
func (c *Catalog) AddTool(d tool.Descriptor, group string) error {
	return c.add(d, group, DefaultVersion)
}

// AddToolkit registers every descriptor in the toolkit, using the
// toolkit's own version. The first failing tool aborts the registration.
func (c *Catalog) AddToolkit(tk tool.Toolkit) error {
	version := tk.Version
	if version == "" {
		version = DefaultVersion
	}
	for _, d := range tk.Tools {
		if err := c.add(d, tk.Name, version); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) add(d tool.Descriptor, group, version string) error {
	def, binding, err := schema.Infer(d, group, version)
	if err != nil {
		return err
	}

	validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema.InputJSONSchema(def)))
	if err != nil {
		return fmt.Errorf("compiling input schema for tool %q: %w", def.FullyQualified, err)
	}

	now := time.Now().UTC()
	mt := &MaterializedTool{
		Definition:     def,
		Binding:        binding,
		InputValidator: validator,
		Meta:           ToolMeta{Toolkit: group, RegisteredAt: now, UpdatedAt: now},
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(def.FullyQualified, version)
	if prev, ok := c.tools[k]; ok {
		mt.Meta.RegisteredAt = prev.Meta.RegisteredAt
	} else {
		c.order = append(c.order, k)
	}
	c.tools[k] = mt
	c.current[def.FullyQualified] = version
	return nil
}

// Get resolves a tool by fully qualified name. An empty version selects
// the currently served version for that name.
func (c *Catalog) Get(name, version string) (*MaterializedTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if version == "" {
		v, ok := c.current[name]
		if !ok {
			return nil, false
		}
		version = v
	}
	mt, ok := c.tools[key(name, version)]
	return mt, ok
}

// Has reports whether any version of the named tool is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.current[name]
	return ok
}

// Len returns the number of registered (name, version) entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Tools returns a snapshot of all entries in registration order. The
// ordering is incidental and not part of the catalog contract.
func (c *Catalog) Tools() []*MaterializedTool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*MaterializedTool, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.tools[k])
	}
	return out
}

// List returns the flattened discovery summary served by the catalog
// endpoint, sorted by name for stable output.
func (c *Catalog) List() []wire.CatalogEntry {
	tools := c.Tools()
	entries := make([]wire.CatalogEntry, 0, len(tools))
	for _, mt := range tools {
		entries = append(entries, wire.CatalogEntry{
			Name:        mt.Definition.FullyQualified,
			Description: mt.Definition.Description,
			Version:     mt.Definition.Version,
			Endpoint:    InvokeEndpoint,
			Deprecated:  mt.Definition.Deprecated,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].Version < entries[j].Version
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
