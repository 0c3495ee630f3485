package chart

import (
	"bytes"
	"io"
	"sort"
	"sync"
)

// Renderer is anything that can draw itself as a document, such as a
// go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

// Surface is a named drawing target. It keeps the last drawn document until
// it is cleared.
type Surface struct {
	id string

	mu       sync.RWMutex
	document []byte
	draws    int
}

func NewSurface(id string) *Surface {
	return &Surface{id: id}
}

func (surface *Surface) ID() string {
	return surface.id
}

func (surface *Surface) Draw(renderer Renderer) error {
	var output bytes.Buffer
	if err := renderer.Render(&output); err != nil {
		return err
	}

	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.document = output.Bytes()
	surface.draws++
	return nil
}

func (surface *Surface) Clear() {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.document = nil
}

// Document returns a copy of the drawn document and false when the surface
// is blank.
func (surface *Surface) Document() ([]byte, bool) {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	if surface.document == nil {
		return nil, false
	}
	return append([]byte(nil), surface.document...), true
}

func (surface *Surface) Draws() int {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	return surface.draws
}

// Registry is the set of surfaces a page exposes, keyed by identifier.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

func NewRegistry(ids ...string) *Registry {
	registry := &Registry{surfaces: make(map[string]*Surface, len(ids))}
	for _, id := range ids {
		registry.Add(id)
	}
	return registry
}

// Add returns the surface for id, creating it on first use.
func (registry *Registry) Add(id string) *Surface {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if surface, ok := registry.surfaces[id]; ok {
		return surface
	}
	surface := NewSurface(id)
	registry.surfaces[id] = surface
	return surface
}

func (registry *Registry) Lookup(id string) (*Surface, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	surface, ok := registry.surfaces[id]
	return surface, ok
}

func (registry *Registry) IDs() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	ids := make([]string, 0, len(registry.surfaces))
	for id := range registry.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
