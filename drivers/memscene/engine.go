// Package memscene is an import/export engine that fabricates scene graphs
// in process memory, laid out byte-for-byte like the foreign engine's
// allocations. It backs the test suite and the demo binary: fixtures are
// registered as builder functions and "imported" by name.
//
// It deliberately parses no 3D formats. Its dump format (export side) is an
// opaque engine property, readable only by this driver.
package memscene

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Engine implements engine.Engine over arena-backed scenes.
type Engine struct {
	mu       sync.Mutex
	fixtures map[string]func(*Builder)
	live     map[*ai.Scene]*arena
	blobs    map[*ai.ExportDataBlob]*arena
}

func New() *Engine {
	return &Engine{
		fixtures: make(map[string]func(*Builder)),
		live:     make(map[*ai.Scene]*arena),
		blobs:    make(map[*ai.ExportDataBlob]*arena),
	}
}

// Register installs a fixture under name. ImportFile(name) runs build
// against a fresh builder and returns the finished scene.
func (e *Engine) Register(name string, build func(*Builder)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixtures[name] = build
}

func (e *Engine) build(name string) (*ai.Scene, error) {
	e.mu.Lock()
	fn := e.fixtures[name]
	e.mu.Unlock()
	if fn == nil {
		return nil, errors.Wrapf(adapt.ErrEngineFailed, "no fixture %q", name)
	}
	b := NewBuilder()
	fn(b)
	scene := b.finish()
	e.mu.Lock()
	e.live[scene] = b.a
	e.mu.Unlock()
	return scene, nil
}

// ImportFile resolves path as a fixture name. Post-processing flags are
// accepted and ignored; fixtures are born fully processed.
func (e *Engine) ImportFile(path string, _ ai.PostProcess) (*ai.Scene, error) {
	return e.build(path)
}

// ImportMemory resolves the buffer contents (trimmed) as a fixture name,
// falling back to the format hint. There is no real format to parse.
func (e *Engine) ImportMemory(data []byte, hint string, _ ai.PostProcess) (*ai.Scene, error) {
	if s, err := e.build(string(bytes.TrimSpace(data))); err == nil {
		return s, nil
	}
	return e.build(hint)
}

func (e *Engine) ReleaseImport(scene *ai.Scene) { e.drop(scene) }

// FreeScene releases a CopyScene clone. Same bookkeeping as an import
// release, kept separate to mirror the foreign call surface.
func (e *Engine) FreeScene(scene *ai.Scene) { e.drop(scene) }

func (e *Engine) drop(scene *ai.Scene) {
	e.mu.Lock()
	delete(e.live, scene)
	e.mu.Unlock()
}

func (e *Engine) ReleaseBlob(blob *ai.ExportDataBlob) {
	e.mu.Lock()
	delete(e.blobs, blob)
	e.mu.Unlock()
}

// CopyScene deep-clones scene into a new arena. The clone shares nothing
// with the original.
func (e *Engine) CopyScene(scene *ai.Scene) (*ai.Scene, error) {
	if scene == nil {
		return nil, errors.Wrap(adapt.ErrEngineFailed, "copy of nil scene")
	}
	a := &arena{}
	clone := cloneScene(a, scene)
	e.mu.Lock()
	e.live[clone] = a
	e.mu.Unlock()
	return clone, nil
}
