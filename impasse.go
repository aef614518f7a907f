// Package impasse walks foreign scene graphs in place. Scenes come out of
// an engine backend as raw C-layout allocations; every accessor here is a
// zero-copy view sharing the scene's storage and pinning its lifetime.
//
// Scenes obtained from Load are read-only down to the last float. To edit,
// take a deep clone with CopyMutable and work on that.
package impasse

import (
	"unsafe"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/config"
	"github.com/SaladDais/Impasse/engine"
)

func mergeFlags(flags []ai.PostProcess) ai.PostProcess {
	if len(flags) == 0 {
		return config.GetDefaultPostProcess()
	}
	var out ai.PostProcess
	for _, f := range flags {
		out |= f
	}
	return out
}

// ImportedScene is a read-only scene owned by the engine. Dropping every
// reference eventually releases it; calling Release does so deterministically.
type ImportedScene struct {
	Scene
}

// CopiedScene is a mutable deep clone produced by CopyMutable.
type CopiedScene struct {
	Scene
}

func newImported(raw *ai.Scene, eng engine.Engine) *ImportedScene {
	scope := adapt.NewScope(unsafe.Pointer(raw), true, func() {
		eng.ReleaseImport(raw)
	})
	return &ImportedScene{Scene{h: adapt.NewHandle(unsafe.Pointer(raw), scope), eng: eng}}
}

// Load imports the file at path through the default engine. With no flags
// the configured default post-processing applies.
func Load(path string, flags ...ai.PostProcess) (*ImportedScene, error) {
	eng, err := engine.Default()
	if err != nil {
		return nil, err
	}
	return LoadWith(eng, path, flags...)
}

// LoadWith imports through an explicit engine backend.
func LoadWith(eng engine.Engine, path string, flags ...ai.PostProcess) (*ImportedScene, error) {
	raw, err := eng.ImportFile(path, mergeFlags(flags))
	if err != nil {
		return nil, err
	}
	return newImported(raw, eng), nil
}

// LoadFromMemory imports an in-memory buffer. hint names the format in
// place of a file extension.
func LoadFromMemory(data []byte, hint string, flags ...ai.PostProcess) (*ImportedScene, error) {
	eng, err := engine.Default()
	if err != nil {
		return nil, err
	}
	raw, err := eng.ImportMemory(data, hint, mergeFlags(flags))
	if err != nil {
		return nil, err
	}
	return newImported(raw, eng), nil
}

// Release frees the scene immediately. Views derived from it fail their
// next write check; reading through them is a use-after-free, same as in
// the engine's native API.
func (s *ImportedScene) Release() { s.h.Scope().Release() }

// CopyMutable asks the engine for a deep clone and wraps it writable. The
// clone's lifetime is independent of the source scene.
func (s *ImportedScene) CopyMutable() (*CopiedScene, error) {
	raw, err := s.eng.CopyScene(s.raw())
	if err != nil {
		return nil, err
	}
	eng := s.eng
	scope := adapt.NewScope(unsafe.Pointer(raw), false, func() {
		eng.FreeScene(raw)
	})
	return &CopiedScene{Scene{h: adapt.NewHandle(unsafe.Pointer(raw), scope), eng: eng}}, nil
}

// Release frees the clone immediately.
func (s *CopiedScene) Release() { s.h.Scope().Release() }
