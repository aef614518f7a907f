// Package engine declares the narrow surface this module consumes from the
// foreign import/export engine. The engine owns every byte of scene memory
// and all file-format knowledge; this layer only walks what it is handed.
package engine

import (
	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Engine is one import/export backend. Implementations return fully
// allocated scene graphs laid out per package ai and keep them valid until
// the matching release call.
//
// Failure is reported as an error wrapping adapt.ErrEngineFailed; a nil
// scene with a nil error never occurs.
type Engine interface {
	// ImportFile parses the file at path into a new scene graph. The
	// result is owned by the engine and released with ReleaseImport.
	ImportFile(path string, flags ai.PostProcess) (*ai.Scene, error)

	// ImportMemory parses an in-memory buffer. hint names the format,
	// since there is no file extension to sniff.
	ImportMemory(data []byte, hint string, flags ai.PostProcess) (*ai.Scene, error)

	// ReleaseImport frees a scene obtained from ImportFile/ImportMemory.
	ReleaseImport(scene *ai.Scene)

	// CopyScene produces an independent, mutable clone of scene. The
	// clone shares no storage with the original and is released with
	// FreeScene.
	CopyScene(scene *ai.Scene) (*ai.Scene, error)

	// FreeScene frees a scene obtained from CopyScene.
	FreeScene(scene *ai.Scene)

	// ExportScene writes scene to path in the format named by formatID.
	ExportScene(scene *ai.Scene, formatID, path string, flags ai.PostProcess) error

	// ExportToBlob exports scene into memory, returning the head of a
	// linked list of named blobs. Releasing the head releases the chain.
	ExportToBlob(scene *ai.Scene, formatID string, flags ai.PostProcess) (*ai.ExportDataBlob, error)

	// ReleaseBlob frees a blob chain obtained from ExportToBlob.
	ReleaseBlob(blob *ai.ExportDataBlob)
}

var defaultEngine Engine

// SetDefault installs the engine used by the package-level scene loading
// functions. Drivers call this from their constructors or the host program
// wires it at startup.
func SetDefault(e Engine) { defaultEngine = e }

// Default returns the installed engine.
func Default() (Engine, error) {
	if defaultEngine == nil {
		return nil, errors.Wrap(adapt.ErrEngineFailed, "no engine installed")
	}
	return defaultEngine, nil
}
