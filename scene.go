package impasse

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/engine"
)

// Scene wraps an aiScene and is the root of every accessor chain. Every
// wrapper derived from it shares its scope, so the underlying memory stays
// alive for as long as any of them is reachable.
type Scene struct {
	h   adapt.Handle
	eng engine.Engine
}

// SceneFor rebuilds a scene wrapper from a scope that is still alive, for
// example the scope of a mesh view that outlived its original Scene value.
func SceneFor(scope *adapt.Scope) *Scene {
	return &Scene{h: adapt.NewHandle(scope.Root(), scope)}
}

func sceneOf(h adapt.Handle) *Scene {
	return &Scene{h: h.AtPtr(h.Scope().Root())}
}

func (s *Scene) raw() *ai.Scene { return (*ai.Scene)(s.h.Ptr()) }

func (s *Scene) Handle() adapt.Handle { return s.h }

func (s *Scene) Scope() *adapt.Scope { return s.h.Scope() }

func (s *Scene) Readonly() bool { return s.h.Readonly() }

func (s *Scene) Flags() ai.SceneFlags { return ai.SceneFlags(s.raw().Flags) }

func (s *Scene) Name() string { return goString(&s.raw().Name) }

func (s *Scene) SetName(v string) error { return setAIString(s.h, &s.raw().Name, v) }

// RootNode returns the node hierarchy root. Nil() reports true for scenes
// without one.
func (s *Scene) RootNode() Node {
	return Node{h: s.h.AtPtr(unsafe.Pointer(s.raw().RootNode))}
}

func (s *Scene) Metadata() Metadata {
	return Metadata{h: s.h.AtPtr(unsafe.Pointer(s.raw().Metadata))}
}

func (s *Scene) Meshes() adapt.Seq[Mesh] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Meshes)), &r.NumMeshes,
		func(h adapt.Handle) Mesh { return Mesh{h: h} }, nil)
}

func (s *Scene) Materials() adapt.Seq[Material] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Materials)), &r.NumMaterials,
		func(h adapt.Handle) Material { return Material{h: h} }, nil)
}

func (s *Scene) Textures() adapt.Seq[Texture] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Textures)), &r.NumTextures,
		func(h adapt.Handle) Texture { return Texture{h: h} }, nil)
}

func (s *Scene) Lights() adapt.Seq[Light] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Lights)), &r.NumLights,
		func(h adapt.Handle) Light { return Light{h: h} }, nil)
}

func (s *Scene) Cameras() adapt.Seq[Camera] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Cameras)), &r.NumCameras,
		func(h adapt.Handle) Camera { return Camera{h: h} }, nil)
}

func (s *Scene) Animations() adapt.Seq[Animation] {
	r := s.raw()
	return adapt.NewDynPtrSeq(
		s.h.AtPtr(unsafe.Pointer(r.Animations)), &r.NumAnimations,
		func(h adapt.Handle) Animation { return Animation{h: h} }, nil)
}

// TextureByRef resolves a one-based embedded texture reference as stored in
// material properties. Zero means "no texture" and yields a Texture whose
// Nil() is true.
func (s *Scene) TextureByRef(ref uint32) (Texture, error) {
	if ref == 0 {
		return Texture{}, nil
	}
	i := ref - 1
	if i >= s.raw().NumTextures {
		return Texture{}, errors.Wrapf(adapt.ErrNotFound, "texture reference %d out of range", ref)
	}
	return s.Textures().At(int(i)), nil
}

// TextureRef returns the one-based reference for an embedded texture of this
// scene, matching by pointer identity.
func (s *Scene) TextureRef(t Texture) (uint32, error) {
	if t.Nil() {
		return 0, nil
	}
	texs := s.Textures()
	for i, n := 0, texs.Len(); i < n; i++ {
		if texs.At(i).h.Eq(t.h) {
			return uint32(i) + 1, nil
		}
	}
	return 0, errors.Wrap(adapt.ErrNotFound, "texture does not belong to this scene")
}

// MeshRef returns the index of a mesh in this scene, matching by pointer
// identity.
func (s *Scene) MeshRef(m Mesh) (uint32, error) {
	meshes := s.Meshes()
	for i, n := 0, meshes.Len(); i < n; i++ {
		if meshes.At(i).h.Eq(m.h) {
			return uint32(i), nil
		}
	}
	return 0, errors.Wrap(adapt.ErrNotFound, "mesh does not belong to this scene")
}

// MaterialRef returns the index of a material in this scene, matching by
// pointer identity.
func (s *Scene) MaterialRef(m Material) (uint32, error) {
	mats := s.Materials()
	for i, n := 0, mats.Len(); i < n; i++ {
		if mats.At(i).h.Eq(m.h) {
			return uint32(i), nil
		}
	}
	return 0, errors.Wrap(adapt.ErrNotFound, "material does not belong to this scene")
}

func (s *Scene) engineOrDefault() (engine.Engine, error) {
	if s.eng != nil {
		return s.eng, nil
	}
	return engine.Default()
}

// Export writes the scene to a file in the engine format named by formatID.
func (s *Scene) Export(formatID, path string, flags ...ai.PostProcess) error {
	eng, err := s.engineOrDefault()
	if err != nil {
		return err
	}
	return eng.ExportScene(s.raw(), formatID, path, mergeFlags(flags))
}

// ExportBlob serializes the scene into an in-memory blob chain.
func (s *Scene) ExportBlob(formatID string, flags ...ai.PostProcess) (*BlobSet, error) {
	eng, err := s.engineOrDefault()
	if err != nil {
		return nil, err
	}
	head, err := eng.ExportToBlob(s.raw(), formatID, mergeFlags(flags))
	if err != nil {
		return nil, err
	}
	return newBlobSet(head, eng), nil
}
