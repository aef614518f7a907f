package memscene

import (
	"unsafe"

	"github.com/SaladDais/Impasse/ai"
)

// Deep clone of a scene graph into a fresh arena. Mirrors the foreign
// engine's scene-copy call: the clone shares no storage with the source,
// so mutating one never shows through the other.

func view[T any](p *T, n uint32) []T {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

func cloneInline[T any](a *arena, p *T, n uint32) *T {
	src := view(p, n)
	if src == nil {
		return nil
	}
	dst := allocSlice[T](a, len(src))
	copy(dst, src)
	return &dst[0]
}

func cloneScene(a *arena, src *ai.Scene) *ai.Scene {
	dst := alloc[ai.Scene](a)
	dst.Flags = src.Flags

	if src.NumMeshes > 0 {
		ptrs := allocSlice[*ai.Mesh](a, int(src.NumMeshes))
		for i, m := range view(src.Meshes, src.NumMeshes) {
			ptrs[i] = cloneMesh(a, m)
		}
		dst.Meshes = &ptrs[0]
		dst.NumMeshes = src.NumMeshes
	}
	if src.NumMaterials > 0 {
		ptrs := allocSlice[*ai.Material](a, int(src.NumMaterials))
		for i, m := range view(src.Materials, src.NumMaterials) {
			ptrs[i] = cloneMaterial(a, m)
		}
		dst.Materials = &ptrs[0]
		dst.NumMaterials = src.NumMaterials
	}
	if src.NumTextures > 0 {
		ptrs := allocSlice[*ai.Texture](a, int(src.NumTextures))
		for i, t := range view(src.Textures, src.NumTextures) {
			ptrs[i] = cloneTexture(a, t)
		}
		dst.Textures = &ptrs[0]
		dst.NumTextures = src.NumTextures
	}
	if src.NumLights > 0 {
		ptrs := allocSlice[*ai.Light](a, int(src.NumLights))
		for i, l := range view(src.Lights, src.NumLights) {
			c := alloc[ai.Light](a)
			*c = *l
			ptrs[i] = c
		}
		dst.Lights = &ptrs[0]
		dst.NumLights = src.NumLights
	}
	if src.NumCameras > 0 {
		ptrs := allocSlice[*ai.Camera](a, int(src.NumCameras))
		for i, c := range view(src.Cameras, src.NumCameras) {
			cc := alloc[ai.Camera](a)
			*cc = *c
			ptrs[i] = cc
		}
		dst.Cameras = &ptrs[0]
		dst.NumCameras = src.NumCameras
	}
	if src.NumAnimations > 0 {
		ptrs := allocSlice[*ai.Animation](a, int(src.NumAnimations))
		for i, an := range view(src.Animations, src.NumAnimations) {
			ptrs[i] = cloneAnimation(a, an)
		}
		dst.Animations = &ptrs[0]
		dst.NumAnimations = src.NumAnimations
	}
	dst.Metadata = cloneMetadata(a, src.Metadata)
	dst.RootNode = cloneNode(a, src.RootNode, nil)
	return dst
}

func cloneNode(a *arena, src *ai.Node, parent *ai.Node) *ai.Node {
	if src == nil {
		return nil
	}
	dst := alloc[ai.Node](a)
	dst.Name = src.Name
	dst.Transformation = src.Transformation
	dst.Parent = parent
	dst.Meshes = cloneInline(a, src.Meshes, src.NumMeshes)
	dst.NumMeshes = src.NumMeshes
	dst.Metadata = cloneMetadata(a, src.Metadata)
	if src.NumChildren > 0 {
		kids := allocSlice[*ai.Node](a, int(src.NumChildren))
		for i, c := range view(src.Children, src.NumChildren) {
			kids[i] = cloneNode(a, c, dst)
		}
		dst.Children = &kids[0]
		dst.NumChildren = src.NumChildren
	}
	return dst
}

func cloneMesh(a *arena, src *ai.Mesh) *ai.Mesh {
	dst := alloc[ai.Mesh](a)
	*dst = *src

	dst.Vertices = cloneInline(a, src.Vertices, src.NumVertices)
	dst.Normals = cloneInline(a, src.Normals, src.NumVertices)
	dst.Tangents = cloneInline(a, src.Tangents, src.NumVertices)
	dst.Bitangents = cloneInline(a, src.Bitangents, src.NumVertices)
	for ch := range src.Colors {
		dst.Colors[ch] = cloneInline(a, src.Colors[ch], src.NumVertices)
	}
	for ch := range src.TextureCoords {
		dst.TextureCoords[ch] = cloneInline(a, src.TextureCoords[ch], src.NumVertices)
	}

	dst.Faces = nil
	if src.NumFaces > 0 {
		faces := allocSlice[ai.Face](a, int(src.NumFaces))
		for i, f := range view(src.Faces, src.NumFaces) {
			faces[i].NumIndices = f.NumIndices
			faces[i].Indices = cloneInline(a, f.Indices, f.NumIndices)
		}
		dst.Faces = &faces[0]
	}

	dst.Bones = nil
	if src.NumBones > 0 {
		bones := allocSlice[*ai.Bone](a, int(src.NumBones))
		for i, b := range view(src.Bones, src.NumBones) {
			c := alloc[ai.Bone](a)
			*c = *b
			c.Weights = cloneInline(a, b.Weights, b.NumWeights)
			bones[i] = c
		}
		dst.Bones = &bones[0]
	}

	dst.AnimMeshes = nil
	if src.NumAnimMeshes > 0 {
		ams := allocSlice[*ai.AnimMesh](a, int(src.NumAnimMeshes))
		for i, am := range view(src.AnimMeshes, src.NumAnimMeshes) {
			c := alloc[ai.AnimMesh](a)
			*c = *am
			c.Vertices = cloneInline(a, am.Vertices, am.NumVertices)
			c.Normals = cloneInline(a, am.Normals, am.NumVertices)
			c.Tangents = cloneInline(a, am.Tangents, am.NumVertices)
			c.Bitangents = cloneInline(a, am.Bitangents, am.NumVertices)
			for ch := range am.Colors {
				c.Colors[ch] = cloneInline(a, am.Colors[ch], am.NumVertices)
			}
			for ch := range am.TextureCoords {
				c.TextureCoords[ch] = cloneInline(a, am.TextureCoords[ch], am.NumVertices)
			}
			ams[i] = c
		}
		dst.AnimMeshes = &ams[0]
	}
	return dst
}

func cloneMaterial(a *arena, src *ai.Material) *ai.Material {
	dst := alloc[ai.Material](a)
	if src.NumProperties == 0 {
		return dst
	}
	ptrs := allocSlice[*ai.MaterialProperty](a, int(src.NumProperties))
	for i, p := range view(src.Properties, src.NumProperties) {
		c := alloc[ai.MaterialProperty](a)
		*c = *p
		buf := allocSlice[byte](a, int(p.DataLength))
		copy(buf, view(p.Data, p.DataLength))
		c.Data = bytesPtr(buf)
		ptrs[i] = c
	}
	dst.Properties = &ptrs[0]
	dst.NumProperties = src.NumProperties
	dst.NumAllocated = src.NumProperties
	return dst
}

func cloneTexture(a *arena, src *ai.Texture) *ai.Texture {
	dst := alloc[ai.Texture](a)
	*dst = *src
	if src.Data == nil {
		return dst
	}
	if src.Height > 0 {
		texels := allocSlice[ai.Texel](a, int(src.Width*src.Height))
		copy(texels, view(src.Data, src.Width*src.Height))
		dst.Data = &texels[0]
	} else {
		// Compressed: Width is the byte size of the buffer.
		buf := allocSlice[byte](a, int(src.Width))
		copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(src.Data)), src.Width))
		dst.Data = (*ai.Texel)(unsafe.Pointer(&buf[0]))
	}
	return dst
}

func cloneAnimation(a *arena, src *ai.Animation) *ai.Animation {
	dst := alloc[ai.Animation](a)
	*dst = *src

	dst.Channels = nil
	if src.NumChannels > 0 {
		chans := allocSlice[*ai.NodeAnim](a, int(src.NumChannels))
		for i, ch := range view(src.Channels, src.NumChannels) {
			c := alloc[ai.NodeAnim](a)
			*c = *ch
			c.PositionKeys = cloneInline(a, ch.PositionKeys, ch.NumPositionKeys)
			c.RotationKeys = cloneInline(a, ch.RotationKeys, ch.NumRotationKeys)
			c.ScalingKeys = cloneInline(a, ch.ScalingKeys, ch.NumScalingKeys)
			chans[i] = c
		}
		dst.Channels = &chans[0]
	}

	dst.MeshChannels = nil
	if src.NumMeshChannels > 0 {
		chans := allocSlice[*ai.MeshAnim](a, int(src.NumMeshChannels))
		for i, ch := range view(src.MeshChannels, src.NumMeshChannels) {
			c := alloc[ai.MeshAnim](a)
			*c = *ch
			c.Keys = cloneInline(a, ch.Keys, ch.NumKeys)
			chans[i] = c
		}
		dst.MeshChannels = &chans[0]
	}

	dst.MorphMeshChannels = nil
	if src.NumMorphMeshChannels > 0 {
		chans := allocSlice[*ai.MeshMorphAnim](a, int(src.NumMorphMeshChannels))
		for i, ch := range view(src.MorphMeshChannels, src.NumMorphMeshChannels) {
			c := alloc[ai.MeshMorphAnim](a)
			*c = *ch
			if ch.NumKeys > 0 {
				keys := allocSlice[ai.MeshMorphKey](a, int(ch.NumKeys))
				for k, key := range view(ch.Keys, ch.NumKeys) {
					keys[k] = key
					keys[k].Values = cloneInline(a, key.Values, key.NumValuesAndWeights)
					keys[k].Weights = cloneInline(a, key.Weights, key.NumValuesAndWeights)
				}
				c.Keys = &keys[0]
			}
			chans[i] = c
		}
		dst.MorphMeshChannels = &chans[0]
	}
	return dst
}

func cloneMetadata(a *arena, src *ai.Metadata) *ai.Metadata {
	if src == nil {
		return nil
	}
	dst := alloc[ai.Metadata](a)
	dst.NumProperties = src.NumProperties
	if src.NumProperties == 0 {
		return dst
	}
	keys := allocSlice[ai.String](a, int(src.NumProperties))
	copy(keys, view(src.Keys, src.NumProperties))
	dst.Keys = &keys[0]

	vals := allocSlice[ai.MetadataEntry](a, int(src.NumProperties))
	for i, e := range view(src.Values, src.NumProperties) {
		vals[i].Type = e.Type
		vals[i].Data = cloneMetaPayload(a, ai.MetadataType(e.Type), e.Data)
	}
	dst.Values = &vals[0]
	return dst
}

func cloneMetaPayload(a *arena, typ ai.MetadataType, data unsafe.Pointer) unsafe.Pointer {
	if data == nil {
		return nil
	}
	var size int
	switch typ {
	case ai.MetaBool:
		size = 1
	case ai.MetaInt32, ai.MetaFloat:
		size = 4
	case ai.MetaUint64, ai.MetaDouble:
		size = 8
	case ai.MetaVector3D:
		size = 12
	case ai.MetaString:
		p := alloc[ai.String](a)
		*p = *(*ai.String)(data)
		return unsafe.Pointer(p)
	default:
		// Unknown payloads cannot be sized; drop them rather than alias
		// the source scene's memory.
		return nil
	}
	buf := allocSlice[byte](a, size)
	copy(buf, unsafe.Slice((*byte)(data), size))
	return unsafe.Pointer(&buf[0])
}
