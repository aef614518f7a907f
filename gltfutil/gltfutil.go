// Package gltfutil converts scene views into glTF 2.0 documents for
// preview in the web viewer.
package gltfutil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/ai"
)

// FromScene builds a glTF document with the scene's mesh geometry,
// materials, embedded compressed textures and node hierarchy.
func FromScene(s *impasse.Scene) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	texIndex, err := writeTextures(doc, s)
	if err != nil {
		return nil, err
	}
	writeMaterials(doc, s, texIndex)

	meshes := s.Meshes()
	meshIndex := make([]uint32, meshes.Len())
	for i, n := 0, meshes.Len(); i < n; i++ {
		meshIndex[i] = writeMesh(doc, meshes.At(i))
	}

	root := s.RootNode()
	if !root.Nil() {
		rootIdx := writeNode(doc, root, meshIndex)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, rootIdx)
	}
	return doc, nil
}

// ExportBinary encodes doc as a self-contained .glb stream.
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

func writeTextures(doc *gltf.Document, s *impasse.Scene) ([]uint32, error) {
	texs := s.Textures()
	index := make([]uint32, texs.Len())
	for i, n := 0, texs.Len(); i < n; i++ {
		t := texs.At(i)
		if !t.Compressed() {
			continue
		}
		mime := "image/" + t.FormatHint()
		name := t.Filename()
		if name == "" {
			name = fmt.Sprintf("texture_%d", i)
		}
		imgIdx, err := modeler.WriteImage(doc, name, mime, bytes.NewReader(t.CompressedData()))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to write gltf image %q", name)
		}
		index[i] = uint32(len(doc.Textures))
		doc.Textures = append(doc.Textures, &gltf.Texture{
			Name:   name,
			Source: gltf.Index(imgIdx),
		})
	}
	return index, nil
}

func writeMaterials(doc *gltf.Document, s *impasse.Scene, texIndex []uint32) {
	mats := s.Materials()
	for i, n := 0, mats.Len(); i < n; i++ {
		m := mats.At(i).Map()

		gltfMaterial := &gltf.Material{
			Name:                 mats.At(i).Name(),
			DoubleSided:          true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{},
		}

		if v, err := m.Get(ai.MatKeyColorDiffuse); err == nil {
			if c, ok := diffuseColor(v); ok {
				gltfMaterial.PBRMetallicRoughness.BaseColorFactor = &c
			}
		}

		if tex, err := m.Texture(ai.MatKeyTexture, ai.SemanticDiffuse); err == nil && !tex.Nil() && tex.Compressed() {
			if ref, err := s.TextureRef(tex); err == nil {
				gltfMaterial.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
					Index: texIndex[ref-1],
				}
			}
		}

		doc.Materials = append(doc.Materials, gltfMaterial)
	}
}

func diffuseColor(v any) ([4]float32, bool) {
	block, ok := v.(interface{ Values() []float32 })
	if !ok {
		return [4]float32{}, false
	}
	vals := block.Values()
	switch len(vals) {
	case 3:
		return [4]float32{vals[0], vals[1], vals[2], 1}, true
	case 4:
		return [4]float32{vals[0], vals[1], vals[2], vals[3]}, true
	}
	return [4]float32{}, false
}

func writeMesh(doc *gltf.Document, m impasse.Mesh) uint32 {
	verticesCount := int(m.NumVertices())

	var positionAccessor, normalsAccessor, indicesAccessor uint32
	var uvAccessors, colorAccessors []uint32

	{
		positions := make([][3]float32, verticesCount)
		verts := m.Vertices()
		for i := 0; i < verts.Len(); i++ {
			v := verts.At(i).Vec3()
			positions[i] = [3]float32{v[0], v[1], v[2]}
		}
		positionAccessor = modeler.WritePosition(doc, positions)
	}

	{
		var indices []uint32
		faces := m.Faces()
		for i, n := 0, faces.Len(); i < n; i++ {
			f := faces.At(i)
			if f.NumIndices() != 3 {
				continue
			}
			indices = append(indices, f.Indices().All()...)
		}
		indicesAccessor = modeler.WriteIndices(doc, indices)
	}

	normals := m.Normals()
	if normals.Len() > 0 {
		ns := make([][3]float32, verticesCount)
		for i := 0; i < normals.Len(); i++ {
			v := normals.At(i).Vec3()
			ns[i] = [3]float32{v[0], v[1], v[2]}
		}
		normalsAccessor = modeler.WriteNormal(doc, ns)
	}

	{
		channels := m.UVChannels()
		uvAccessors = make([]uint32, channels.Len())
		for iLayer := 0; iLayer < channels.Len(); iLayer++ {
			uvs := make([][2]float32, verticesCount)
			ch := channels.At(iLayer)
			for i := 0; i < ch.Len(); i++ {
				uvs[i] = [2]float32{ch.At(i).At(0), ch.At(i).At(1)}
			}
			uvAccessors[iLayer] = modeler.WriteTextureCoord(doc, uvs)
		}
	}

	{
		sets := m.ColorSets()
		colorAccessors = make([]uint32, sets.Len())
		for iLayer := 0; iLayer < sets.Len(); iLayer++ {
			colors := make([][4]uint8, verticesCount)
			set := sets.At(iLayer)
			for i := 0; i < set.Len(); i++ {
				c := set.At(i).Vec4()
				colors[i] = [4]uint8{colorByte(c[0]), colorByte(c[1]), colorByte(c[2]), colorByte(c[3])}
			}
			colorAccessors[iLayer] = modeler.WriteColor(doc, colors)
		}
	}

	attributes := make(map[string]uint32)
	attributes["POSITION"] = positionAccessor
	if normals.Len() > 0 {
		attributes["NORMAL"] = normalsAccessor
	}
	for iLayer := range uvAccessors {
		attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)] = uvAccessors[iLayer]
	}
	for iLayer := range colorAccessors {
		attributes[fmt.Sprintf("COLOR_%d", iLayer)] = colorAccessors[iLayer]
	}

	materialIndex := m.MaterialIndex()
	gltfMesh := &gltf.Mesh{
		Name: m.Name(),
		Primitives: []*gltf.Primitive{
			{
				Indices:    &indicesAccessor,
				Attributes: attributes,
				Material:   gltf.Index(materialIndex),
			},
		},
	}

	doc.Meshes = append(doc.Meshes, gltfMesh)
	return uint32(len(doc.Meshes) - 1)
}

func colorByte(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

func writeNode(doc *gltf.Document, n impasse.Node, meshIndex []uint32) uint32 {
	node := &gltf.Node{Name: n.Name()}

	t := n.Transformation().Mat4()
	var matrix [16]float32
	for i := 0; i < 16; i++ {
		matrix[i] = t[i]
	}
	node.Matrix = matrix

	refs := n.MeshIndexes().All()
	if len(refs) == 1 {
		node.Mesh = gltf.Index(meshIndex[refs[0]])
	}

	idx := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, node)

	// A glTF node carries at most one mesh, extra references become
	// synthesized children.
	if len(refs) > 1 {
		for i, ref := range refs {
			childIdx := uint32(len(doc.Nodes))
			doc.Nodes = append(doc.Nodes, &gltf.Node{
				Name: fmt.Sprintf("%s_mesh%d", n.Name(), i),
				Mesh: gltf.Index(meshIndex[ref]),
			})
			node.Children = append(node.Children, childIdx)
		}
	}

	children := n.Children()
	for i, cnt := 0, children.Len(); i < cnt; i++ {
		node.Children = append(node.Children, writeNode(doc, children.At(i), meshIndex))
	}
	return idx
}
