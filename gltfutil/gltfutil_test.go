package gltfutil_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/drivers/memscene"
	"github.com/SaladDais/Impasse/gltfutil"
)

func loadQuad(t *testing.T) *impasse.ImportedScene {
	t.Helper()
	e := memscene.New()
	e.Register("quad", func(b *memscene.Builder) {
		b.Mesh("quad").
			Positions(
				[3]float32{0, 0, 0}, [3]float32{1, 0, 0},
				[3]float32{1, 1, 0}, [3]float32{0, 1, 0}).
			Normals(
				[3]float32{0, 0, 1}, [3]float32{0, 0, 1},
				[3]float32{0, 0, 1}, [3]float32{0, 0, 1}).
			UV(0, 2,
				[3]float32{0, 0, 0}, [3]float32{1, 0, 0},
				[3]float32{1, 1, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2).
			Triangle(0, 2, 3).
			Material(0)
		b.Material().
			Name("checker").
			Floats(ai.MatKeyColorDiffuse, ai.SemanticNone, 0.5, 0.5, 0.5).
			String(ai.MatKeyTexFile, ai.SemanticDiffuse, "*0").
			TextureRef(ai.SemanticDiffuse, 1)
		b.CompressedTexture("checker.png", "png", []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4})
		b.Root("root").Child("quad_holder").Meshes(0)
	})
	s, err := impasse.LoadWith(e, "quad")
	require.NoError(t, err)
	return s
}

func TestFromScene(t *testing.T) {
	s := loadQuad(t)
	defer s.Release()

	doc, err := gltfutil.FromScene(&s.Scene)
	require.NoError(t, err)

	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)
	prim := doc.Meshes[0].Primitives[0]
	require.Contains(t, prim.Attributes, "POSITION")
	require.Contains(t, prim.Attributes, "NORMAL")
	require.Contains(t, prim.Attributes, "TEXCOORD_0")
	require.NotNil(t, prim.Indices)
	require.NotNil(t, prim.Material)

	require.Len(t, doc.Materials, 1)
	mat := doc.Materials[0]
	require.Equal(t, "checker", mat.Name)
	require.NotNil(t, mat.PBRMetallicRoughness)
	require.NotNil(t, mat.PBRMetallicRoughness.BaseColorFactor)
	require.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, *mat.PBRMetallicRoughness.BaseColorFactor)
	require.NotNil(t, mat.PBRMetallicRoughness.BaseColorTexture)

	require.Len(t, doc.Textures, 1)
	require.Len(t, doc.Images, 1)

	// root plus quad_holder.
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Scenes[0].Nodes, 1)
}

func TestExportBinaryMagic(t *testing.T) {
	s := loadQuad(t)
	defer s.Release()

	doc, err := gltfutil.FromScene(&s.Scene)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gltfutil.ExportBinary(&buf, doc))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("glTF")))
}

func TestFromSceneSkipsNonTriangleFaces(t *testing.T) {
	e := memscene.New()
	e.Register("mixed", func(b *memscene.Builder) {
		b.Mesh("mixed").
			Positions([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2).
			Face(0, 1).
			Material(0)
		b.Material().Name("flat")
		b.Root("root").Meshes(0)
	})
	s, err := impasse.LoadWith(e, "mixed")
	require.NoError(t, err)
	defer s.Release()

	doc, err := gltfutil.FromScene(&s.Scene)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
}
