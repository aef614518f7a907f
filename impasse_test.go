package impasse_test

import (
	"runtime"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/drivers/memscene"
)

func testEngine(t *testing.T) *memscene.Engine {
	t.Helper()
	e := memscene.New()
	e.Register("cube", func(b *memscene.Builder) {
		b.Flags(ai.SceneFlagValidated).
			Meta("Created", "2006-06-21T21:15:16Z").
			Meta("UnitScaleFactor", float64(100)).
			Meta("UpAxis", int32(1)).
			Meta("SourceOrigin", ai.Vector3{X: 1, Y: 2, Z: 3})

		b.Mesh("body").
			Positions(
				[3]float32{-1, -1, -1}, [3]float32{1, -1, -1},
				[3]float32{1, 1, -1}, [3]float32{-1, 1, 1}).
			Normals(
				[3]float32{0, 0, -1}, [3]float32{0, 0, -1},
				[3]float32{0, 0, -1}, [3]float32{0, 0, 1}).
			UV(0, 2,
				[3]float32{0, 0, 0}, [3]float32{1, 0, 0},
				[3]float32{1, 1, 0}, [3]float32{0, 1, 0}).
			Colors(0,
				[4]float32{1, 0, 0, 1}, [4]float32{0, 1, 0, 1},
				[4]float32{0, 0, 1, 1}, [4]float32{1, 1, 1, 1}).
			Triangle(0, 1, 2).
			Triangle(0, 2, 3).
			Material(0).
			Bone("spine", ai.Identity4(),
				ai.VertexWeight{VertexID: 0, Weight: 0.75},
				ai.VertexWeight{VertexID: 1, Weight: 0.25})

		b.Mesh("lid").
			Positions([3]float32{0, 0, 5}, [3]float32{1, 0, 5}, [3]float32{0, 1, 5}).
			Triangle(0, 1, 2).
			Material(1)

		b.Material().
			Name("RedPlastic").
			Floats(ai.MatKeyColorDiffuse, ai.SemanticNone, 0.8, 0.1, 0.1, 1).
			Floats(ai.MatKeyShininess, ai.SemanticNone, 32).
			Bool(ai.MatKeyTwoSided, true).
			String(ai.MatKeyTexFile, ai.SemanticDiffuse, "*0").
			TextureRef(ai.SemanticDiffuse, 1)

		b.Material().
			Name("BareMetal").
			TextureRef(ai.SemanticDiffuse, 0)

		b.CompressedTexture("checker.png", "png", []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3})

		b.Light("sun", ai.Light{
			Direction:           ai.Vector3{Z: -1},
			AttenuationConstant: 1,
			ColorDiffuse:        ai.Color3{R: 1, G: 1, B: 0.9},
		})
		b.Camera("main", ai.Camera{
			Position:      ai.Vector3{Z: 10},
			Up:            ai.Vector3{Y: 1},
			HorizontalFOV: 0.9,
			ClipPlaneNear: 0.1,
			ClipPlaneFar:  1000,
			Aspect:        1.5,
		})

		b.Animation("spin", 2.0, 30.0).
			NodeChannel("body_holder",
				[]ai.VectorKey{{Time: 0, Value: ai.Vector3{}}, {Time: 2, Value: ai.Vector3{X: 1}}},
				[]ai.QuatKey{{Time: 0, Value: ai.Quaternion{W: 1}}},
				nil)

		root := b.Root("scene_root")
		root.Meta("Author", "nobody")
		root.Child("body_holder").Meshes(0)
		root.Child("lid_holder").Meshes(1)
	})
	return e
}

func loadCube(t *testing.T) (*memscene.Engine, *impasse.ImportedScene) {
	t.Helper()
	e := testEngine(t)
	s, err := impasse.LoadWith(e, "cube")
	require.NoError(t, err)
	return e, s
}

func TestLoadUnknownSceneFails(t *testing.T) {
	e := testEngine(t)
	_, err := impasse.LoadWith(e, "nosuch")
	require.ErrorIs(t, err, adapt.ErrEngineFailed)
}

func TestPointerIdentityAcrossPaths(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	direct := s.Meshes().At(0)
	viaNode, ok := s.RootNode().Find("body_holder")
	require.True(t, ok)
	resolved := viaNode.Meshes().At(0)

	require.True(t, direct.Handle().Eq(resolved.Handle()))
	require.Equal(t, "body", resolved.Name())
}

func TestImportedSceneIsReadOnly(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	require.True(t, s.Readonly())
	require.ErrorIs(t, s.SetName("x"), adapt.ErrReadOnly)

	verts := s.Meshes().At(0).Vertices()
	require.ErrorIs(t, verts.At(0).Set(9, 9, 9), adapt.ErrReadOnly)
	require.Equal(t, mgl32.Vec3{-1, -1, -1}, verts.At(0).Vec3())

	require.ErrorIs(t, s.RootNode().Transformation().SetMat4(mgl32.Ident4()), adapt.ErrReadOnly)
	require.ErrorIs(t, s.Metadata().Map().Set("Created", "now"), adapt.ErrReadOnly)
}

func TestCopyMutableWritesThrough(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	c, err := s.CopyMutable()
	require.NoError(t, err)
	defer c.Release()

	require.False(t, c.Readonly())

	verts := c.Meshes().At(0).Vertices()
	require.NoError(t, verts.At(0).Set(4, 5, 6))
	require.Equal(t, mgl32.Vec3{4, 5, 6}, verts.At(0).Vec3())

	// The source scene is untouched.
	require.Equal(t, mgl32.Vec3{-1, -1, -1}, s.Meshes().At(0).Vertices().At(0).Vec3())

	require.NoError(t, c.SetName("edited"))
	require.Equal(t, "edited", c.Name())
}

func TestKeepAliveThroughView(t *testing.T) {
	_, s := loadCube(t)

	c, err := s.CopyMutable()
	require.NoError(t, err)
	s.Release()

	verts := c.Meshes().At(0).Vertices()
	c = nil
	runtime.GC()
	runtime.GC()

	// The sequence alone keeps the clone's memory pinned.
	require.Equal(t, 4, verts.Len())
	require.Equal(t, mgl32.Vec3{1, -1, -1}, verts.At(1).Vec3())

	reborn := impasse.SceneFor(verts.Scope())
	require.Equal(t, 2, reborn.Meshes().Len())
	require.NoError(t, verts.At(1).Set(7, 7, 7))
	require.Equal(t, mgl32.Vec3{7, 7, 7}, reborn.Meshes().At(0).Vertices().At(1).Vec3())
}

func TestDynamicLengthTracksCounter(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	meshes := s.Meshes()
	require.Equal(t, 2, meshes.Len())

	raw := (*ai.Scene)(s.Handle().Ptr())
	raw.NumMeshes = 1
	require.Equal(t, 1, meshes.Len())
	require.Panics(t, func() { meshes.At(1) })
	raw.NumMeshes = 2
	require.Equal(t, 2, meshes.Len())
}

func TestNullArrayHasZeroLength(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	lid := s.Meshes().At(1)
	require.Equal(t, 0, lid.Normals().Len())
	require.Equal(t, 0, lid.Bones().Len())
	require.Equal(t, 0, lid.UVChannels().Len())
	require.Empty(t, lid.Normals().All())
}

func TestSentinelChannels(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	body := s.Meshes().At(0)
	require.Equal(t, 1, body.UVChannels().Len())
	require.Equal(t, 1, body.ColorSets().Len())

	uv := body.UVChannels().At(0)
	require.Equal(t, 4, uv.Len())
	require.Equal(t, float32(1), uv.At(2).At(0))
	require.EqualValues(t, 2, body.NumUVComponents().At(0))

	colors := body.ColorSets().At(0)
	require.Equal(t, mgl32.Vec4{1, 0, 0, 1}, colors.At(0).Vec4())
}

func TestMetadataRoundTrip(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	md := s.Metadata().Map()
	require.Equal(t, 4, md.Len())

	v, err := md.Get("Created")
	require.NoError(t, err)
	require.Equal(t, "2006-06-21T21:15:16Z", v)

	v, err = md.Get("UnitScaleFactor")
	require.NoError(t, err)
	require.Equal(t, float64(100), v)

	v, err = md.Get("UpAxis")
	require.NoError(t, err)
	require.Equal(t, int32(1), v)

	v, err = md.Get("SourceOrigin")
	require.NoError(t, err)
	vec, ok := v.(impasse.Vector3View)
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{1, 2, 3}, vec.Vec3())

	_, err = md.Get("Missing")
	require.ErrorIs(t, err, adapt.ErrNotFound)
}

func TestMetadataSet(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()
	c, err := s.CopyMutable()
	require.NoError(t, err)
	defer c.Release()

	md := c.Metadata().Map()
	require.NoError(t, md.Set("Created", "1999-01-01T00:00:00Z"))
	v, err := md.Get("Created")
	require.NoError(t, err)
	require.Equal(t, "1999-01-01T00:00:00Z", v)

	// Type tags never change on assignment.
	require.ErrorIs(t, md.Set("UpAxis", "not an int"), adapt.ErrShapeMismatch)

	// Keys cannot be added through the facade.
	require.ErrorIs(t, md.Set("Brand", "x"), adapt.ErrNotFound)

	require.NoError(t, md.Set("SourceOrigin", mgl32.Vec3{9, 8, 7}))
}

func TestNodeMetadata(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	root := s.RootNode()
	v, err := root.Map().Get("Author")
	require.NoError(t, err)
	require.Equal(t, "nobody", v)

	child, ok := root.Find("lid_holder")
	require.True(t, ok)
	require.True(t, child.Metadata().Nil())
	require.Equal(t, 0, child.Map().Len())
	_, err = child.Map().Get("Author")
	require.ErrorIs(t, err, adapt.ErrNotFound)
}

func TestMaterialMap(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	m, err := s.Meshes().At(0).Material()
	require.NoError(t, err)
	require.Equal(t, "RedPlastic", m.Name())

	mp := m.Map()
	v, err := mp.Get(ai.MatKeyName)
	require.NoError(t, err)
	require.Equal(t, "RedPlastic", v)

	// Single-element numeric payloads unwrap to scalars.
	v, err = mp.Get(ai.MatKeyShininess)
	require.NoError(t, err)
	require.Equal(t, float32(32), v)

	// Multi-element payloads stay live blocks.
	v, err = mp.Get(ai.MatKeyColorDiffuse)
	require.NoError(t, err)
	diffuse, ok := v.(adapt.Block[float32])
	require.True(t, ok)
	require.Equal(t, []float32{0.8, 0.1, 0.1, 1}, diffuse.Values())

	// One-byte binary payloads unwrap too.
	v, err = mp.Get(ai.MatKeyTwoSided)
	require.NoError(t, err)
	require.Equal(t, byte(1), v)

	// Semantic is part of the key.
	_, err = mp.Get(ai.MatKeyTexFile)
	require.ErrorIs(t, err, adapt.ErrNotFound)
	v, err = mp.GetSemantic(ai.MatKeyTexFile, ai.SemanticDiffuse)
	require.NoError(t, err)
	require.Equal(t, "*0", v)

	_, err = mp.Get("$nope")
	require.ErrorIs(t, err, adapt.ErrNotFound)
}

func TestMaterialPropertySet(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()
	c, err := s.CopyMutable()
	require.NoError(t, err)
	defer c.Release()

	mp := c.Materials().At(0).Map()

	require.NoError(t, mp.Set(ai.MatKeyShininess, float32(64)))
	v, err := mp.Get(ai.MatKeyShininess)
	require.NoError(t, err)
	require.Equal(t, float32(64), v)

	require.NoError(t, mp.Set(ai.MatKeyColorDiffuse, []float32{0, 1, 0, 1}))
	require.ErrorIs(t, mp.Set(ai.MatKeyColorDiffuse, []float32{0, 1}), adapt.ErrShapeMismatch)

	// Strings may shrink in place but never grow past the allocation.
	require.NoError(t, mp.Set(ai.MatKeyName, "Red"))
	v, err = mp.Get(ai.MatKeyName)
	require.NoError(t, err)
	require.Equal(t, "Red", v)
	require.ErrorIs(t, mp.Set(ai.MatKeyName, "AVeryMuchLongerMaterialName"), adapt.ErrShapeMismatch)

	// Read-only scenes reject property writes outright.
	require.ErrorIs(t, s.Materials().At(0).Map().Set(ai.MatKeyShininess, float32(1)), adapt.ErrReadOnly)
}

func TestTextureReferences(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	// Reference 1 points at texture 0.
	tex, err := s.Meshes().At(0).Material()
	require.NoError(t, err)
	resolved, err := tex.Map().Texture(ai.MatKeyTexture, ai.SemanticDiffuse)
	require.NoError(t, err)
	require.False(t, resolved.Nil())
	require.Equal(t, "checker.png", resolved.Filename())
	require.True(t, resolved.Compressed())
	require.Equal(t, "png", resolved.FormatHint())
	require.Equal(t, []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}, resolved.CompressedData())

	// Reference 0 means no texture.
	none, err := s.TextureByRef(0)
	require.NoError(t, err)
	require.True(t, none.Nil())

	// Out of range is an error, not a panic.
	_, err = s.TextureByRef(5)
	require.ErrorIs(t, err, adapt.ErrNotFound)

	ref, err := s.TextureRef(resolved)
	require.NoError(t, err)
	require.EqualValues(t, 1, ref)
}

func TestUncompressedTexturePixels(t *testing.T) {
	e := testEngine(t)
	e.Register("textured", func(b *memscene.Builder) {
		b.Texture("grid.rgba", 2, 1,
			ai.Texel{B: 1, G: 2, R: 3, A: 4},
			ai.Texel{B: 5, G: 6, R: 7, A: 8})
		b.Root("root")
	})
	s, err := impasse.LoadWith(e, "textured")
	require.NoError(t, err)
	defer s.Release()

	tex := s.Textures().At(0)
	require.False(t, tex.Compressed())
	require.Nil(t, tex.CompressedData())

	texels := tex.Texels()
	require.Equal(t, 2, texels.Len())
	b, g, r, a := texels.At(1).BGRA()
	require.Equal(t, [4]uint8{5, 6, 7, 8}, [4]uint8{b, g, r, a})

	px := tex.Pixels()
	require.Equal(t, 1, px.Rows())
	require.Equal(t, 8, px.Cols())
	require.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, px.Values())
}

func TestBonesAndWeights(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	bones := s.Meshes().At(0).Bones()
	require.Equal(t, 1, bones.Len())
	bone := bones.At(0)
	require.Equal(t, "spine", bone.Name())
	require.Equal(t, mgl32.Ident4(), bone.OffsetMatrix().Mat4())

	w := bone.Weights()
	require.Equal(t, 2, w.Len())
	require.EqualValues(t, 0, w.At(0).VertexID())
	require.Equal(t, float32(0.75), w.At(0).Weight())
}

func TestAnimationChannels(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	anims := s.Animations()
	require.Equal(t, 1, anims.Len())
	a := anims.At(0)
	require.Equal(t, "spin", a.Name())
	require.Equal(t, 2.0, a.Duration())
	require.Equal(t, 30.0, a.TicksPerSecond())

	require.Equal(t, 1, a.Channels().Len())
	ch := a.Channels().At(0)
	require.Equal(t, "body_holder", ch.NodeName())
	require.Equal(t, 2, ch.PositionKeys().Len())
	require.Equal(t, 2.0, ch.PositionKeys().At(1).Time())
	require.Equal(t, mgl32.Vec3{1, 0, 0}, ch.PositionKeys().At(1).Value().Vec3())
	require.Equal(t, 1, ch.RotationKeys().Len())
	require.Equal(t, float32(1), ch.RotationKeys().At(0).Value().Quat().W)
	require.Equal(t, 0, ch.ScalingKeys().Len())
}

func TestLightsAndCameras(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	require.Equal(t, 1, s.Lights().Len())
	l := s.Lights().At(0)
	require.Equal(t, "sun", l.Name())
	require.Equal(t, mgl32.Vec3{0, 0, -1}, l.Direction().Vec3())
	constant, linear, _ := l.Attenuation()
	require.Equal(t, float32(1), constant)
	require.Equal(t, float32(0), linear)

	require.Equal(t, 1, s.Cameras().Len())
	c := s.Cameras().At(0)
	require.Equal(t, "main", c.Name())
	require.Equal(t, float32(1.5), c.Aspect())
	near, far := c.ClipPlanes()
	require.Equal(t, float32(0.1), near)
	require.Equal(t, float32(1000), far)
	require.ErrorIs(t, c.SetAspect(2), adapt.ErrReadOnly)
}

func TestNodeMeshAssignment(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()
	c, err := s.CopyMutable()
	require.NoError(t, err)
	defer c.Release()

	holder, ok := c.RootNode().Find("body_holder")
	require.True(t, ok)
	require.Equal(t, "body", holder.Meshes().At(0).Name())

	lid := c.Meshes().At(1)
	require.NoError(t, holder.Meshes().Set(0, lid))
	require.Equal(t, "lid", holder.Meshes().At(0).Name())
	require.Equal(t, []uint32{1}, holder.MeshIndexes().All())

	// A mesh from a different scene has no index here.
	other, err := impasse.LoadWith(testEngine(t), "cube")
	require.NoError(t, err)
	defer other.Release()
	require.ErrorIs(t, holder.Meshes().Set(0, other.Meshes().At(0)), adapt.ErrNotFound)
}

func TestExportBlob(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	blobs, err := s.ExportBlob("memdump")
	require.NoError(t, err)
	defer blobs.Release()

	all := blobs.Blobs()
	require.Len(t, all, 2)
	require.Equal(t, "", all[0].Name())
	require.NotEmpty(t, all[0].Data())
	require.EqualValues(t, len(all[0].Data()), all[0].Size())
	require.Equal(t, "memdump", all[1].Name())
}

func TestBoundingBox(t *testing.T) {
	_, s := loadCube(t)
	defer s.Release()

	bbMin, bbMax := impasse.BoundingBox(&s.Scene)
	require.Equal(t, mgl32.Vec3{-1, -1, -1}, bbMin)
	require.Equal(t, mgl32.Vec3{1, 1, 5}, bbMax)
}

func TestReleaseIsIdempotent(t *testing.T) {
	_, s := loadCube(t)
	s.Release()
	s.Release()
	require.True(t, s.Scope().Released())
}
