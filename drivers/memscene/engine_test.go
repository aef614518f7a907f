package memscene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

func newTriangleEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.Register("triangle", func(b *Builder) {
		b.Meta("Generator", "engine_test")
		b.Mesh("tri").
			Positions([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2).
			Material(0)
		b.Material().
			Name("flat").
			Floats(ai.MatKeyColorDiffuse, ai.SemanticNone, 1, 0, 0, 1)
		b.Root("root").Child("holder").Meshes(0)
	})
	return e
}

func TestImportFileLayout(t *testing.T) {
	e := newTriangleEngine(t)
	s, err := e.ImportFile("triangle", 0)
	require.NoError(t, err)
	defer e.ReleaseImport(s)

	require.EqualValues(t, 1, s.NumMeshes)
	m := *s.Meshes
	require.EqualValues(t, 3, m.NumVertices)
	require.EqualValues(t, 1, m.NumFaces)
	require.Equal(t, ai.Vector3{X: 1}, view(m.Vertices, m.NumVertices)[1])

	f := view(m.Faces, m.NumFaces)[0]
	require.EqualValues(t, 3, f.NumIndices)
	require.Equal(t, []uint32{0, 1, 2}, view(f.Indices, f.NumIndices))

	require.EqualValues(t, 1, s.NumMaterials)
	mat := *s.Materials
	require.EqualValues(t, 2, mat.NumProperties)
	nameProp := view(mat.Properties, mat.NumProperties)[0]
	require.Equal(t, ai.MatKeyName, getString(&nameProp.Key))
	require.EqualValues(t, ai.PropertyString, nameProp.Type)

	require.NotNil(t, s.RootNode)
	require.EqualValues(t, 1, s.RootNode.NumChildren)
	child := view(s.RootNode.Children, s.RootNode.NumChildren)[0]
	require.Equal(t, s.RootNode, child.Parent)
	require.Equal(t, []uint32{0}, view(child.Meshes, child.NumMeshes))

	require.NotNil(t, s.Metadata)
	require.EqualValues(t, 1, s.Metadata.NumProperties)
}

func TestImportUnknownFixture(t *testing.T) {
	e := New()
	_, err := e.ImportFile("nosuch", 0)
	require.ErrorIs(t, err, adapt.ErrEngineFailed)
}

func TestImportMemoryFallsBackToHint(t *testing.T) {
	e := newTriangleEngine(t)

	s, err := e.ImportMemory([]byte("  triangle\n"), "", 0)
	require.NoError(t, err)
	e.ReleaseImport(s)

	s, err = e.ImportMemory([]byte("not a fixture"), "triangle", 0)
	require.NoError(t, err)
	e.ReleaseImport(s)

	_, err = e.ImportMemory([]byte("junk"), "also junk", 0)
	require.ErrorIs(t, err, adapt.ErrEngineFailed)
}

func TestCopySceneIsIndependent(t *testing.T) {
	e := newTriangleEngine(t)
	src, err := e.ImportFile("triangle", 0)
	require.NoError(t, err)
	defer e.ReleaseImport(src)

	clone, err := e.CopyScene(src)
	require.NoError(t, err)
	defer e.FreeScene(clone)

	require.NotSame(t, src, clone)
	srcMesh, cloneMesh := *src.Meshes, *clone.Meshes
	require.NotSame(t, srcMesh, cloneMesh)

	view(cloneMesh.Vertices, cloneMesh.NumVertices)[0].X = 123
	require.Equal(t, float32(0), view(srcMesh.Vertices, srcMesh.NumVertices)[0].X)

	require.Equal(t, getString(&srcMesh.Name), getString(&cloneMesh.Name))
	require.NotNil(t, clone.Metadata)
	require.NotSame(t, src.Metadata, clone.Metadata)
}

func TestCopyNilScene(t *testing.T) {
	e := New()
	_, err := e.CopyScene(nil)
	require.ErrorIs(t, err, adapt.ErrEngineFailed)
}

func TestExportToBlobChain(t *testing.T) {
	e := newTriangleEngine(t)
	s, err := e.ImportFile("triangle", 0)
	require.NoError(t, err)
	defer e.ReleaseImport(s)

	head, err := e.ExportToBlob(s, "memdump", 0)
	require.NoError(t, err)
	defer e.ReleaseBlob(head)

	require.Equal(t, "", getString(&head.Name))
	require.NotZero(t, head.Size)
	require.NotNil(t, head.Data)

	aux := head.Next
	require.NotNil(t, aux)
	require.Equal(t, "memdump", getString(&aux.Name))
	require.Nil(t, aux.Next)
}

func TestExportSceneWritesFile(t *testing.T) {
	e := newTriangleEngine(t)
	s, err := e.ImportFile("triangle", 0)
	require.NoError(t, err)
	defer e.ReleaseImport(s)

	path := filepath.Join(t.TempDir(), "out.memdump")
	require.NoError(t, e.ExportScene(s, "memdump", path, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestAnonymousMeshNamesAreUnique(t *testing.T) {
	e := New()
	e.Register("anon", func(b *Builder) {
		b.Mesh("").Positions([3]float32{0, 0, 0})
		b.Mesh("").Positions([3]float32{0, 0, 0})
		b.Root("root")
	})
	s, err := e.ImportFile("anon", 0)
	require.NoError(t, err)
	defer e.ReleaseImport(s)

	meshes := view(s.Meshes, s.NumMeshes)
	a, b := getString(&meshes[0].Name), getString(&meshes[1].Name)
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	require.NotEqual(t, a, b)
}
