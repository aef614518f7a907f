package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/drivers/memscene"
	"github.com/SaladDais/Impasse/engine"
)

func newTestScene(t *testing.T) *impasse.ImportedScene {
	t.Helper()
	e := memscene.New()
	e.Register("box", func(b *memscene.Builder) {
		b.Mesh("box").
			Positions([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2).
			Material(0)
		b.Material().Name("plain")
		b.Root("box_root").Child("box_holder").Meshes(0)
	})
	s, err := impasse.LoadWith(e, "box")
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	Router().ServeHTTP(rec, req)
	return rec
}

func TestSceneListAndDetail(t *testing.T) {
	s := newTestScene(t)
	id := RegisterScene("box", s)
	defer func() {
		if e, err := dropScene(id); err == nil {
			e.Scene.Release()
		}
	}()

	rec := doRequest(t, httptest.NewRequest("GET", "/json/scene", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []ajaxSceneListEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Contains(t, list, ajaxSceneListEntry{Id: id, Name: "box"})

	rec = doRequest(t, httptest.NewRequest("GET", "/json/scene/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var detail ajaxScene
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Meshes, 1)
	require.Equal(t, "box", detail.Meshes[0].Name)
	require.EqualValues(t, 3, detail.Meshes[0].NumVertices)
	require.Equal(t, "box_root", detail.Root.Name)
	require.Len(t, detail.Root.Children, 1)
	require.Equal(t, []uint32{0}, detail.Root.Children[0].Meshes)
	require.Equal(t, [3]float32{1, 1, 0}, detail.BBoxMax)
}

func TestSceneNodeRoute(t *testing.T) {
	s := newTestScene(t)
	id := RegisterScene("box", s)
	defer func() {
		if e, err := dropScene(id); err == nil {
			e.Scene.Release()
		}
	}()

	rec := doRequest(t, httptest.NewRequest("GET", "/json/scene/"+id+"/node/box_holder", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var node ajaxNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
	require.Equal(t, "box_holder", node.Name)

	rec = doRequest(t, httptest.NewRequest("GET", "/json/scene/"+id+"/node/nosuch", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownSceneId(t *testing.T) {
	rec := doRequest(t, httptest.NewRequest("GET", "/json/scene/deadbeef", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["error"], "deadbeef")
}

func TestDumpSceneGLTF(t *testing.T) {
	s := newTestScene(t)
	id := RegisterScene("box", s)
	defer func() {
		if e, err := dropScene(id); err == nil {
			e.Scene.Release()
		}
	}()

	rec := doRequest(t, httptest.NewRequest("GET", "/dump/scene/"+id+"/gltf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("glTF")))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "box.glb")
}

func TestDumpSceneFormat(t *testing.T) {
	s := newTestScene(t)
	id := RegisterScene("box", s)
	defer func() {
		if e, err := dropScene(id); err == nil {
			e.Scene.Release()
		}
	}()

	rec := doRequest(t, httptest.NewRequest("GET", "/dump/scene/"+id+"/memdump", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.Bytes())
	require.Contains(t, rec.Header().Get("Content-Disposition"), "box.memdump")
}

func TestUploadAndRelease(t *testing.T) {
	e := memscene.New()
	e.Register("uploaded.mem", func(b *memscene.Builder) {
		b.Mesh("u").
			Positions([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2)
		b.Material().Name("plain")
		b.Root("u_root").Meshes(0)
	})
	old, _ := engine.Default()
	engine.SetDefault(e)
	defer engine.SetDefault(old)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("scene", "uploaded.mem")
	require.NoError(t, err)
	_, err = fw.Write([]byte("uploaded.mem"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload/scene/uploaded.mem", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := doRequest(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry ajaxSceneListEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.NotEmpty(t, entry.Id)

	rec = doRequest(t, httptest.NewRequest("GET", "/action/scene/"+entry.Id+"/release", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Released scenes disappear from the registry.
	rec = doRequest(t, httptest.NewRequest("GET", "/json/scene/"+entry.Id, nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
