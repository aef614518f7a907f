package web

import (
	"bytes"
	"log"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/config"
	"github.com/SaladDais/Impasse/gltfutil"
	"github.com/SaladDais/Impasse/webutils"
)

type ajaxSceneListEntry struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type ajaxNode struct {
	Name     string      `json:"name"`
	Meshes   []uint32    `json:"meshes,omitempty"`
	Children []*ajaxNode `json:"children,omitempty"`
}

type ajaxMesh struct {
	Name          string `json:"name"`
	NumVertices   uint32 `json:"numVertices"`
	NumFaces      int    `json:"numFaces"`
	MaterialIndex uint32 `json:"materialIndex"`
}

type ajaxScene struct {
	Name          string     `json:"name"`
	Flags         uint32     `json:"flags"`
	Meshes        []ajaxMesh `json:"meshes"`
	NumMaterials  int        `json:"numMaterials"`
	NumTextures   int        `json:"numTextures"`
	NumAnimations int        `json:"numAnimations"`
	NumLights     int        `json:"numLights"`
	NumCameras    int        `json:"numCameras"`
	BBoxMin       [3]float32 `json:"bboxMin"`
	BBoxMax       [3]float32 `json:"bboxMax"`
	Root          *ajaxNode  `json:"root"`
}

func marshalNode(n impasse.Node) *ajaxNode {
	if n.Nil() {
		return nil
	}
	out := &ajaxNode{
		Name:   n.Name(),
		Meshes: n.MeshIndexes().All(),
	}
	children := n.Children()
	for i, cnt := 0, children.Len(); i < cnt; i++ {
		out.Children = append(out.Children, marshalNode(children.At(i)))
	}
	return out
}

func marshalScene(s *impasse.Scene) *ajaxScene {
	bbMin, bbMax := impasse.BoundingBox(s)
	out := &ajaxScene{
		Name:          s.Name(),
		Flags:         uint32(s.Flags()),
		NumMaterials:  s.Materials().Len(),
		NumTextures:   s.Textures().Len(),
		NumAnimations: s.Animations().Len(),
		NumLights:     s.Lights().Len(),
		NumCameras:    s.Cameras().Len(),
		BBoxMin:       [3]float32(bbMin),
		BBoxMax:       [3]float32(bbMax),
		Root:          marshalNode(s.RootNode()),
	}
	meshes := s.Meshes()
	for i, cnt := 0, meshes.Len(); i < cnt; i++ {
		m := meshes.At(i)
		out.Meshes = append(out.Meshes, ajaxMesh{
			Name:          m.Name(),
			NumVertices:   m.NumVertices(),
			NumFaces:      m.Faces().Len(),
			MaterialIndex: m.MaterialIndex(),
		})
	}
	return out
}

func HandlerAjaxScenes(w http.ResponseWriter, r *http.Request) {
	scenesMu.Lock()
	list := make([]ajaxSceneListEntry, 0, len(scenes))
	for id, e := range scenes {
		list = append(list, ajaxSceneListEntry{Id: id, Name: e.Name})
	}
	scenesMu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	webutils.WriteJson(w, list)
}

func HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	e, err := sceneByID(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, marshalScene(&e.Scene.Scene))
}

func HandlerAjaxSceneNode(w http.ResponseWriter, r *http.Request) {
	e, err := sceneByID(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	node, ok := e.Scene.RootNode().Find(mux.Vars(r)["name"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	webutils.WriteJson(w, marshalNode(node))
}

func HandlerDumpSceneGLTF(w http.ResponseWriter, r *http.Request) {
	e, err := sceneByID(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	doc, err := gltfutil.FromScene(&e.Scene.Scene)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := gltfutil.ExportBinary(&buf, doc); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, e.Name+".glb")
}

func HandlerDumpSceneFormat(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]
	e, err := sceneByID(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	blobs, err := e.Scene.ExportBlob(format)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	defer blobs.Release()
	webutils.WriteFile(w, bytes.NewReader(blobs.Head().Data()), e.Name+"."+format)
}

func HandlerUploadScene(w http.ResponseWriter, r *http.Request) {
	hint := mux.Vars(r)["hint"]
	data, err := webutils.ReadUploadFile(r, "scene", config.GetSceneUploadLimit())
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	s, err := impasse.LoadFromMemory(data, hint)
	if err != nil {
		log.Printf("[web] Error loading uploaded scene: %v", err)
		webutils.WriteError(w, err)
		return
	}
	id := RegisterScene(hint, s)
	webutils.WriteJson(w, ajaxSceneListEntry{Id: id, Name: hint})
}

func HandlerActionSceneRelease(w http.ResponseWriter, r *http.Request) {
	e, err := dropScene(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	e.Scene.Release()
	webutils.WriteJson(w, true)
}
