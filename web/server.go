// Package web serves loaded scenes over HTTP for inspection and glTF
// preview.
package web

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/adapt"
)

type sceneEntry struct {
	Scene *impasse.ImportedScene
	Name  string
}

var (
	scenesMu sync.Mutex
	scenes   = map[string]*sceneEntry{}
)

// RegisterScene puts a loaded scene under a fresh id so the json and dump
// routes can reach it.
func RegisterScene(name string, s *impasse.ImportedScene) string {
	id := uuid.New().String()
	scenesMu.Lock()
	scenes[id] = &sceneEntry{Scene: s, Name: name}
	scenesMu.Unlock()
	return id
}

func sceneByID(id string) (*sceneEntry, error) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	e, ok := scenes[id]
	if !ok {
		return nil, errors.Wrapf(adapt.ErrNotFound, "scene %q", id)
	}
	return e, nil
}

func dropScene(id string) (*sceneEntry, error) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	e, ok := scenes[id]
	if !ok {
		return nil, errors.Wrapf(adapt.ErrNotFound, "scene %q", id)
	}
	delete(scenes, id)
	return e, nil
}

func Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerAjaxScenes)
	r.HandleFunc("/json/scene/{id}", HandlerAjaxScene)
	r.HandleFunc("/json/scene/{id}/node/{name}", HandlerAjaxSceneNode)
	r.HandleFunc("/dump/scene/{id}/gltf", HandlerDumpSceneGLTF)
	r.HandleFunc("/dump/scene/{id}/{format}", HandlerDumpSceneFormat)
	r.HandleFunc("/upload/scene/{hint}", HandlerUploadScene)
	r.HandleFunc("/action/scene/{id}/release", HandlerActionSceneRelease)
	return r
}

func StartServer(addr string) error {
	h := handlers.RecoveryHandler()(Router())
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
