package memscene

import (
	"bytes"
	"encoding/gob"
	"os"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Export side of the in-memory engine. The dump format is this driver's
// private property, like any real engine's wire formats; nothing else in
// the module may depend on its shape.

type dumpScene struct {
	Format string
	Flags  uint32
	Meshes []dumpMesh
	Mats   []dumpMaterial
	Meta   map[string]string
}

type dumpMesh struct {
	Name      string
	Material  uint32
	Positions [][3]float32
	Faces     [][]uint32
}

type dumpMaterial struct {
	Props map[string]uint32 // key -> type tag; values are not round-tripped
}

func getString(s *ai.String) string {
	n := int(s.Length)
	if n > len(s.Data) {
		n = len(s.Data)
	}
	return string(s.Data[:n])
}

func dump(scene *ai.Scene, formatID string) ([]byte, error) {
	d := dumpScene{Format: formatID, Flags: scene.Flags}
	for _, m := range view(scene.Meshes, scene.NumMeshes) {
		dm := dumpMesh{Name: getString(&m.Name), Material: m.MaterialIndex}
		for _, v := range view(m.Vertices, m.NumVertices) {
			dm.Positions = append(dm.Positions, [3]float32{v.X, v.Y, v.Z})
		}
		for _, f := range view(m.Faces, m.NumFaces) {
			idx := make([]uint32, f.NumIndices)
			copy(idx, view(f.Indices, f.NumIndices))
			dm.Faces = append(dm.Faces, idx)
		}
		d.Meshes = append(d.Meshes, dm)
	}
	for _, m := range view(scene.Materials, scene.NumMaterials) {
		props := make(map[string]uint32)
		for _, p := range view(m.Properties, m.NumProperties) {
			props[getString(&p.Key)] = p.Type
		}
		d.Mats = append(d.Mats, dumpMaterial{Props: props})
	}
	if md := scene.Metadata; md != nil {
		d.Meta = make(map[string]string)
		keys := view(md.Keys, md.NumProperties)
		vals := view(md.Values, md.NumProperties)
		for i := range keys {
			if ai.MetadataType(vals[i].Type) == ai.MetaString && vals[i].Data != nil {
				d.Meta[getString(&keys[i])] = getString((*ai.String)(vals[i].Data))
			}
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&d); err != nil {
		return nil, errors.Wrap(err, "memscene: encoding dump")
	}
	return buf.Bytes(), nil
}

// ExportScene writes the driver's dump of scene to path. formatID is
// recorded in the dump but only this driver can read it back.
func (e *Engine) ExportScene(scene *ai.Scene, formatID, path string, _ ai.PostProcess) error {
	data, err := dump(scene, formatID)
	if err != nil {
		return errors.Wrap(adapt.ErrEngineFailed, err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(adapt.ErrEngineFailed, err.Error())
	}
	return nil
}

// ExportToBlob exports scene into a blob chain. The primary blob carries
// the dump and the engine convention of an empty name; an auxiliary blob
// names the format, standing in for the side files real exporters emit.
func (e *Engine) ExportToBlob(scene *ai.Scene, formatID string, _ ai.PostProcess) (*ai.ExportDataBlob, error) {
	data, err := dump(scene, formatID)
	if err != nil {
		return nil, errors.Wrap(adapt.ErrEngineFailed, err.Error())
	}
	a := &arena{}

	aux := alloc[ai.ExportDataBlob](a)
	putString(&aux.Name, formatID)
	auxData := allocSlice[byte](a, len(formatID))
	copy(auxData, formatID)
	aux.Data = unsafe.Pointer(bytesPtr(auxData))
	aux.Size = uint64(len(auxData))

	head := alloc[ai.ExportDataBlob](a)
	buf := allocSlice[byte](a, len(data))
	copy(buf, data)
	head.Data = unsafe.Pointer(bytesPtr(buf))
	head.Size = uint64(len(buf))
	head.Next = aux

	e.mu.Lock()
	e.blobs[head] = a
	e.mu.Unlock()
	return head, nil
}
