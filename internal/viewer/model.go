package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/debug"
	"github.com/Faultbox/gizmo/internal/engine/material"
	"github.com/Faultbox/gizmo/internal/engine/mesh"
	"github.com/Faultbox/gizmo/internal/engine/renderer"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/internal/scene"
	"github.com/Faultbox/gizmo/internal/scene/gltfimport"
)

// ErrUnsupportedFormat is returned for model files no importer handles.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Model is one loaded model: CPU-side buffers, resolved materials and,
// once installed, its GPU buffers.
type Model struct {
	Path      string
	Geometry  *mesh.Geometry
	Layout    *mesh.Layout
	Materials []material.Material
	Warnings  []material.Warning
	Bounds    mesh.Bounds
	HasBounds bool
	GPU       *renderer.GPUMesh

	bboxLines   []float32
	normalLines []float32
}

// Name returns the file name without directories.
func (m *Model) Name() string {
	return filepath.Base(m.Path)
}

// Release frees the model's textures and GPU buffers.
func (m *Model) Release(l material.TextureLoader) {
	if m == nil {
		return
	}
	material.ReleaseAll(m.Materials, l)
	m.GPU.Delete()
	m.GPU = nil
}

// Loader runs the import → flatten → material pipeline.
type Loader struct {
	// Importer overrides extension-based importer selection.
	Importer     scene.Importer
	Textures     material.TextureLoader
	Strict       bool
	NormalLength float32
}

// importerFor picks an importer by file extension.
func importerFor(path string) (scene.Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return gltfimport.Importer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load imports path and builds everything the renderer needs except the
// GPU buffers.
func (l *Loader) Load(path string) (*Model, error) {
	log := logger.Named("loader")

	imp := l.Importer
	if imp == nil {
		var err error
		if imp, err = importerFor(path); err != nil {
			return nil, err
		}
	}

	sc, err := imp.Import(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	geom, layout, err := mesh.Build(sc)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", path, err)
	}
	if err := layout.Tiles(); err != nil {
		return nil, fmt.Errorf("flatten %s: %w", path, err)
	}

	resolver := material.Resolver{
		Dir:      material.DirOf(filepath.ToSlash(path)),
		Embedded: sc.Embedded,
		Loader:   l.Textures,
		Strict:   l.Strict,
	}
	mats, warnings, err := resolver.Resolve(sc.Materials)
	if err != nil {
		return nil, fmt.Errorf("materials %s: %w", path, err)
	}

	m := &Model{
		Path:      path,
		Geometry:  geom,
		Layout:    layout,
		Materials: mats,
		Warnings:  warnings,
	}
	m.Bounds, m.HasBounds = mesh.ComputeBounds(geom, layout)
	if m.HasBounds {
		m.bboxLines = debug.BBoxLines(m.Bounds, 0)
	}
	m.normalLines = debug.FaceNormalLines(geom, layout, l.NormalLength)

	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("submeshes", len(layout.Submeshes)),
		zap.Int("vertices", layout.TotalVertices),
		zap.Int("indices", layout.TotalIndices),
		zap.Int("materials", len(mats)),
		zap.Int("texture_warnings", len(warnings)),
	)
	if len(warnings) > 0 {
		log.Warn("textures missing", zap.Error(material.Combine(warnings)))
	}
	return m, nil
}
