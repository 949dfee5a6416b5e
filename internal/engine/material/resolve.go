package material

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/texture"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/internal/scene"
)

// ErrTexture wraps texture failures in strict mode.
var ErrTexture = errors.New("material: texture load failed")

// TextureLoader creates textures. The GL implementation is texture.GLLoader.
type TextureLoader interface {
	LoadMemory(data []byte, hint string) (*texture.Texture, error)
	LoadFile(path string) (*texture.Texture, error)
	Release(t *texture.Texture)
}

// Warning describes a texture slot left empty because loading failed.
type Warning struct {
	Material int
	Name     string
	Slot     scene.TextureSlot
	Path     string
	Err      error
}

func (w Warning) Error() string {
	return fmt.Sprintf("material %d (%s) %s texture %q: %v", w.Material, w.Name, w.Slot, w.Path, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Combine folds warnings into a single error, nil when there are none.
func Combine(warnings []Warning) error {
	var err error
	for _, w := range warnings {
		err = multierr.Append(err, w)
	}
	return err
}

// Resolver turns the raw material table of one load into materials.
type Resolver struct {
	// Dir is the model's directory, used for textures not embedded in the file.
	Dir      string
	Embedded map[string]scene.EmbeddedTexture
	Loader   TextureLoader
	// Strict makes the first texture failure abort the whole load.
	Strict bool
}

var resolveOrder = [...]scene.TextureSlot{
	scene.SlotDiffuse,
	scene.SlotSpecularExponent,
	scene.SlotAlbedo,
	scene.SlotMetallic,
	scene.SlotRoughness,
	scene.SlotNormalMap,
}

// cacheKey identifies one texture source within a Resolve call.
type cacheKey struct {
	embedded bool
	path     string
}

type cached struct {
	tex *texture.Texture
	err error
}

// Resolve resolves every raw material in order. Texture failures are
// collected as warnings and leave the slot empty; in strict mode the first
// failure releases everything loaded so far and returns ErrTexture.
// A source referenced by several slots or materials is loaded once and
// the texture is shared.
func (r *Resolver) Resolve(raw []scene.RawMaterial) ([]Material, []Warning, error) {
	mats := make([]Material, len(raw))
	var warnings []Warning
	cache := make(map[cacheKey]cached)

	for i := range raw {
		mats[i] = fromRaw(&raw[i])
		for _, slot := range resolveOrder {
			p, ok := raw[i].TexturePath(slot)
			if !ok {
				continue
			}

			key := r.keyFor(p)
			c, ok := cache[key]
			if !ok {
				c.tex, c.err = r.load(p)
				cache[key] = c
			}
			tex, err := c.tex, c.err
			if err != nil {
				w := Warning{Material: i, Name: raw[i].Name, Slot: slot, Path: p, Err: err}
				if r.Strict {
					ReleaseAll(mats[:i+1], r.Loader)
					return nil, nil, fmt.Errorf("%w: %w", ErrTexture, w)
				}
				logger.Log.Warn("texture skipped",
					zap.Int("material", i),
					zap.String("name", raw[i].Name),
					zap.Stringer("slot", slot),
					zap.String("path", p),
					zap.Error(err),
				)
				warnings = append(warnings, w)
				continue
			}
			mats[i].Textures[slot] = tex
		}
	}
	return mats, warnings, nil
}

func (r *Resolver) keyFor(p string) cacheKey {
	if _, ok := r.Embedded[p]; ok {
		return cacheKey{embedded: true, path: p}
	}
	return cacheKey{path: FullPath(r.Dir, p)}
}

// load picks the embedded blob stored under p, or falls back to a file
// relative to the model directory.
func (r *Resolver) load(p string) (*texture.Texture, error) {
	if emb, ok := r.Embedded[p]; ok {
		tex, err := r.Loader.LoadMemory(emb.Data, emb.FormatHint)
		if err != nil {
			return nil, err
		}
		tex.Source = texture.FromMemory
		tex.Path = p
		return tex, nil
	}

	full := FullPath(r.Dir, p)
	if full == "" {
		return nil, fmt.Errorf("placeholder path")
	}
	tex, err := r.Loader.LoadFile(full)
	if err != nil {
		return nil, err
	}
	tex.Source = texture.FromFile
	tex.Path = full
	return tex, nil
}
