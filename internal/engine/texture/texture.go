// Package texture decodes images from memory or disk and uploads them as
// OpenGL textures.
package texture

import "fmt"

// Source records where a texture's pixels came from.
type Source int

const (
	FromFile Source = iota
	FromMemory
)

func (s Source) String() string {
	if s == FromMemory {
		return "memory"
	}
	return "file"
}

// MaxMipLevels caps the generated mip chain.
const MaxMipLevels = 5

// Texture is an uploaded GPU texture. It is immutable after load.
type Texture struct {
	Target uint32
	Handle uint32
	Width  int
	Height int
	BPP    int // channels of the decoded source image
	Source Source
	Path   string
}

func (t *Texture) String() string {
	return fmt.Sprintf("texture %d (%dx%d, %d bpp, %s %s)", t.Handle, t.Width, t.Height, t.BPP, t.Source, t.Path)
}

// MipLevels returns min(MaxMipLevels, floor(log2(max(w, h)))), at least 1.
func MipLevels(width, height int) int {
	size := max(width, height)
	levels := 0
	for size > 1 && levels < MaxMipLevels {
		size >>= 1
		levels++
	}
	return max(levels, 1)
}
