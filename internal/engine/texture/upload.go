package texture

import (
	"fmt"
	"image"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/logger"
)

// GLLoader decodes images and uploads them to the current GL context.
// It must only be used on the thread that owns the context.
type GLLoader struct {
	// FlipFiles mirrors images loaded from disk vertically before upload.
	FlipFiles bool
}

// LoadMemory decodes an embedded image and uploads it.
func (l *GLLoader) LoadMemory(data []byte, hint string) (*Texture, error) {
	d, err := Decode(data, hint)
	if err != nil {
		return nil, err
	}
	return upload(d, FromMemory, hint), nil
}

// LoadFile reads an image from disk and uploads it.
func (l *GLLoader) LoadFile(path string) (*Texture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("texture file: %w", err)
	}
	d, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	if l.FlipFiles {
		FlipVertical(d.Image)
	}
	return upload(d, FromFile, path), nil
}

// Release deletes the GL texture. It is safe to call with nil.
func (l *GLLoader) Release(t *Texture) {
	if t == nil || t.Handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.Handle)
	t.Handle = 0
}

func upload(d *Decoded, src Source, path string) *Texture {
	img := d.Image
	w, h := img.Rect.Dx(), img.Rect.Dy()
	levels := MipLevels(w, h)

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels(img)))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(levels-1))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Log.Debug("texture uploaded",
		zap.Uint32("handle", handle),
		zap.String("source", src.String()),
		zap.String("path", path),
		zap.String("format", d.Format),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("levels", levels),
	)

	return &Texture{
		Target: gl.TEXTURE_2D,
		Handle: handle,
		Width:  w,
		Height: h,
		BPP:    d.Channels,
		Source: src,
		Path:   path,
	}
}

// pixels returns tightly packed rows.
func pixels(img *image.NRGBA) []uint8 {
	row := img.Rect.Dx() * 4
	if img.Stride == row {
		return img.Pix[:row*img.Rect.Dy()]
	}
	out := make([]uint8, 0, row*img.Rect.Dy())
	for y := 0; y < img.Rect.Dy(); y++ {
		out = append(out, img.Pix[y*img.Stride:y*img.Stride+row]...)
	}
	return out
}
