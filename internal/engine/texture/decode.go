package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoded is a decoded image ready for upload.
type Decoded struct {
	Image    *image.NRGBA
	Format   string
	Channels int
}

// Decode decodes an encoded image. The format is sniffed from the data;
// hint (a MIME type, extension or file name) is only needed for TGA.
func Decode(data []byte, hint string) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode: empty image data")
	}

	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		if !filetype.IsImage(data) {
			return nil, fmt.Errorf("decode: %s data is not an image", kind.MIME.Value)
		}
	} else if isTGAHint(hint) {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return &Decoded{Image: img, Format: "tga", Channels: tgaChannels(data)}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Without a hint an unknown blob may still be TGA.
		if tga, tgaErr := DecodeTGA(data); tgaErr == nil {
			return &Decoded{Image: tga, Format: "tga", Channels: tgaChannels(data)}, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &Decoded{Image: ToNRGBA(img), Format: format, Channels: channels(img)}, nil
}

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Decode(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func isTGAHint(hint string) bool {
	h := strings.ToLower(hint)
	return strings.HasSuffix(h, ".tga") || strings.Contains(h, "tga") || strings.Contains(h, "targa")
}

func tgaChannels(data []byte) int {
	switch data[16] {
	case 8:
		return 1
	case 24:
		return 3
	default:
		return 4
	}
}

// ToNRGBA converts img to non-premultiplied RGBA with its origin at (0,0).
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := img.Rect.Dx() * 4
	tmp := make([]byte, row)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+row]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+row]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

func channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	default:
		return 4
	}
}
