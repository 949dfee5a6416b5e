package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// tgaHeader returns an 18-byte header for a true-color or gray image.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestMipLevels(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{16, 16, 4},
		{256, 64, 5},
		{4096, 4096, 5},
	}
	for _, tt := range tests {
		if got := MipLevels(tt.w, tt.h); got != tt.want {
			t.Errorf("MipLevels(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	d, err := Decode(encodePNG(t, src), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Format != "png" {
		t.Errorf("format = %q", d.Format)
	}
	if d.Channels != 4 {
		t.Errorf("channels = %d, want 4", d.Channels)
	}
	if got := d.Image.NRGBAAt(2, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 128}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	d, err := Decode(encodePNG(t, gray), "")
	if err != nil {
		t.Fatalf("decode gray: %v", err)
	}
	if d.Channels != 1 {
		t.Errorf("gray channels = %d", d.Channels)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	d, err = Decode(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if d.Format != "jpeg" || d.Channels != 3 {
		t.Errorf("jpeg decoded as %s with %d channels", d.Format, d.Channels)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(nil, ""); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := Decode([]byte("definitely not an image"), "foo.png"); err == nil {
		t.Error("expected error for garbage")
	}
	// A zip archive is recognised but is not an image.
	zip := []byte{'P', 'K', 0x03, 0x04, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := Decode(zip, ""); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, 24-bit, bottom-up: file order is bottom row first, BGR.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	d, err := Decode(data, "wall.TGA")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Format != "tga" || d.Channels != 3 {
		t.Errorf("format %s channels %d", d.Format, d.Channels)
	}
	img := d.Image
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 1, color.NRGBA{R: 255, A: 255}},
		{1, 1, color.NRGBA{G: 255, A: 255}},
		{0, 0, color.NRGBA{B: 255, A: 255}},
		{1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32-bit, top-down: a run of two red pixels then one raw blue pixel.
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 0, 0, 255, 200,
		0x00, 255, 0, 0, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 255, A: 200}) {
		t.Errorf("run pixel = %v", got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeTGAGray(t *testing.T) {
	data := append(tgaHeader(tgaGray, 1, 1, 8, true), 77)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 77, G: 77, B: 77, A: 255}) {
		t.Errorf("gray pixel = %v", got)
	}
}

func TestDecodeTGAInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaTrueColor, 1, 1, 24, false); h[1] = 1; return h }()},
		{"bad type", tgaHeader(1, 1, 1, 24, false)},
		{"bad depth", tgaHeader(tgaTrueColor, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeader(tgaTrueColor, 2, 2, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaTrueColorRLE, 4, 1, 24, false), 0x83, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	if err := os.WriteFile(path, encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4))), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if d.Image.Rect.Dx() != 4 {
		t.Errorf("width = %d", d.Image.Rect.Dx())
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.png")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 255})
	img.SetNRGBA(0, 2, color.NRGBA{R: 3, A: 255})

	FlipVertical(img)

	if img.NRGBAAt(0, 0).R != 3 || img.NRGBAAt(0, 2).R != 1 {
		t.Errorf("rows not swapped: %v", img.Pix)
	}
}

func TestToNRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{G: 255, A: 255})
	out := ToNRGBA(src)
	if out.Rect.Min != (image.Point{}) || out.Rect.Dx() != 2 {
		t.Fatalf("unexpected bounds %v", out.Rect)
	}
	if out.NRGBAAt(1, 0).G != 255 {
		t.Error("pixel not moved to origin")
	}
}
