package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, 24-bit BGR, top-to-bottom.
	data := append(tgaHeader(TGATypeUncompressed, 2, 1, 24, 0x20), 0, 0, 255, 255, 0, 0)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(0, 0).(color.RGBA); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := img.At(1, 0).(color.RGBA); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel 1 = %v, want blue", got)
	}
}

func TestDecodeTGABottomUp(t *testing.T) {
	// 1x2, 32-bit; first stored row is the bottom one.
	data := append(tgaHeader(TGATypeUncompressed, 1, 2, 32, 0), 0, 255, 0, 255, 0, 0, 0, 128)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(0, 1).(color.RGBA); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want green", got)
	}
	if got := img.At(0, 0).(color.RGBA); got.A != 128 {
		t.Errorf("top pixel alpha = %d, want 128", got.A)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1: run of 2 red, then 1 raw blue.
	data := tgaHeader(TGATypeRLE, 3, 1, 24, 0x20)
	data = append(data, 0x81, 0, 0, 255)
	data = append(data, 0x00, 255, 0, 0)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	want := []color.RGBA{{R: 255, A: 255}, {R: 255, A: 255}, {B: 255, A: 255}}
	for x, w := range want {
		if got := img.At(x, 0).(color.RGBA); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{1, 2, 3}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"bad type", tgaHeader(3, 1, 1, 24, 0)},
		{"bad depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", tgaHeader(TGATypeUncompressed, 4, 4, 24, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		"albedo.png": pngBuf.Bytes(),
		"albedo.bmp": bmpBuf.Bytes(),
		"albedo.tga": append(tgaHeader(TGATypeUncompressed, 1, 1, 24, 0x20), 30, 20, 10),
	}

	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatal(err)
			}
			img, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			b := img.Bounds()
			x, y := b.Dx()-1, b.Dy()-1
			got := img.RGBAAt(x, y)
			if got.R != 10 || got.G != 20 || got.B != 30 {
				t.Errorf("pixel (%d,%d) = %v", x, y, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(junk); err == nil {
		t.Error("junk data should fail")
	}
}

func TestWhite(t *testing.T) {
	w := White()
	if w.Bounds().Dx() != 1 || len(w.Pix) != 4 {
		t.Fatalf("White() is %v", w.Bounds())
	}
	if w.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("White() pixel = %v", w.RGBAAt(0, 0))
	}
}
