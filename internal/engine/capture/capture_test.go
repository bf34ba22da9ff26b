package capture

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "sandbox")
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }

	// 2x1: red then green.
	pixels := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	path, err := c.Save(pixels, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "sandbox_2024-03-01_12-30-45.000.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, _, _ := img.At(1, 0).RGBA(); r != 0 || g != 0xffff {
		t.Errorf("pixel (1,0) = %d,%d, want green", r, g)
	}
}

func TestSaveSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "x")
	tests := []struct {
		name          string
		n             int
		width, height int
	}{
		{"short", 3, 1, 1},
		{"zero width", 0, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Save(make([]byte, tt.n), tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFilenameWithoutDir(t *testing.T) {
	c := New("", "shot")
	if name := c.Filename(); strings.ContainsRune(name, os.PathSeparator) || !strings.HasPrefix(name, "shot_") {
		t.Errorf("Filename() = %s", name)
	}
}
