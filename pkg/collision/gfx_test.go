package collision

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// testBitmap is a 3x1 opaque sheet: colour key, black, white
func testBitmap(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{179, 179, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})
	img.Set(2, 0, color.RGBA{255, 255, 255, 255})

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode bitmap: %v", err)
	}
	return buf.Bytes()
}

func gfxBytes(t *testing.T) []byte {
	data := testBitmap(t)
	data[0], data[1] = 'C', 'G'
	return data
}

func TestLoadGFX(t *testing.T) {
	img, err := LoadGFX(bytes.NewReader(gfxBytes(t)))
	if err != nil {
		t.Fatalf("LoadGFX failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 1 {
		t.Fatalf("Expected a 3x1 image, got %v", b)
	}

	wantAlpha := []uint8{0, 0, 255}
	for x, want := range wantAlpha {
		if got := img.NRGBAAt(x, 0).A; got != want {
			t.Errorf("Pixel %d: expected alpha %d, got %d", x, want, got)
		}
	}

	m := MapFromImage(img)
	if m.Opaque(0, 0) || m.Opaque(1, 0) || !m.Opaque(2, 0) {
		t.Error("Expected only the white pixel to be opaque")
	}
}

func TestLoadGFX_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bmp magic", testBitmap(t)},
		{"truncated", []byte("CG\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGFX(bytes.NewReader(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := LoadGFX(bytes.NewReader(testBitmap(t))); !errors.Is(err, ErrBadHeader) {
		t.Errorf("Expected ErrBadHeader, got %v", err)
	}
}

func TestLoadSheet(t *testing.T) {
	dir := t.TempDir()
	gfx := filepath.Join(dir, "tiles.gfx")
	if err := os.WriteFile(gfx, gfxBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	bmpPath := filepath.Join(dir, "tiles.bmp")
	if err := os.WriteFile(bmpPath, testBitmap(t), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{gfx, bmpPath} {
		img, err := LoadSheet(path)
		if err != nil {
			t.Fatalf("LoadSheet(%s) failed: %v", filepath.Base(path), err)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Errorf("%s: expected the colour key to be transparent", filepath.Base(path))
		}
	}

	if _, err := LoadSheet(filepath.Join(dir, "tiles.tga")); err == nil {
		t.Error("Expected an error for a missing file")
	}
	tga := filepath.Join(dir, "sheet.tga")
	if err := os.WriteFile(tga, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSheet(tga); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}
