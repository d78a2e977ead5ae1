// pkg/collision/gfx.go
package collision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/opd-ai/go-freecg/pkg/logging"
)

// ErrBadHeader is returned for GFX data that does not start with "CG".
var ErrBadHeader = errors.New("wrong CG header")

// colorKey is drawn transparent in GFX sheets.
var colorKey = color.RGBA{R: 179, G: 179, B: 0, A: 255}

// LoadGFX decodes a GFX tile sheet: a BMP file whose magic has been
// replaced by "CG". Colour-keyed and pure black pixels become transparent.
func LoadGFX(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gfx: %w", err)
	}
	if len(data) < 2 {
		return nil, errors.New("gfx file is corrupted")
	}
	if !bytes.HasPrefix(data, []byte("CG")) {
		return nil, ErrBadHeader
	}
	data[0], data[1] = 'B', 'M'

	src, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode gfx bitmap: %w", err)
	}
	return keyTransparency(src), nil
}

func keyTransparency(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			keyed := c.R == colorKey.R && c.G == colorKey.G && c.B == colorKey.B
			black := c.R == 0 && c.G == 0 && c.B == 0
			if keyed || black {
				continue
			}
			c.A = 255
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// LoadSheet opens a tile sheet by extension: .gfx (CG-headed BMP), .bmp or
// .png. PNG sheets keep their own alpha channel.
func LoadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, logging.WrapError(err, "failed to open tile sheet")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gfx":
		img, err := LoadGFX(f)
		if err != nil {
			return nil, logging.WrapError(err, "loading %s", path)
		}
		return img, nil
	case ".bmp":
		img, err := bmp.Decode(f)
		if err != nil {
			return nil, logging.WrapError(err, "loading %s", path)
		}
		return keyTransparency(img), nil
	case ".png":
		img, err := png.Decode(f)
		if err != nil {
			return nil, logging.WrapError(err, "loading %s", path)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported tile sheet format %q", filepath.Ext(path))
	}
}
