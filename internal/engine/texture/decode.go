// Package texture decodes block textures and hands them to the GPU upload boundary.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders are tried in order by magic bytes; '?' matches any byte.
// TGA has no magic and is the fallback. It is never reached through
// image.Decode: the tga package registers an empty magic that would
// claim every input ahead of the formats below.
var decoders = []struct {
	format string
	magic  string
	decode func(io.Reader) (image.Image, error)
}{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"bmp", "BM", bmp.Decode},
	{"tiff", "II*\x00", tiff.Decode},
	{"tiff", "MM\x00*", tiff.Decode},
	{"webp", "RIFF????WEBP", webp.Decode},
}

func matchMagic(magic string, data []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != data[i] {
			return false
		}
	}
	return true
}

// Decode decodes an image file (PNG, TGA, BMP, TIFF or WebP) into
// non-premultiplied RGBA8 pixels with the origin at (0, 0).
func Decode(data []byte) (*image.NRGBA, error) {
	format, decode := "tga", tga.Decode
	for _, d := range decoders {
		if matchMagic(d.magic, data) {
			format, decode = d.format, d.decode
			break
		}
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s texture: %w", format, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding texture: empty %s image", format)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to tightly packed NRGBA starting at the origin.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
