package texture

import "fmt"

// Format is the pixel layout handed to an Uploader.
type Format int

const (
	// FormatRGBA8 is 8 bits per channel, non-premultiplied, row-major.
	FormatRGBA8 Format = iota
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BytesPerPixel returns the size of one pixel.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8:
		return 4
	default:
		return 0
	}
}

// Handle is an opaque GPU-resident texture.
type Handle interface {
	Size() (width, height uint32)
	Release()
}

// Uploader is the GPU upload boundary. Implementations may require exclusive
// access to their device; callers serialize calls.
type Uploader interface {
	// Upload creates a sampled texture from pixel data.
	Upload(label string, pixels []byte, width, height uint32, format Format) (Handle, error)
	// UploadDepth creates a depth texture with a comparison sampler for
	// off-screen depth buffers.
	UploadDepth(label string, width, height uint32) (Handle, error)
}

// checkPixels validates that pixels cover exactly width*height texels.
func checkPixels(pixels []byte, width, height uint32, format Format) error {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("unsupported texture format %s", format)
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if want := int(width) * int(height) * bpp; len(pixels) != want {
		return fmt.Errorf("pixel data is %d bytes, want %d for %dx%d %s", len(pixels), want, width, height, format)
	}
	return nil
}
