package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLTexture is a texture object owned by the current OpenGL context.
type GLTexture struct {
	ID     uint32
	Label  string
	Width  uint32
	Height uint32
	Depth  bool
}

// Size implements Handle.
func (t *GLTexture) Size() (uint32, uint32) {
	return t.Width, t.Height
}

// Release deletes the texture object.
func (t *GLTexture) Release() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// GLUploader uploads textures through OpenGL 4.1 core.
// All calls must happen on the thread that owns the current context.
type GLUploader struct{}

// NewGLUploader loads the OpenGL function pointers for the current context.
func NewGLUploader() (*GLUploader, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	return &GLUploader{}, nil
}

// Upload implements Uploader. Model textures use nearest filtering and repeat wrapping.
func (u *GLUploader) Upload(label string, pixels []byte, width, height uint32, format Format) (Handle, error) {
	if err := checkPixels(pixels, width, height, format); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", label, err)
	}

	tex := &GLTexture{Label: label, Width: width, Height: height}
	gl.GenTextures(1, &tex.ID)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		tex.Release()
		return nil, fmt.Errorf("uploading %s: GL error 0x%x", label, code)
	}
	return tex, nil
}

// UploadDepth implements Uploader. The texture compares with LEQUAL for sampler2DShadow.
func (u *GLUploader) UploadDepth(label string, width, height uint32) (Handle, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("uploading %s: invalid depth size %dx%d", label, width, height)
	}

	tex := &GLTexture{Label: label, Width: width, Height: height, Depth: true}
	gl.GenTextures(1, &tex.ID)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, int32(width), int32(height), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// Shadow comparison mode for sampler2DShadow
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		tex.Release()
		return nil, fmt.Errorf("uploading %s: GL error 0x%x", label, code)
	}
	return tex, nil
}
