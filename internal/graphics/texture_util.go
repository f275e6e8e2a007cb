package graphics

import (
	"fmt"

	"scenery/internal/texture"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureUploader creates GL textures for pooled images. It implements
// texture.Uploader and must be used on the thread owning the GL context.
type TextureUploader struct{}

// Upload creates a mipmapped, repeating 2D texture from tex.Pixels and stores
// the GL name in tex.Handle.
func (TextureUploader) Upload(tex *texture.Texture) error {
	if tex.Width <= 0 || tex.Height <= 0 || len(tex.Pixels) < tex.Width*tex.Height*tex.Format.Channels() {
		return fmt.Errorf("texture %d (%s): pixel data does not match %dx%d %s", tex.ID, tex.Path, tex.Width, tex.Height, tex.Format)
	}

	var format uint32
	switch tex.Format {
	case texture.FormatRed:
		format = gl.RED
	case texture.FormatRGB:
		format = gl.RGB
	default:
		format = gl.RGBA
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// rows of RED and RGB data are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		int32(format),
		int32(tex.Width),
		int32(tex.Height),
		0,
		format,
		gl.UNSIGNED_BYTE,
		gl.Ptr(tex.Pixels),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	tex.Handle = id
	return nil
}

// Release deletes the GL texture.
func (TextureUploader) Release(tex *texture.Texture) {
	if tex.Handle != 0 {
		gl.DeleteTextures(1, &tex.Handle)
		tex.Handle = 0
	}
}
