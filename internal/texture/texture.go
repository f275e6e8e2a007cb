// Package texture implements the scene's texture pool: a cache of decoded
// textures keyed by resolved absolute path, with the suffix search used to
// locate files referenced by imported materials.
package texture

import "fmt"

// Format is the pixel layout derived from the decoded channel count.
type Format int

const (
	FormatRed  Format = 1
	FormatRGB  Format = 3
	FormatRGBA Format = 4
)

// FormatForChannels maps a channel count to a Format. Counts other than 1 and
// 3 map to RGBA.
func FormatForChannels(channels int) Format {
	switch channels {
	case 1:
		return FormatRed
	case 3:
		return FormatRGB
	default:
		return FormatRGBA
	}
}

// Channels returns the number of bytes per pixel.
func (f Format) Channels() int {
	return int(f)
}

func (f Format) String() string {
	switch f {
	case FormatRed:
		return "red"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Image is decoded pixel data, tightly packed, top row first.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Texture is a pooled texture resource. ID is assigned by the pool and is
// stable for the pool's lifetime; Handle is the backend object name set by an
// Uploader (0 until uploaded).
type Texture struct {
	ID     uint32
	Path   string
	Width  int
	Height int
	Format Format
	Pixels []byte
	Handle uint32
}

func (t *Texture) String() string {
	if t == nil {
		return "Texture: <nil>"
	}
	return fmt.Sprintf("Texture %d: %s (%dx%d %s)", t.ID, t.Path, t.Width, t.Height, t.Format)
}
