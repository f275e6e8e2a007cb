package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// sniffLen is the header size filetype needs to classify a file.
const sniffLen = 262

// Loader reads pixel data for a resolved path.
type Loader interface {
	Load(path string) (*Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*Image, error)

func (f LoaderFunc) Load(path string) (*Image, error) { return f(path) }

// FileLoader decodes PNG, JPEG, GIF, BMP, TIFF and WebP files from disk.
// Files whose header does not identify an image are rejected with ErrNotImage
// before decoding.
type FileLoader struct{}

func (FileLoader) Load(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, 4096)
	head, _ := br.Peek(sniffLen)
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return Pack(img), nil
}

// Pack converts a decoded image into tightly packed pixels with the channel
// count its decoder reports: grayscale 1, truecolor 3, with alpha 4.
func Pack(img image.Image) *Image {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	channels := channelsOf(img)
	out := &Image{Width: b.Dx(), Height: b.Dy(), Channels: channels}
	if channels == 4 {
		out.Pix = rgba.Pix
		return out
	}

	n := b.Dx() * b.Dy()
	out.Pix = make([]byte, 0, n*channels)
	for i := 0; i < n; i++ {
		px := rgba.Pix[i*4 : i*4+4]
		out.Pix = append(out.Pix, px[:channels]...)
	}
	return out
}

// channelsOf derives the stored channel count from the decoded image type,
// never from pixel values: the stdlib and x/image decoders return NRGBA or
// NYCbCrA when the file carries alpha and RGBA for alpha-less truecolor.
// Paletted images count as RGBA when the palette declares transparency.
func channelsOf(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK, *image.RGBA, *image.RGBA64:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 4
}
