package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func opaqueImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

// countingLoader wraps FileLoader and counts underlying loads.
type countingLoader struct {
	loads atomic.Int32
}

func (c *countingLoader) Load(path string) (*Image, error) {
	c.loads.Add(1)
	return FileLoader{}.Load(path)
}

type recordingUploader struct {
	uploaded []uint32
	released []uint32
	fail     bool
}

func (u *recordingUploader) Upload(tex *Texture) error {
	if u.fail {
		return errors.New("no context")
	}
	tex.Handle = 100 + tex.ID
	u.uploaded = append(u.uploaded, tex.ID)
	return nil
}

func (u *recordingUploader) Release(tex *Texture) {
	u.released = append(u.released, tex.ID)
}

func TestLoadEquivalentPathsShareTexture(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "textures", "brick.png"), opaqueImage(4, 2))

	loader := &countingLoader{}
	pool := NewPool(WithDirectory(dir), WithLoader(loader))

	a, err := pool.Load(`C:\art\project\textures\brick.png`)
	require.NoError(t, err)
	b, err := pool.Load("textures/./sub/../brick.png")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, int32(1), loader.loads.Load(), "file must be loaded exactly once")
	assert.Equal(t, 1, pool.Len())

	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 2, a.Height)
	assert.Equal(t, FormatRGB, a.Format)
	assert.Len(t, a.Pixels, 4*2*3)
	assert.True(t, filepath.IsAbs(a.Path))
	assert.Same(t, a, pool.Get(a.Path))
}

func TestLoadCacheHitSkipsFilesystem(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "albedo.png")
	writePNG(t, file, opaqueImage(1, 1))

	loader := &countingLoader{}
	pool := NewPool(WithDirectory(dir), WithLoader(loader))

	first, err := pool.Load("/old/machine/albedo.png")
	require.NoError(t, err)
	require.NoError(t, os.Remove(file))

	second, err := pool.Load("/old/machine/albedo.png")
	require.NoError(t, err, "a normalized path seen before must not touch the filesystem")
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.loads.Load())
}

func TestLoadFailureLeavesPoolUnchanged(t *testing.T) {
	wrong := t.TempDir()
	right := t.TempDir()
	writePNG(t, filepath.Join(right, "maps", "rough.png"), opaqueImage(2, 2))

	pool := NewPool(WithDirectory(wrong))
	tex, err := pool.Load("maps/rough.png")
	assert.Nil(t, tex)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, pool.Len())

	pool.SetDirectory(right)
	tex, err = pool.Load("maps/rough.png")
	require.NoError(t, err, "failures must not be cached")
	assert.Equal(t, uint32(1), tex.ID)
	assert.Equal(t, right, pool.Directory())
}

func TestLoadEmptyPath(t *testing.T) {
	pool := NewPool()
	_, err := pool.Load("   ")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestLoadRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.png"), []byte("definitely not a png file"), 0o644))

	pool := NewPool(WithDirectory(dir))
	_, err := pool.Load("notes.png")
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Zero(t, pool.Len())
}

func TestLoadDerivesFormat(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	writePNG(t, filepath.Join(dir, "gray.png"), gray)

	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.Set(0, 0, color.NRGBA{R: 255, A: 128})
	writePNG(t, filepath.Join(dir, "alpha.png"), translucent)

	pool := NewPool(WithDirectory(dir))

	g, err := pool.Load("gray.png")
	require.NoError(t, err)
	assert.Equal(t, FormatRed, g.Format)
	assert.Len(t, g.Pixels, 9)

	a, err := pool.Load("alpha.png")
	require.NoError(t, err)
	assert.Equal(t, FormatRGBA, a.Format)
	assert.Len(t, a.Pixels, 16)

	assert.Equal(t, []*Texture{g, a}, pool.Textures())
	assert.Equal(t, uint32(2), a.ID)
}

func TestUploaderLifecycle(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), opaqueImage(1, 1))
	writePNG(t, filepath.Join(dir, "b.png"), opaqueImage(1, 1))

	up := &recordingUploader{}
	pool := NewPool(WithDirectory(dir), WithUploader(up))

	a, err := pool.Load("a.png")
	require.NoError(t, err)
	_, err = pool.Load("a.png")
	require.NoError(t, err)
	b, err := pool.Load("b.png")
	require.NoError(t, err)

	assert.Equal(t, []uint32{1, 2}, up.uploaded)
	assert.Equal(t, uint32(101), a.Handle)

	assert.True(t, pool.Remove(a.Path))
	assert.False(t, pool.Remove(a.Path))
	assert.Equal(t, []*Texture{b}, pool.Textures())

	pool.Release()
	assert.Equal(t, []uint32{1, 2}, up.released)
	assert.Zero(t, pool.Len())
	assert.Nil(t, pool.Get(b.Path))
}

func TestUploadFailureLeavesPoolUnchanged(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), opaqueImage(1, 1))

	up := &recordingUploader{fail: true}
	pool := NewPool(WithDirectory(dir), WithUploader(up))

	_, err := pool.Load("a.png")
	require.Error(t, err)
	assert.Zero(t, pool.Len())

	up.fail = false
	tex, err := pool.Load("a.png")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), tex.ID, "a failed upload must not consume an id")
}

func TestConcurrentLoadsDeduplicate(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "shared.png"), opaqueImage(8, 8))

	loader := &countingLoader{}
	pool := NewPool(WithDirectory(dir), WithLoader(loader))

	var wg sync.WaitGroup
	results := make([]*Texture, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tex, err := pool.Load("shared.png")
			if err == nil {
				results[i] = tex
			}
		}(i)
	}
	wg.Wait()

	for _, tex := range results {
		assert.Same(t, results[0], tex)
	}
	assert.Equal(t, int32(1), loader.loads.Load())
}
