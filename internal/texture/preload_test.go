package texture

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadAssignsIDsInOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, filepath.Join(dir, "maps", name), opaqueImage(2, 2))
	}

	loader := &countingLoader{}
	up := &recordingUploader{}
	pool := NewPool(WithDirectory(dir), WithLoader(loader), WithUploader(up))

	n, err := pool.Preload(context.Background(), []string{
		`D:\work\maps\c.png`,
		"maps/a.png",
		"/elsewhere/maps/c.png", // same file as the first path
		"maps/b.png",
		"",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int32(3), loader.loads.Load())
	assert.Equal(t, []uint32{1, 2, 3}, up.uploaded)

	textures := pool.Textures()
	require.Len(t, textures, 3)
	assert.Equal(t, "c.png", filepath.Base(textures[0].Path))
	assert.Equal(t, "a.png", filepath.Base(textures[1].Path))
	assert.Equal(t, "b.png", filepath.Base(textures[2].Path))

	// later loads are served from the pool
	tex, err := pool.Load("/elsewhere/maps/c.png")
	require.NoError(t, err)
	assert.Same(t, textures[0], tex)
	assert.Equal(t, int32(3), loader.loads.Load())
}

func TestPreloadSkipsPooledAndReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), opaqueImage(1, 1))
	writePNG(t, filepath.Join(dir, "b.png"), opaqueImage(1, 1))

	loader := &countingLoader{}
	pool := NewPool(WithDirectory(dir), WithLoader(loader))
	_, err := pool.Load("a.png")
	require.NoError(t, err)

	n, err := pool.Preload(context.Background(), []string{"a.png", "missing.png", "b.png"})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(2), loader.loads.Load())
	assert.Equal(t, 2, pool.Len())
}

func TestPreloadDecodeFailureLeavesPoolUnchanged(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bad.png"), opaqueImage(1, 1))
	writePNG(t, filepath.Join(dir, "good.png"), opaqueImage(1, 1))

	boom := errors.New("boom")
	loader := LoaderFunc(func(path string) (*Image, error) {
		if filepath.Base(path) == "bad.png" {
			return nil, boom
		}
		return FileLoader{}.Load(path)
	})
	pool := NewPool(WithDirectory(dir), WithLoader(loader))

	n, err := pool.Preload(context.Background(), []string{"bad.png", "good.png"})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, boom)
	require.Equal(t, 1, pool.Len())
	assert.Equal(t, uint32(1), pool.Textures()[0].ID)
}

func TestPreloadCanceled(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "slow.png"), opaqueImage(1, 1))

	release := make(chan struct{})
	loader := LoaderFunc(func(path string) (*Image, error) {
		<-release
		return FileLoader{}.Load(path)
	})
	defer close(release)

	pool := NewPool(WithDirectory(dir), WithLoader(loader))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := pool.Preload(ctx, []string{"slow.png"})
	assert.Zero(t, n)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, pool.Len())
}

func TestDecoderRunsJobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.png")
	writePNG(t, path, opaqueImage(3, 1))

	d := NewDecoder(nil, 2, 4)
	defer d.Shutdown()

	results := make(chan DecodeResult, 1)
	require.NoError(t, d.Submit(context.Background(), DecodeJob{Path: path, Result: results}))
	r := <-results
	require.NoError(t, r.Err)
	assert.Equal(t, path, r.Path)
	assert.Equal(t, 3, r.Image.Width)
}

func TestDecoderSubmitAfterShutdown(t *testing.T) {
	d := NewDecoder(FileLoader{}, 1, 1)
	d.Shutdown()
	d.Shutdown()
	err := d.Submit(context.Background(), DecodeJob{Path: "x", Result: make(chan DecodeResult, 1)})
	assert.ErrorIs(t, err, ErrDecoderClosed)
	assert.Zero(t, d.QueueLength())
}
