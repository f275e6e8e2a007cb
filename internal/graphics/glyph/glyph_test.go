package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBakeDefault(t *testing.T) {
	atlas, err := BakeDefault(16)
	require.NoError(t, err)

	w, h := atlas.Size()
	assert.Equal(t, 512, w)
	assert.Greater(t, h, 0)
	assert.Len(t, atlas.Characters, 126-32+1)

	space := atlas.Characters[' ']
	assert.Zero(t, space.Width)
	assert.Positive(t, space.Advance)

	a := atlas.Characters['A']
	assert.Positive(t, a.Width)
	assert.Positive(t, a.Height)
	assert.LessOrEqual(t, a.AtlasX+a.Width, float32(w))
	assert.LessOrEqual(t, a.AtlasY+a.Height, float32(h))

	// glyph pixels actually landed in the atlas
	var lit int
	for _, p := range atlas.Image.Pix {
		if p != 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
}

func TestBakeRejectsBadInput(t *testing.T) {
	_, err := Bake(nil, 16, 32, 126)
	assert.Error(t, err)
	_, err = BakeDefault(0)
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	atlas, err := BakeDefault(16)
	require.NoError(t, err)

	quads := atlas.Layout(nil, "a b", 10, 20, 1)
	// the space contributes no quad
	require.Len(t, quads, 2*FloatsPerQuad)

	first := atlas.Characters['a']
	assert.InDelta(t, 10+first.BearingX, quads[0], 1e-4)

	// second quad starts after both advances
	b := atlas.Characters['b']
	wantX := 10 + float32(first.Advance+atlas.Characters[' '].Advance) + b.BearingX
	assert.InDelta(t, wantX, quads[FloatsPerQuad], 1e-4)

	for i := 2; i < len(quads); i += 4 {
		assert.GreaterOrEqual(t, quads[i], float32(0))
		assert.LessOrEqual(t, quads[i], float32(1))
	}

	w, h := atlas.Measure("a b", 2)
	assert.InDelta(t, 2*float32(first.Advance+atlas.Characters[' '].Advance+b.Advance), w, 1e-4)
	assert.Positive(t, h)

	// unknown runes fall back to '?'
	assert.Len(t, atlas.Layout(nil, "é", 0, 0, 1), FloatsPerQuad)
}
