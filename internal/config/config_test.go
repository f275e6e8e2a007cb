package config

import (
	"os"
	"path/filepath"
	"testing"

	"scenery/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFPSLimitClamps(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())

	tests := []struct{ in, want int }{
		{-5, 0}, {0, 0}, {1, 15}, {60, 60}, {1000, 480},
	}
	for _, tt := range tests {
		SetFPSLimit(tt.in)
		assert.Equal(t, tt.want, GetFPSLimit(), "SetFPSLimit(%d)", tt.in)
	}
}

func TestSetMaxLightsClamps(t *testing.T) {
	defer SetMaxLights(GetMaxLights())

	SetMaxLights(0)
	assert.Equal(t, MinLights, GetMaxLights())
	SetMaxLights(100)
	assert.Equal(t, MaxLights, GetMaxLights())
	SetMaxLights(4)
	assert.Equal(t, 4, GetMaxLights())
}

func TestCycleRenderMode(t *testing.T) {
	defer SetRenderMode(GetRenderMode())

	SetRenderMode(render.ModeFlatColor)
	assert.Equal(t, render.ModeNormal, CycleRenderMode())
	assert.Equal(t, render.ModeNormals, CycleRenderMode())
	assert.Equal(t, render.ModeNormals, GetRenderMode())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenery.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 800
height = 600

[render]
mode = "tangent-space"
max_lights = 4
show_axes = true

[scene]
path = "scenes/demo.yaml"
watch = false
offset = [0.0, -1.5, 2.0]

[log]
level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "scenery", cfg.Window.Title)
	assert.Equal(t, 4, cfg.Render.MaxLights)
	assert.Equal(t, 60, cfg.Render.FPSLimit)
	assert.Equal(t, "scenes/demo.yaml", cfg.Scene.Path)
	assert.False(t, cfg.Scene.Watch)
	assert.Equal(t, [3]float32{0, -1.5, 2}, cfg.Scene.Offset)
	assert.Equal(t, "debug", cfg.Log.Level)

	defer func(mode render.Mode, axes bool, lights int) {
		SetRenderMode(mode)
		SetShowAxes(axes)
		SetMaxLights(lights)
	}(GetRenderMode(), GetShowAxes(), GetMaxLights())

	require.NoError(t, Apply(cfg))
	assert.Equal(t, render.ModeTangentSpace, GetRenderMode())
	assert.True(t, GetShowAxes())
	assert.Equal(t, 4, GetMaxLights())
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "[render]\nwireframe = true\n",
		"bad mode":     "[render]\nmode = \"xray\"\n",
		"bad window":   "[window]\nwidth = 0\n",
		"orbit bounds": "[camera]\nmin_distance = 20.0\nmax_distance = 10.0\n",
		"syntax":       "[render\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}
