package render

import (
	"fmt"
	"strings"
)

// Mode selects the visualization style the rasterizer shades with.
type Mode int

const (
	ModeNormal Mode = iota
	ModeNormals
	ModeWorldPosition
	ModeTexCoords
	ModeTangentSpace
	ModeFlatColor
	modeCount
)

var modeNames = [...]string{
	ModeNormal:        "normal",
	ModeNormals:       "normals",
	ModeWorldPosition: "world_position",
	ModeTexCoords:     "texcoords",
	ModeTangentSpace:  "tangent_space",
	ModeFlatColor:     "flat_color",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the following mode, wrapping around after the last one.
func (m Mode) Next() Mode {
	if m < 0 || m >= modeCount {
		return ModeNormal
	}
	return (m + 1) % modeCount
}

// ParseMode accepts a mode name, case-insensitively, with '-' or '_' separators.
func ParseMode(s string) (Mode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" || key == "pbr" {
		return ModeNormal, nil
	}
	for i, name := range modeNames {
		if name == key {
			return Mode(i), nil
		}
	}
	return ModeNormal, fmt.Errorf("unknown render mode %q", s)
}
