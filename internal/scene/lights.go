package scene

import (
	"sort"

	"scenery/internal/light"
	"scenery/internal/profiling"
)

type lightDistance struct {
	light    *light.Light
	distance float32
}

// ClosestLights returns up to max scene lights ordered by distance from the
// target node's global position. Equal distances keep registration order, so
// the result is deterministic. A nil target or a non-positive max yields nil.
//
// Scratch space is reused between calls; the returned slice is freshly allocated.
func (s *Scene) ClosestLights(target *Node, max int) []*light.Light {
	if s == nil || target == nil || max <= 0 || len(s.lights) == 0 {
		return nil
	}
	defer profiling.Track("scene.ClosestLights")()

	pos := target.WorldPosition()
	s.lightScratch = s.lightScratch[:0]
	for _, l := range s.lights {
		s.lightScratch = append(s.lightScratch, lightDistance{
			light:    l,
			distance: l.GlobalPosition().Sub(pos).Len(),
		})
	}
	sort.SliceStable(s.lightScratch, func(i, j int) bool {
		return s.lightScratch[i].distance < s.lightScratch[j].distance
	})

	n := min(max, len(s.lightScratch))
	out := make([]*light.Light, n)
	for i := range out {
		out[i] = s.lightScratch[i].light
	}
	return out
}

// SelectClosestLights is ClosestLights for a possibly nil scene.
func SelectClosestLights(s *Scene, target *Node, max int) []*light.Light {
	if s == nil {
		return nil
	}
	return s.ClosestLights(target, max)
}
