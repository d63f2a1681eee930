package light

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Palette is the set of colors ScatterPointLights picks from.
var Palette = []mgl32.Vec3{
	{1, 0, 0},
	{1, 1, 0},
	{1, 1, 1},
	{0, 1, 0},
	{0, 1, 1},
	{0, 0, 1},
	{0, 1, 1},
	{1, 0, 1},
}

// ScatterAttenuation is the attenuation given to every scattered point light.
var ScatterAttenuation = mgl32.Vec3{2, 5, 9}

// ScatterPointLights creates count point lights at random positions inside the box [min, max).
// Positions are quantised to centimetres and colors are drawn from Palette.
//
// Parameters:
//   - rng: the random source; a fixed seed gives a reproducible scatter
//   - count: the number of lights to create
//   - min: the lower corner of the box
//   - max: the upper corner of the box
//
// Returns:
//   - []Light: the point lights
func ScatterPointLights(rng *rand.Rand, count int, min, max mgl32.Vec3) []Light {
	lights := make([]Light, 0, count)
	for range count {
		var pos mgl32.Vec3
		for axis := range 3 {
			pos[axis] = float32(centimetres(rng, min[axis], max[axis])) * 0.01
		}
		lights = append(lights, NewPointLight(pos, Palette[rng.IntN(len(Palette))], ScatterAttenuation))
	}
	return lights
}

// centimetres returns a random whole number of centimetres in [lo, hi).
func centimetres(rng *rand.Rand, lo, hi float32) int {
	l, h := int(lo*100), int(hi*100)
	if h <= l {
		return l
	}
	return l + rng.IntN(h-l)
}
