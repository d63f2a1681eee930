package scene

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/light"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// DemoPointLights is the number of scattered point lights in the demo scene.
const DemoPointLights = 50

// DemoLights returns the demo's sunlight followed by DemoPointLights point lights scattered
// just above the floor.
//
// Parameters:
//   - rng: the random source for the point lights
//
// Returns:
//   - []light.Light: the lights in upload order
func DemoLights(rng *rand.Rand) []light.Light {
	sun := light.NewSunlight(mgl32.Vec3{1, 1, -1}, mgl32.Vec3{},
		light.WithAttenuation(mgl32.Vec3{1, 1, 1}),
		light.WithCone(0, mgl32.Vec3{}, 1),
	)
	points := light.ScatterPointLights(rng, DemoPointLights, mgl32.Vec3{-5, 0, -5}, mgl32.Vec3{5, 0.05, 5})
	return append([]light.Light{sun}, points...)
}

// DemoModels returns two spinning boxes above a static floor slab.
//
// Returns:
//   - []model.Model: the models in draw order
func DemoModels() []model.Model {
	box := model.Box(mgl32.Vec3{1, 1, 1})
	return []model.Model{
		model.NewModel(
			model.WithName("tall box"),
			model.WithMesh(box),
			model.WithRotationY(math.Pi/4),
			model.WithScale(mgl32.Vec3{1, 3, 1}),
			model.WithPosition(mgl32.Vec3{1, 1.5, -1}),
			model.WithColor(mgl32.Vec4{1, 0.8, 0.1, 1}),
			model.WithAnimated(true),
		),
		model.NewModel(
			model.WithName("box"),
			model.WithMesh(box),
			model.WithRotationY(math.Pi/4),
			model.WithPosition(mgl32.Vec3{-1, 1.5, 1.5}),
			model.WithColor(mgl32.Vec4{0.85, 0.25, 0.75, 1}),
			model.WithAnimated(true),
		),
		model.NewModel(
			model.WithName("floor"),
			model.WithMesh(box),
			model.WithScale(mgl32.Vec3{10, 1, 10}),
			model.WithPosition(mgl32.Vec3{0, -0.5, 2}),
			model.WithColor(mgl32.Vec4{1, 1, 1, 1}),
		),
	}
}

// NewDemo creates the demo scene: the default camera, DemoLights and DemoModels.
//
// Parameters:
//   - rng: the random source for the point lights
//   - options: further options, applied after the demo content
//
// Returns:
//   - Scene: the demo scene
func NewDemo(rng *rand.Rand, options ...SceneBuilderOption) Scene {
	return NewScene(append([]SceneBuilderOption{
		WithLights(DemoLights(rng)...),
		WithModels(DemoModels()...),
	}, options...)...)
}
