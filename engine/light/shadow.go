package light

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the sunlight shadow box.
const DefaultShadowHalfExtent float32 = 8.0

// DefaultShadowNear is the default near plane of the sunlight's orthographic shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane of the sunlight's orthographic shadow projection.
const DefaultShadowFar float32 = 16.0
