package light

import "github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"

// Records converts lights to the records packed into the Lights buffer, preserving order.
//
// Parameters:
//   - lights: the active lights
//
// Returns:
//   - []shadertypes.Light: one record per light
func Records(lights []Light) []shadertypes.Light {
	out := make([]shadertypes.Light, len(lights))
	for i, l := range lights {
		out[i] = l.Record()
	}
	return out
}

// Marshal encodes lights for the BufferIndexLightCount and BufferIndexLights slots.
//
// Parameters:
//   - lights: the active lights
//
// Returns:
//   - count: the u32 light count buffer
//   - data: the contiguous Light records
func Marshal(lights []Light) (count, data []byte) {
	return shadertypes.MarshalLightCount(uint32(len(lights))), shadertypes.MarshalLights(Records(lights))
}

// FirstSunlight returns the first sunlight in lights, which drives the shadow pass.
//
// Parameters:
//   - lights: the lights to search
//
// Returns:
//   - Light: the first sunlight
//   - bool: false if lights holds no sunlight
func FirstSunlight(lights []Light) (Light, bool) {
	for _, l := range lights {
		if l.Type() == shadertypes.LightTypeSunlight {
			return l, true
		}
	}
	return nil, false
}
