package render

// StandardMaterial is a flat, lit surface description.
type StandardMaterial struct {
	BaseColor Color
	// Unlit skips lighting and draws BaseColor as is.
	Unlit bool
	// DoubleSided draws back faces too.
	DoubleSided bool
}

// NewStandardMaterial returns a lit single-sided material of color c.
func NewStandardMaterial(c Color) StandardMaterial {
	return StandardMaterial{BaseColor: c}
}

// Light is the scene's single directional light plus ambient term.
type Light struct {
	// Direction the light travels in; need not be normalized.
	Direction [3]float32
	Ambient   float32
	Intensity float32
}

// DefaultLight shines down and slightly forward.
func DefaultLight() Light {
	return Light{Direction: [3]float32{-0.3, -1, -0.5}, Ambient: 0.25, Intensity: 0.75}
}
