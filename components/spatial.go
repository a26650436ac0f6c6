package components

// Position represents an entity's world position. The origin is the centre of the world.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's steering direction.
// Magnitude is a fraction of the unit's top speed (0..1); Movement scales it.
type Velocity struct {
	X, Y float32
}

// Movement holds a unit's top speed in world units per second.
type Movement struct {
	Speed float32 `inspect:"label,fmt:%.0f"`
}
