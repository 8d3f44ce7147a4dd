package ecs

// NewTestWorld builds a world with default tuning, a fixed seed and no
// systems. Extra options are applied after the defaults.
func NewTestWorld(opts ...Option) *World {
	return NewWorld(DefaultTuning(), append([]Option{WithSeed(1)}, opts...)...)
}
