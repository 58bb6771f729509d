package ecs

// Frame carries the per-frame context handed to system hooks. Hooks may
// queue population changes through the World; those are buffered and take
// effect at the next synchronization point, never mid-iteration.
type Frame struct {
	DeltaTime float64
	World     *World
}

func newFrame(dt float64, w *World) *Frame {
	return &Frame{
		DeltaTime: dt,
		World:     w,
	}
}
