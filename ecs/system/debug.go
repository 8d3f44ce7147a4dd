package system

import (
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/input"
	"go.uber.org/zap"
)

// DebugSystem logs the store's live ids and free list every Interval ticks,
// and whenever the dump key goes down.
type DebugSystem struct {
	Interval uint64
	// Input, when set, supplies the state polled this tick.
	Input func() input.State
}

func NewDebugSystem(interval uint64, in func() input.State) *DebugSystem {
	return &DebugSystem{Interval: interval, Input: in}
}

func (d *DebugSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	due := d.Interval > 0 && w.Tick()%d.Interval == 0
	if !due && d.Input != nil {
		due = d.Input().Key(input.KeyDebugDump).Pressed()
	}
	if due {
		Dump(w)
	}
}

// Dump logs the store bookkeeping at debug level.
func Dump(w *ecs.World) {
	snap := w.Store().Snapshot()
	w.Log().Debug("store",
		zap.Uint64("tick", w.Tick()),
		zap.Int("live_count", len(snap.Live)),
		zap.Int("free_count", len(snap.Free)),
		zap.Any("entities", snap.Live),
		zap.Any("free_list", snap.Free),
	)
}
