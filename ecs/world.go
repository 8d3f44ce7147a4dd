package ecs

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// DefaultTPS is the tick rate elapsed time is derived from.
const DefaultTPS = 60

// World is one simulation: the entity store, the player handle, score,
// clock, run state and the system schedule. Nothing in it is global, so
// several worlds can run side by side.
type World struct {
	store     *Store
	scheduler *Scheduler
	events    EventQueue

	tuning Tuning
	player Entity
	score  int
	tick   uint64
	tps    int
	state  RunState

	rng *rand.Rand
	log *zap.Logger
}

// Option configures a world at construction.
type Option func(*World)

// WithLogger sets the logger used by the world and its store.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithRand sets the random source used by systems.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// WithSeed seeds the world's random source.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTPS sets the tick rate used to convert ticks into elapsed seconds.
func WithTPS(tps int) Option {
	return func(w *World) {
		if tps > 0 {
			w.tps = tps
		}
	}
}

// NewWorld creates a world and places the player at the arena center.
func NewWorld(tuning Tuning, opts ...Option) *World {
	w := &World{
		tuning:    tuning,
		scheduler: NewScheduler(),
		tps:       DefaultTPS,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	w.store = NewStore(tuning.Capacity, w.log)
	cx, cy := tuning.Center()
	w.player = w.store.Create(KindPlayer, cx, cy)
	return w
}

// AddSystem appends a system to the tick order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs one tick. A halted world is left untouched; a running world
// advances its clock, runs every system and halts if the player died.
func (w *World) Update() {
	if w == nil || w.state == Halted {
		return
	}
	if w.store.Health(w.player) <= 0 {
		w.Halt()
		return
	}

	w.tick++
	w.scheduler.Update(w)

	if w.store.Health(w.player) <= 0 {
		w.Halt()
	}
	w.events.flush()
}

// Halt moves the world into its terminal state.
func (w *World) Halt() {
	if w == nil || w.state == Halted {
		return
	}
	w.state = Halted
	w.log.Info("game over",
		zap.Int("score", w.score),
		zap.Uint64("tick", w.tick),
		zap.Float64("elapsed", w.Elapsed()),
	)
}

func (w *World) State() RunState {
	return w.state
}

func (w *World) Running() bool {
	return w != nil && w.state == Running
}

func (w *World) Store() *Store {
	return w.store
}

// Player returns the player's slot.
func (w *World) Player() Entity {
	return w.player
}

// PlayerHealth is a shortcut for the player's current health.
func (w *World) PlayerHealth() int32 {
	return w.store.Health(w.player)
}

func (w *World) Score() int {
	return w.score
}

func (w *World) AddScore(n int) {
	w.score += n
}

// Tick is the number of ticks run so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// Elapsed is the simulated time in seconds since the game started.
func (w *World) Elapsed() float64 {
	return float64(w.tick) / float64(w.tps)
}

func (w *World) TPS() int {
	return w.tps
}

func (w *World) Tuning() Tuning {
	return w.tuning
}

// SetTuning swaps the gameplay constants. The store's capacity is fixed at
// creation and is not affected.
func (w *World) SetTuning(t Tuning) {
	t.Capacity = w.store.Cap()
	w.tuning = t
}

func (w *World) Rand() *rand.Rand {
	return w.rng
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit queues an event for the current tick.
func (w *World) Emit(kind EventKind, e, other Entity) {
	w.events.Push(Event{Kind: kind, Entity: e, Other: other})
}

func (w *World) Log() *zap.Logger {
	return w.log
}
