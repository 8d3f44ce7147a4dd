package ecs

import (
	"slices"

	"go.uber.org/zap"
)

// DefaultCapacity is the slot count used when a world is built without an
// explicit capacity.
const DefaultCapacity = 2000

// DefaultHealth is the health an entity starts with unless overridden.
const DefaultHealth = 100

// Store holds every entity attribute in parallel slices indexed by Entity.
// Slots are handed out from the free list first and from the high-water mark
// otherwise; the capacity never grows.
type Store struct {
	kind     []Kind
	x, y     []float32
	dx, dy   []float32
	health   []int32
	cooldown []int32
	wear     []float32
	alive    []bool

	live   []Entity
	free   []Entity
	nextID Entity

	log *zap.Logger
}

// SpawnOption overrides one of the defaults applied by Create.
type SpawnOption func(*spawnParams)

type spawnParams struct {
	dx, dy float32
	health int32
}

// WithVelocity sets the per-tick displacement of a new entity.
func WithVelocity(dx, dy float32) SpawnOption {
	return func(p *spawnParams) {
		p.dx = dx
		p.dy = dy
	}
}

// WithHealth sets the starting health of a new entity.
func WithHealth(h int32) SpawnOption {
	return func(p *spawnParams) {
		p.health = h
	}
}

// NewStore allocates a store with room for capacity entities.
func NewStore(capacity int, log *zap.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		kind:     make([]Kind, capacity),
		x:        make([]float32, capacity),
		y:        make([]float32, capacity),
		dx:       make([]float32, capacity),
		dy:       make([]float32, capacity),
		health:   make([]int32, capacity),
		cooldown: make([]int32, capacity),
		wear:     make([]float32, capacity),
		alive:    make([]bool, capacity),
		live:     make([]Entity, 0, capacity),
		free:     make([]Entity, 0, capacity),
		log:      log,
	}
}

// Create allocates a slot, initializes every attribute and appends the id to
// the live sequence. It returns InvalidEntity when the store is full.
func (s *Store) Create(kind Kind, x, y float32, opts ...SpawnOption) Entity {
	if s == nil {
		return InvalidEntity
	}
	params := spawnParams{health: DefaultHealth}
	for _, opt := range opts {
		opt(&params)
	}

	var id Entity
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if int(s.nextID) == len(s.kind) {
			s.log.Debug("entity capacity exhausted", zap.Int("capacity", len(s.kind)))
			return InvalidEntity
		}
		id = s.nextID
		s.nextID++
	}

	s.kind[id] = kind
	s.x[id] = x
	s.y[id] = y
	s.dx[id] = params.dx
	s.dy[id] = params.dy
	s.health[id] = params.health
	s.cooldown[id] = 0
	s.wear[id] = 0
	s.alive[id] = true

	s.live = append(s.live, id)
	return id
}

// Reclaim removes id from the live sequence and pushes it on the free list.
// It reports false if id was not live.
func (s *Store) Reclaim(id Entity) bool {
	if !s.IsLive(id) {
		return false
	}
	for i := len(s.live) - 1; i >= 0; i-- {
		if s.live[i] == id {
			s.ReclaimAt(i)
			return true
		}
	}
	return false
}

// ReclaimAt reclaims the entity at position i of the live sequence. Entries
// before i keep their positions, so a reverse scan over Live can reclaim the
// entry it is visiting without skipping anything.
func (s *Store) ReclaimAt(i int) Entity {
	if s == nil || i < 0 || i >= len(s.live) {
		return InvalidEntity
	}
	id := s.live[i]
	s.live = slices.Delete(s.live, i, i+1)
	s.alive[id] = false
	s.free = append(s.free, id)
	return id
}

// SortFreeList orders the free list so the lowest ids are reused first.
func (s *Store) SortFreeList() {
	if s == nil {
		return
	}
	slices.SortFunc(s.free, func(a, b Entity) int { return int(b) - int(a) })
}

// Live returns the live sequence. The slice is owned by the store and is only
// valid until the next Create or Reclaim.
func (s *Store) Live() []Entity {
	if s == nil {
		return nil
	}
	return s.live
}

// FreeList returns a copy of the free list in pop order reversed.
func (s *Store) FreeList() []Entity {
	if s == nil {
		return nil
	}
	return slices.Clone(s.free)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.live)
}

func (s *Store) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.kind)
}

// HighWater is the number of slots ever handed out.
func (s *Store) HighWater() int {
	if s == nil {
		return 0
	}
	return int(s.nextID)
}

// IsLive reports whether id currently names a live entity.
func (s *Store) IsLive(id Entity) bool {
	return s != nil && id >= 0 && int(id) < len(s.alive) && s.alive[id]
}

// Kind returns the entity's kind.
func (s *Store) Kind(id Entity) Kind { return s.kind[id] }

// SetKind retypes the entity in place, as when a hit enemy becomes a gem.
func (s *Store) SetKind(id Entity, k Kind) { s.kind[id] = k }

// Health returns the entity's health. Zero or below marks it for reclaim.
func (s *Store) Health(id Entity) int32 { return s.health[id] }

func (s *Store) SetHealth(id Entity, h int32) { s.health[id] = h }

// Cooldown returns the ticks left before the entity may fire again.
func (s *Store) Cooldown(id Entity) int32 { return s.cooldown[id] }

func (s *Store) SetCooldown(id Entity, c int32) { s.cooldown[id] = c }

// Wear is the fractional decay carried between ticks until it amounts to a
// whole health point.
func (s *Store) Wear(id Entity) float32 { return s.wear[id] }

func (s *Store) SetWear(id Entity, w float32) { s.wear[id] = w }

// Damage subtracts n from the entity's health.
func (s *Store) Damage(id Entity, n int32) {
	s.health[id] -= n
}

func (s *Store) Position(id Entity) (float32, float32) {
	return s.x[id], s.y[id]
}

func (s *Store) SetPosition(id Entity, x, y float32) {
	s.x[id] = x
	s.y[id] = y
}

// Move displaces the entity by (dx, dy).
func (s *Store) Move(id Entity, dx, dy float32) {
	s.x[id] += dx
	s.y[id] += dy
}

func (s *Store) Velocity(id Entity) (float32, float32) {
	return s.dx[id], s.dy[id]
}

func (s *Store) SetVelocity(id Entity, dx, dy float32) {
	s.dx[id] = dx
	s.dy[id] = dy
}

// StoreSnapshot is a point-in-time copy of the store's bookkeeping, used for
// debug dumps.
type StoreSnapshot struct {
	Live []Entity
	Free []Entity
}

// Snapshot copies the live sequence and free list.
func (s *Store) Snapshot() StoreSnapshot {
	if s == nil {
		return StoreSnapshot{}
	}
	return StoreSnapshot{Live: slices.Clone(s.live), Free: slices.Clone(s.free)}
}
