package probemap

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// Base size used when none is given, also the default floor for shrinking.
	DefaultBaseSize = 53

	// Load factor percentages that trigger a rebuild.
	DefaultGrowThreshold   = 70
	DefaultShrinkThreshold = 10
)

type table struct {
	slots []slot

	capacity     int
	baseCapacity int
	size         int
	tombstones   int

	minBaseSize     int
	growThreshold   int
	shrinkThreshold int
	maxCapacity     int

	hashFunc HashFunc
	logger   *zap.Logger

	destroyed bool
}

type Option func(t *table)

// Override default hash function.
func WithHashFunc(f HashFunc) Option {
	return func(t *table) {
		t.hashFunc = f
	}
}

// Sets the logger rebuilds are reported to. Nothing is logged by default.
func WithLogger(l *zap.Logger) Option {
	return func(t *table) {
		t.logger = l
	}
}

// Sets the floor for the base size. Smaller requests are raised to it
// and shrinking never goes below it.
func WithMinBaseSize(size int) Option {
	return func(t *table) {
		t.minBaseSize = size
	}
}

// Sets the load factor percentages above which the table grows and below
// which it shrinks.
func WithThresholds(grow, shrink int) Option {
	return func(t *table) {
		t.growThreshold = grow
		t.shrinkThreshold = shrink
	}
}

// Limits the number of slots a table may allocate. Zero means no limit.
func WithMaxCapacity(capacity int) Option {
	return func(t *table) {
		t.maxCapacity = capacity
	}
}

func (t *table) init(baseSize int, opts ...Option) error {
	t.minBaseSize = DefaultBaseSize
	t.growThreshold = DefaultGrowThreshold
	t.shrinkThreshold = DefaultShrinkThreshold

	for _, opt := range opts {
		opt(t)
	}

	if t.hashFunc == nil {
		t.hashFunc = PolyHash
	}

	if t.logger == nil {
		t.logger = zap.NewNop()
	}

	cfg := t.config()
	cfg.BaseSize = baseSize
	if err := cfg.Validate(); err != nil {
		return err
	}

	baseSize = max(baseSize, t.minBaseSize)
	capacity, err := NextPrime(baseSize)
	if err != nil {
		return err
	}

	slots, err := allocSlots(capacity)
	if err != nil {
		return err
	}

	t.slots = slots
	t.capacity = capacity
	t.baseCapacity = baseSize
	t.size = 0
	t.tombstones = 0

	return nil
}

func (t *table) config() Config {
	return Config{
		MinBaseSize:     t.minBaseSize,
		GrowThreshold:   t.growThreshold,
		ShrinkThreshold: t.shrinkThreshold,
		MaxCapacity:     t.maxCapacity,
	}
}

// Number of occupied slots.
func (t *table) Len() int {
	return t.size
}

// Number of slots, always a prime.
func (t *table) Capacity() int {
	return t.capacity
}

// Logical size the capacity was derived from.
func (t *table) BaseCapacity() int {
	return t.baseCapacity
}

func (t *table) loadFactor() int {
	return t.size * 100 / t.capacity
}

func (t *table) get(key string) (string, bool) {
	if t.destroyed {
		return "", false
	}

	for p := makeProbeSeq(t.hashFunc, key, uint64(t.capacity)); !p.done(); p.next() {
		s := &t.slots[p.index]

		// Termination
		if s.isEmpty() {
			return "", false
		}

		if s.isFull() && s.key == key {
			return s.value, true
		}
	}

	return "", false
}

func (t *table) set(key, value string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	if t.loadFactor() > t.growThreshold {
		if err := t.resize(t.baseCapacity * 2); err != nil {
			return err
		}
	}

	return t.insert(key, value)
}

// insert places the entry without consulting the resize policy.
func (t *table) insert(key, value string) error {
	var target *slot

	for p := makeProbeSeq(t.hashFunc, key, uint64(t.capacity)); !p.done(); p.next() {
		s := &t.slots[p.index]

		// 1. Existing check
		if s.isFull() {
			if s.key == key {
				s.fill(key, value)
				return nil
			}

			continue
		}

		// 2. Cache first available slot
		if target == nil {
			target = s
		}

		// 3. Termination condition
		if s.isEmpty() {
			break
		}
	}

	if target == nil {
		return ErrTableFull
	}

	if target.isDeleted() {
		t.tombstones--
	}

	target.fill(key, value)
	t.size++

	return nil
}

func (t *table) delete(key string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	if t.loadFactor() < t.shrinkThreshold {
		// A failed shrink leaves the table as it was, the delete goes on there.
		if err := t.resize(t.baseCapacity / 2); err != nil {
			t.logger.Warn("table shrink skipped",
				zap.Int("capacity", t.capacity),
				zap.Int("size", t.size),
				zap.Error(err),
			)
		}
	}

	for p := makeProbeSeq(t.hashFunc, key, uint64(t.capacity)); !p.done(); p.next() {
		s := &t.slots[p.index]
		if s.isEmpty() {
			break
		}

		if s.isFull() && s.key == key {
			s.markDeleted()
			t.size--
			t.tombstones++

			return nil
		}
	}

	return ErrKeyNotFound
}

func (t *table) forEach(fn func(key, value string) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.isFull() && !fn(s.key, s.value) {
			return
		}
	}
}

// resize rebuilds the table for the given base size.
// Requests below the minimum base size are ignored.
func (t *table) resize(baseSize int) error {
	if baseSize < t.minBaseSize {
		return nil
	}

	return t.rebuild(baseSize)
}

// rebuild re-inserts every occupied entry into a fresh slot array and swaps
// it in only when all of them are placed. Tombstones are dropped on the way.
func (t *table) rebuild(baseSize int) error {
	capacity, err := NextPrime(baseSize)
	if err != nil {
		return err
	}

	if t.maxCapacity > 0 && capacity > t.maxCapacity {
		return t.refuseRebuild(capacity,
			fmt.Errorf("%w: capacity %d exceeds limit %d", ErrAllocationFailure, capacity, t.maxCapacity))
	}

	slots, err := allocSlots(capacity)
	if err != nil {
		return t.refuseRebuild(capacity, err)
	}

	next := table{
		slots:        slots,
		capacity:     capacity,
		baseCapacity: baseSize,
		hashFunc:     t.hashFunc,
	}

	for i := range t.slots {
		s := &t.slots[i]
		if !s.isFull() {
			continue
		}

		if err := next.insert(s.key, s.value); err != nil {
			return fmt.Errorf("rebuild to capacity %d: %w", capacity, err)
		}
	}

	t.logger.Debug("table rebuilt",
		zap.Int("old_capacity", t.capacity),
		zap.Int("new_capacity", next.capacity),
		zap.Int("size", next.size),
		zap.Int("dropped_tombstones", t.tombstones),
	)

	t.slots = next.slots
	t.capacity = next.capacity
	t.baseCapacity = next.baseCapacity
	t.size = next.size
	t.tombstones = 0

	return nil
}

func (t *table) refuseRebuild(capacity int, err error) error {
	t.logger.Warn("table rebuild refused",
		zap.Int("capacity", t.capacity),
		zap.Int("requested_capacity", capacity),
		zap.Error(err),
	)

	return err
}

// Rebuilds the table at its current size, dropping all tombstones.
func (t *table) Compact() error {
	if t.destroyed {
		return ErrDestroyed
	}

	return t.rebuild(t.baseCapacity)
}

// Empties the table, keeping its capacity.
func (t *table) Reset() {
	for i := range t.slots {
		t.slots[i] = slot{ctrl: slotEmpty}
	}

	t.size = 0
	t.tombstones = 0
}

// Releases all slot storage. The table can't be written to afterwards.
func (t *table) Destroy() {
	t.slots = nil
	t.capacity = 0
	t.baseCapacity = 0
	t.size = 0
	t.tombstones = 0
	t.destroyed = true
}

func (t *table) Stats() Stats {
	stats := Stats{
		Size:         t.size,
		Tombstones:   t.tombstones,
		Capacity:     t.capacity,
		BaseCapacity: t.baseCapacity,
	}

	if t.capacity > 0 {
		stats.LoadFactor = t.loadFactor()
		stats.TombstonesCapacityRatio = float32(t.tombstones) / float32(t.capacity)
	}

	if t.size > 0 {
		stats.TombstonesSizeRatio = float32(t.tombstones) / float32(t.size)
	}

	return stats
}
