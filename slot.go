package probemap

import "fmt"

const (
	slotEmpty   = 0x80
	slotDeleted = 0xFE
	slotFull    = 0x01
)

type slot struct {
	// One of slotEmpty, slotDeleted or slotFull.
	// A deleted slot keeps probe chains running through it intact.
	ctrl uint8

	key   string
	value string
}

func (s *slot) isFull() bool {
	return s.ctrl == slotFull
}

func (s *slot) isEmpty() bool {
	return s.ctrl == slotEmpty
}

func (s *slot) isDeleted() bool {
	return s.ctrl == slotDeleted
}

// Tombstones drop the payload, so the strings can be collected.
func (s *slot) markDeleted() {
	s.ctrl = slotDeleted
	s.key = ""
	s.value = ""
}

func (s *slot) fill(key, value string) {
	s.ctrl = slotFull
	s.key = key
	s.value = value
}

func makeSlots(capacity int) []slot {
	slots := make([]slot, capacity)
	for i := range slots {
		slots[i].ctrl = slotEmpty
	}

	return slots
}

// Oversized requests make the runtime panic on allocation, those panics are
// turned into ErrAllocationFailure so a rebuild never half-replaces the table.
func allocSlots(capacity int) (slots []slot, err error) {
	defer func() {
		if r := recover(); r != nil {
			slots = nil
			err = fmt.Errorf("%w: %d slots: %v", ErrAllocationFailure, capacity, r)
		}
	}()

	return makeSlots(capacity), nil
}
