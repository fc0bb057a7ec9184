package pins

import (
	"maps"
	"sync"

	"github.com/picosim/picosim/pubsub"
)

// NumPins is the number of pins on the simulated board.
const NumPins = 40

// Ground pins are reference points, conventionally never driven HIGH.
// Nothing enforces the convention; IsGround is informational.
var groundPins = map[int]bool{
	1:  true,
	2:  true,
	38: true,
	39: true,
}

func IsGround(pin int) bool {
	return groundPins[pin]
}

// Store is the canonical pin register file. It holds two register halves:
// the output register, written only by the guest script, and the input
// register, written only by the host side (button presses and the like).
// The two sides never write the same half, so a write never races a write;
// the mutex covers map access only.
//
// Every write notifies the embedded registry with no payload; observers pull
// current values through the readers or Snapshot.
type Store struct {
	pubsub.Registry
	mu  sync.Mutex
	out map[int]int
	in  map[int]int
}

func NewStore() *Store {
	return &Store{
		out: make(map[int]int),
		in:  make(map[int]int),
	}
}

// Write stores a guest-side value in the output register. Values clamp to
// the logical levels 0 and 1.
func (s *Store) Write(pin, value int) {
	s.mu.Lock()
	s.out[pin] = level(value)
	s.mu.Unlock()
	s.Notify()
}

// WriteInput stores a host-side value in the input register.
func (s *Store) WriteInput(pin, value int) {
	s.mu.Lock()
	s.in[pin] = level(value)
	s.mu.Unlock()
	s.Notify()
}

// ReadOutput returns the last guest-written value, 0 if never written.
func (s *Store) ReadOutput(pin int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out[pin]
}

// ReadInput returns the last host-written value, 0 if never written.
func (s *Store) ReadInput(pin int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in[pin]
}

// Snapshot copies the output register, for observers reacting to a
// notification.
func (s *Store) Snapshot() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.out)
}

// Reset clears both register halves.
func (s *Store) Reset() {
	s.mu.Lock()
	s.out = make(map[int]int)
	s.in = make(map[int]int)
	s.mu.Unlock()
	s.Notify()
}

func level(value int) int {
	if value != 0 {
		return 1
	}
	return 0
}
