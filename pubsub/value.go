package pubsub

import "sync"

// Value is a mutable value with subscriber notification. Observers receive
// no payload; they call Get when notified.
type Value[T any] struct {
	Registry
	mu sync.Mutex
	v  T
}

func NewValue[T any](v T) *Value[T] {
	ret := new(Value[T])
	ret.v = v
	return ret
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.v
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.v = value
	v.mu.Unlock()
	v.Notify()
}

// Update applies fn to the current value under the lock, then notifies.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.v = fn(v.v)
	v.mu.Unlock()
	v.Notify()
}
