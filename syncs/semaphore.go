package syncs

// Semaphore is a counting semaphore with capacity fixed at construction.
type Semaphore chan bool

func NewSemaphore(n int) Semaphore {
	return make(Semaphore, n)
}

func (s Semaphore) Acquire() {
	s <- true
}

// TryAcquire acquires without blocking, reporting whether it succeeded.
func (s Semaphore) TryAcquire() bool {
	select {
	case s <- true:
		return true
	default:
		return false
	}
}

func (s Semaphore) Release() {
	<-s
}
