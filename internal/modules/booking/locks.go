package booking

import "sync"

// barberLocks serializes the availability check and the insert for one
// barber within this process. The exclusion constraint in Postgres
// remains the backstop for anything the lock cannot see, including a
// second API instance.
type barberLocks struct {
	mu sync.Map
}

func (l *barberLocks) lock(barberID string) *sync.Mutex {
	v, _ := l.mu.LoadOrStore(barberID, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m
}
