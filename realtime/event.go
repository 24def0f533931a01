package realtime

// queued is a posted callback with its submission sequence number.
type queued struct {
	fn  func()
	seq uint64
}

// collect atomically retrieves and clears the pending batch. Entries are appended
// under the lock in sequence order, so the batch needs no sorting.
func (l *Loop) collect() []queued {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()

	batch := l.batch
	l.batch = make([]queued, 0, cap(l.batch))
	return batch
}
