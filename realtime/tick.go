package realtime

import (
	"fmt"
	"runtime/debug"
)

// processBatch runs one collected batch. A cancelled loop stops mid-batch.
func (l *Loop) processBatch() {
	for _, q := range l.collect() {
		if l.ctx.Err() != nil {
			return
		}
		l.exec(q)
	}
}

func (l *Loop) exec(q queued) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop callback panicked",
				"seq", q.seq,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	defer l.processed.Add(1)
	q.fn()
}
