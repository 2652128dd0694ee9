package engine

import (
	"golang-autoprofit/internal/dto"
	"golang-autoprofit/pkg/logger"
)

type subscriber struct {
	id int
	fn func(dto.ProfitStats)
}

// Subscribe registers an observer for statistics snapshots. Delivery is
// synchronous, in registration order, on every statistics-affecting
// mutation. The returned id cancels the subscription via Unsubscribe.
func (e *Engine) Subscribe(fn func(dto.ProfitStats)) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextSubID++
	e.subscribers = append(e.subscribers, subscriber{id: e.nextSubID, fn: fn})
	return e.nextSubID
}

func (e *Engine) Unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sub := range e.subscribers {
		if sub.id == id {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}

// notifyLocked delivers the current snapshot to every subscriber. A
// panicking observer is isolated and logged; it never prevents delivery to
// the rest or blocks the mutation that triggered it. Caller must hold e.mu.
func (e *Engine) notifyLocked() {
	snapshot := e.stats
	for _, sub := range e.subscribers {
		e.deliver(sub, snapshot)
	}
}

func (e *Engine) deliver(sub subscriber, snapshot dto.ProfitStats) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Subscriber panicked during stats delivery",
				logger.IntField("subscriber_id", sub.id),
				logger.Field("panic", r),
			)
		}
	}()
	sub.fn(snapshot)
}
