package notifier

import "sync"

// Queue is an unbounded multi-producer, single-consumer FIFO channel.
// Send never blocks the producer on consumer readiness and the queue never
// drops a value; collapsing redundant triggers is the coordinator's job,
// not the queue's. A pump goroutine shuttles values from the producer side
// to the consumer side through an internal buffer.
type Queue[T any] struct {
	in       chan T
	out      chan T
	drainReq chan chan int
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewQueue creates the queue and starts its pump goroutine.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		in:       make(chan T),
		out:      make(chan T),
		drainReq: make(chan chan int),
		done:     make(chan struct{}),
	}
	go q.pump()
	return q
}

func (q *Queue[T]) pump() {
	defer close(q.done)
	var buf []T
	for {
		// Only offer the head of the buffer when there is one; a nil
		// channel keeps the send case disabled.
		var out chan T
		var head T
		if len(buf) > 0 {
			out = q.out
			head = buf[0]
		}

		select {
		case v, ok := <-q.in:
			if !ok {
				// Flush remaining values so nothing queued is lost,
				// then signal the consumer we are done.
				for _, v := range buf {
					q.out <- v
				}
				close(q.out)
				return
			}
			buf = append(buf, v)
		case out <- head:
			buf = buf[1:]
		case resp := <-q.drainReq:
			resp <- len(buf)
			buf = nil
		}
	}
}

// Send enqueues a value. It returns false if the queue was already closed.
// The hand-off to the pump is immediate; Send never waits for the consumer.
func (q *Queue[T]) Send(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.in <- v
	return true
}

// Out returns the consumer side. Values arrive in send order; the channel
// is closed after Close once every queued value has been delivered.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Drain atomically discards everything currently queued and returns how
// many values were dropped. Values a producer is mid-way through sending
// are not waited for; Drain only clears what has already been accepted.
// Intended for the single consumer only.
func (q *Queue[T]) Drain() int {
	resp := make(chan int)
	select {
	case q.drainReq <- resp:
		return <-resp
	case <-q.done:
		return 0
	}
}

// Close stops the queue. Queued values are still delivered to the consumer.
// Send after Close is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.in)
}
