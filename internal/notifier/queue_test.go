package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	for i := 0; i < 100; i++ {
		require.True(t, q.Send(i))
	}

	for i := 0; i < 100; i++ {
		select {
		case v := <-q.Out():
			require.Equal(t, i, v, "values must arrive in send order")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for queued value")
		}
	}
}

func TestQueueSendDoesNotBlockWithoutConsumer(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	done := make(chan struct{})
	go func() {
		// Nobody is reading Out(); all sends must still return.
		for i := 0; i < 1000; i++ {
			q.Send(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked without a consumer")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Send(i)
			}
		}()
	}
	wg.Wait()

	// Every sent value is delivered; none dropped.
	received := 0
	for received < producers*perProducer {
		select {
		case <-q.Out():
			received++
		case <-time.After(time.Second):
			t.Fatalf("only received %d of %d values", received, producers*perProducer)
		}
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	q.Send(1)
	q.Send(2)
	q.Send(3)

	require.Equal(t, 3, q.Drain())
	require.Equal(t, 0, q.Drain(), "second drain has nothing left to discard")

	// The queue keeps working after a drain.
	q.Send(4)
	select {
	case v := <-q.Out():
		require.Equal(t, 4, v)
	case <-time.After(time.Second):
		t.Fatal("value sent after drain was not delivered")
	}
}

func TestQueueDrainAfterClose(t *testing.T) {
	q := NewQueue[int]()
	q.Close()
	for range q.Out() {
	}
	require.Equal(t, 0, q.Drain(), "drain on a finished queue must not block")
}

func TestQueueCloseFlushesPending(t *testing.T) {
	q := NewQueue[string]()
	q.Send("a")
	q.Send("b")
	q.Close()

	require.False(t, q.Send("c"), "Send after Close must be a no-op")

	var got []string
	for v := range q.Out() {
		got = append(got, v)
	}
	require.Equal(t, []string{"a", "b"}, got)
}
