package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueuePushPopFIFO(t *testing.T) {
	q := NewQueue(2)
	q.Push(1)
	q.Push(2)

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestQueuePopBlocksUntilClosedAndDrained(t *testing.T) {
	q := NewQueue(2)
	q.Push("a")
	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)

	_, ok = q.Pop()
	require.False(t, ok)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewQueue(2)
	q.Close()
	q.Close() // must not panic or block
	_, ok := q.Pop()
	require.False(t, ok)
}

func TestQueuePushBlocksWhenFull(t *testing.T) {
	q := NewQueue(1)
	q.Push("a")

	pushed := make(chan struct{})
	go func() {
		q.Push("b")
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("push should have blocked while queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	_, ok := q.Pop()
	require.True(t, ok)

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("push never unblocked after a pop freed capacity")
	}
}

func TestQueueConcurrentProducerConsumer(t *testing.T) {
	q := NewQueue(4)
	const n = 200

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Push(i)
		}
		q.Close()
	}()

	seen := 0
	for {
		_, ok := q.Pop()
		if !ok {
			break
		}
		seen++
	}
	wg.Wait()
	require.Equal(t, n, seen)
}
