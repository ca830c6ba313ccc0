package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffered_SendReceive(t *testing.T) {
	c := NewBuffered[int](2)
	defer c.Close()

	c.Send(1)
	c.Send(2)
	assert.Equal(t, 2, c.Len())

	assert.Equal(t, 1, <-c.Receive())
	assert.Equal(t, 2, <-c.Receive())
	assert.Equal(t, 0, c.Len())
}

func TestBuffered_TrySendDropsWhenFull(t *testing.T) {
	c := NewBuffered[string](1)
	defer c.Close()

	assert.True(t, c.TrySend("first"))
	assert.False(t, c.TrySend("second"))

	assert.Equal(t, "first", <-c.Receive())
}

func TestUnbuffered_TrySendDropsWithoutReceiver(t *testing.T) {
	c := NewUnbuffered[int]()
	defer c.Close()

	assert.False(t, c.TrySend(1))
	assert.Equal(t, 0, c.Len())
}

func TestUnbuffered_SendBlocksUntilReceived(t *testing.T) {
	c := NewUnbuffered[int]()
	defer c.Close()

	got := make(chan int, 1)
	go func() {
		got <- <-c.Receive()
	}()

	c.Send(42)
	assert.Equal(t, 42, <-got)
}
