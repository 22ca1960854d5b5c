package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_ReplacesCurrent(t *testing.T) {
	n := New(time.Minute)

	n.Success("added to cart")
	n.Error("backend unreachable")

	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, KindError, cur.Kind)
	assert.Equal(t, "backend unreachable", cur.Message)
}

func TestExpiry_ClearsSlot(t *testing.T) {
	n := New(20 * time.Millisecond)

	n.Success("done")
	require.NotNil(t, n.Current())

	assert.Eventually(t, func() bool {
		return n.Current() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestExpiry_DoesNotClearReplacement(t *testing.T) {
	n := New(30 * time.Millisecond)

	n.Success("first")
	time.Sleep(15 * time.Millisecond)
	n.Success("second")

	// The first message's timer fires here; the second must survive it.
	time.Sleep(20 * time.Millisecond)
	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "second", cur.Message)
}

func TestSubscribe_SeesEveryMessage(t *testing.T) {
	n := New(time.Minute)

	var seen []string
	n.Subscribe(func(msg *Notification) {
		seen = append(seen, msg.Message)
	})

	n.Success("one")
	n.Error("two")

	assert.Equal(t, []string{"one", "two"}, seen)
}
