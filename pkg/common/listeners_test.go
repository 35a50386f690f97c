package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenersNotifyInOrder(t *testing.T) {
	var l Listeners[int]
	got := []string{}
	l.Add(func(v int) { got = append(got, "a") })
	l.Add(func(v int) { got = append(got, "b") })

	l.Notify(1)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, l.Len())
}

func TestListenersUnsubscribe(t *testing.T) {
	var l Listeners[string]
	calls := 0
	unsub := l.Add(func(string) { calls++ })
	l.Notify("x")
	unsub()
	unsub()
	l.Notify("y")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, l.Len())
	// nil listeners are ignored
	l.Add(nil)()
	assert.Equal(t, 0, l.Len())
}

func TestListenersUnsubscribeDuringNotify(t *testing.T) {
	var l Listeners[int]
	calls := 0
	var unsub func()
	unsub = l.Add(func(int) {
		calls++
		unsub()
	})
	l.Notify(1)
	l.Notify(2)
	assert.Equal(t, 1, calls)
}

func TestListenersRemoveCompacts(t *testing.T) {
	var l Listeners[int]
	got := []int{}
	keep := l.Add(func(v int) { got = append(got, v) })
	for i := 0; i < 100; i++ {
		l.Add(func(int) {})()
	}
	assert.Equal(t, 1, l.Len())
	assert.Len(t, l.listeners, 1)

	l.Notify(7)
	keep()
	l.Notify(8)
	assert.Equal(t, []int{7}, got)
	assert.Empty(t, l.listeners)
}
