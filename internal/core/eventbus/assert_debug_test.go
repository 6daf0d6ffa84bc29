//go:build typedbus_debug

package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBus_StalePanicsInDebug 调试构建下投递给已回收订阅者直接 panic
func TestBus_StalePanicsInDebug(t *testing.T) {
	bus := BusFor[Ping](NewStorage(WithStaleLog(0, 0)))

	o := registerTransient(t, bus, func(Ping) {})
	waitCollected(t, o)

	assert.PanicsWithValue(t,
		"typedbus: observer *eventbus.subscriber was reclaimed without unregistering",
		func() { bus.Post(Ping{}) })
}
