package event

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu        sync.RWMutex
	listeners = make([]*Listener, 0)
)

type Listener struct {
	eventType Type
	callback  func(msg interface{})
}

// AddEventListener registers a callback for an event type. Callbacks run
// synchronously on the emitting goroutine so listeners observe events in
// exactly the order the state changes occurred.
func AddEventListener(eventType Type, callback func(msg interface{})) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	mu.Lock()
	defer mu.Unlock()

	listeners = append(listeners, &Listener{eventType: eventType, callback: callback})
}

func EmitEvent(eventType Type, msg interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	if len(listeners) == 0 {
		zap.L().Debug("No event listeners available")
	}

	for _, listener := range listeners {
		if listener.eventType == eventType {
			zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: Emitting event")
			listener.callback(msg)
		}
	}
}
