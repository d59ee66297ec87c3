package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{})) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{}) {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) func() {
	return func() {}
}

// PointerPressed is published for every primary-button press, in screen
// cells. Components decide for themselves whether it landed inside them.
type PointerPressed struct {
	X, Y int
}

// PointerPressedType is the subscription key for PointerPressed
var PointerPressedType = TypeOf(PointerPressed{})
