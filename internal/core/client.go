package core

// Client is one websocket connection as seen by the relay. ID and Addr are
// fixed at connect time; name, room and registered are guarded by the
// owning Relay's mutex.
type Client struct {
	ID   int64
	Addr string

	// Events carries outbound events in the order they were routed.
	// Drained by exactly one transport write loop.
	Events chan *Event

	name       string
	room       string
	registered bool
}

// queue delivers ev without blocking. Reports false when the client's
// buffer is full and the event was dropped.
func (c *Client) queue(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
