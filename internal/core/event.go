package core

// EventKind is a notification the relay emits to a client's write loop.
type EventKind int

const (
	// EventWelcome delivers the connection's assigned identifier.
	EventWelcome EventKind = iota
	// EventRoomRedirect tells a registering client it was moved to an
	// overflow room. Unicast only, sent before any peer-connected.
	EventRoomRedirect
	// EventPeerConnected announces a newly registered room member.
	EventPeerConnected
	// EventPeerDisconnected announces a departed room member.
	EventPeerDisconnected
	// EventPeerList answers a get-peers request.
	EventPeerList
	// EventForward carries a relayed signaling payload verbatim, with
	// sender identity already stamped.
	EventForward
)

// Event describes what happened. Which fields are set depends on Kind.
type Event struct {
	Kind EventKind

	// ClientID is the subject of welcome and lifecycle events.
	ClientID int64
	PeerName string

	TotalClients int
	PeersInRoom  int

	// Room redirect fields.
	Reason        string
	RequestedRoom string
	AssignedRoom  string

	// Peers holds the ids answering a get-peers request.
	Peers []int64

	// Payload is the stamped record for EventForward. Read-only once
	// routed; it may be shared by several recipients.
	Payload map[string]any
}
