package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// eventBuffer bounds the per-client outbound queue. When it fills the
// event is dropped rather than stalling delivery to other clients.
const eventBuffer = 32

// DefaultRoom receives clients that register without a room id.
const DefaultRoom = "default"

// MessageKind is the closed set of relayed signaling message kinds.
// Unrecognized wire types never reach the relay; the transport drops them.
type MessageKind int

const (
	MsgOffer MessageKind = iota
	MsgAnswer
	MsgICECandidate
	MsgChat
	MsgMuteState
	MsgScreenShareStopped
)

// Relay owns every live connection and routes signaling messages between
// them. The id counter, connection table and room index are guarded by
// mu. Delivery happens on per-client buffered channels, so a slow reader
// never blocks routing for the rest; per-recipient FIFO holds because
// each recipient has a single channel drained by a single write loop.
//
// The relay keeps no durable state. A process restart drops every
// connection; clients detect the closure and reconnect on their own.
type Relay struct {
	log             *zerolog.Logger
	maxPeersPerRoom int

	mu      sync.Mutex
	nextID  int64
	clients map[int64]*Client
	rooms   map[string]*room
}

// NewRelay constructs a relay. maxPeersPerRoom <= 0 disables the room
// overflow policy.
func NewRelay(maxPeersPerRoom int, logger *zerolog.Logger) *Relay {
	return &Relay{
		log:             logger,
		maxPeersPerRoom: maxPeersPerRoom,
		clients:         make(map[int64]*Client),
		rooms:           make(map[string]*room),
	}
}

// Connect allocates the next identifier for a new connection, stores it
// in the table, and queues the welcome event on the connection's own
// channel. Identifiers start at 1 and are never reused in-process, so a
// stale targetId can never reach a newer, unrelated connection. The
// connection stays invisible to peers until it registers.
func (r *Relay) Connect(addr string) *Client {
	r.mu.Lock()
	r.nextID++
	c := &Client{
		ID:     r.nextID,
		Addr:   addr,
		Events: make(chan *Event, eventBuffer),
	}
	r.clients[c.ID] = c
	total := len(r.clients)
	c.queue(&Event{Kind: EventWelcome, ClientID: c.ID, TotalClients: total})
	r.mu.Unlock()

	r.log.Info().
		Int64("client_id", c.ID).
		Str("addr", addr).
		Int("total_clients", total).
		Msg("client connected")
	return c
}

// Register binds a display name and room to the connection and announces
// it to the other members of the resolved room. A full room redirects
// the client to an overflow room; the redirect is unicast and always
// precedes the peer-connected broadcast. A repeat register updates the
// display name only; the room binding holds for the life of the
// connection.
func (r *Relay) Register(c *Client, peerName, roomID string) {
	if roomID == "" {
		roomID = DefaultRoom
	}

	r.mu.Lock()
	if _, ok := r.clients[c.ID]; !ok {
		r.mu.Unlock()
		return
	}
	if c.registered {
		if peerName != "" {
			c.name = peerName
		}
		r.mu.Unlock()
		return
	}

	assigned, redirected := r.resolveRoom(roomID)
	c.name = peerName
	c.room = assigned
	c.registered = true

	rm := r.rooms[assigned]
	if rm == nil {
		rm = newRoom(assigned)
		r.rooms[assigned] = rm
	}
	rm.add(c)

	if redirected {
		c.queue(&Event{
			Kind: EventRoomRedirect,
			Reason: fmt.Sprintf("Room %q is full (max %d peers). You have been placed in overflow room %q.",
				roomID, r.maxPeersPerRoom, assigned),
			RequestedRoom: roomID,
			AssignedRoom:  assigned,
		})
	}

	dropped := rm.broadcast(&Event{
		Kind:         EventPeerConnected,
		ClientID:     c.ID,
		PeerName:     peerName,
		TotalClients: len(r.clients),
		PeersInRoom:  rm.size(),
	}, c.ID)
	peers := rm.size() - 1
	r.mu.Unlock()

	ev := r.log.Info().
		Int64("client_id", c.ID).
		Str("peer_name", peerName).
		Str("room", assigned).
		Int("peers_in_room", peers)
	if redirected {
		ev = ev.Str("requested_room", roomID)
	}
	ev.Msg("client registered")
	if dropped > 0 {
		r.log.Warn().Int("dropped", dropped).Str("room", assigned).Msg("slow consumers missed peer-connected")
	}
}

// Forward stamps the true sender identity onto payload and routes it: to
// targetID's connection when targetID is nonzero, otherwise to every
// other registered member of the sender's room. The returned error is
// the drop reason; drops are logged by the caller and never reported
// back to the sender.
func (r *Relay) Forward(c *Client, kind MessageKind, targetID int64, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !c.registered {
		return ErrNotRegistered
	}

	// Clients may refresh their display name on any message.
	if name, ok := payload["peerName"].(string); ok && name != "" {
		c.name = name
	}

	// senderId is always the relay's view of the sender, regardless of
	// what the payload claimed.
	payload["senderId"] = c.ID
	switch kind {
	case MsgOffer, MsgAnswer:
		if c.name != "" {
			payload["peerName"] = c.name
		}
	case MsgChat:
		if name, ok := payload["senderName"].(string); !ok || name == "" {
			payload["senderName"] = c.displayName()
		}
	}

	ev := &Event{Kind: EventForward, Payload: payload}

	if targetID != 0 {
		target, ok := r.clients[targetID]
		if !ok || !target.registered {
			return fmt.Errorf("%w: %d", ErrTargetNotFound, targetID)
		}
		if target.room != c.room {
			return fmt.Errorf("%w: %d", ErrTargetElsewhere, targetID)
		}
		if !target.queue(ev) {
			r.log.Warn().Int64("target_id", targetID).Msg("slow consumer, forward dropped")
		}
		return nil
	}

	rm := r.rooms[c.room]
	if rm == nil {
		return nil
	}
	if dropped := rm.broadcast(ev, c.ID); dropped > 0 {
		r.log.Warn().Int("dropped", dropped).Str("room", c.room).Msg("slow consumers missed broadcast")
	}
	return nil
}

// PeerList queues a peer-list event naming the other members of the
// sender's room. Ignored for unregistered connections.
func (r *Relay) PeerList(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !c.registered {
		return
	}

	rm := r.rooms[c.room]
	peers := make([]int64, 0, rm.size())
	for id := range rm.members {
		if id != c.ID {
			peers = append(peers, id)
		}
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
	c.queue(&Event{Kind: EventPeerList, Peers: peers})
}

// Disconnect removes the connection from the table and, if it had
// registered, tells the rest of its room. Safe to call more than once;
// repeat calls are no-ops.
func (r *Relay) Disconnect(c *Client) {
	r.mu.Lock()
	if _, ok := r.clients[c.ID]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.clients, c.ID)
	total := len(r.clients)

	if c.registered {
		if rm := r.rooms[c.room]; rm != nil {
			rm.remove(c)
			if rm.size() == 0 {
				delete(r.rooms, c.room)
			} else if dropped := rm.broadcast(&Event{
				Kind:         EventPeerDisconnected,
				ClientID:     c.ID,
				TotalClients: total,
				PeersInRoom:  rm.size(),
			}, c.ID); dropped > 0 {
				r.log.Warn().Int("dropped", dropped).Str("room", c.room).Msg("slow consumers missed peer-disconnected")
			}
		}
	}
	r.mu.Unlock()

	r.log.Info().
		Int64("client_id", c.ID).
		Int("total_clients", total).
		Msg("client disconnected")
}

// resolveRoom applies the overflow policy: a full room spills into
// "<room>_1", "<room>_2", ... at the first suffix with capacity.
// Called with mu held.
func (r *Relay) resolveRoom(requested string) (assigned string, redirected bool) {
	if r.maxPeersPerRoom <= 0 || r.roomSize(requested) < r.maxPeersPerRoom {
		return requested, false
	}
	for i := 1; ; i++ {
		overflow := fmt.Sprintf("%s_%d", requested, i)
		if r.roomSize(overflow) < r.maxPeersPerRoom {
			return overflow, true
		}
	}
}

func (r *Relay) roomSize(name string) int {
	if rm := r.rooms[name]; rm != nil {
		return rm.size()
	}
	return 0
}

func (c *Client) displayName() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("Client-%d", c.ID)
}
