package proto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Message type tags. The wire format is a flat JSON object keyed by
// "type"; forwarded kinds travel verbatim apart from the fields the
// relay stamps.
const (
	// Client → server.
	TypeRegister = "register"
	TypeGetPeers = "get-peers"

	// Relayed between peers.
	TypeOffer              = "offer"
	TypeAnswer             = "answer"
	TypeICECandidate       = "ice-candidate"
	TypeChat               = "chat"
	TypeMuteState          = "mute-state"
	TypeScreenShareStopped = "screen-share-stopped"

	// Server → client.
	TypeWelcome          = "welcome"
	TypePeerConnected    = "peer-connected"
	TypePeerDisconnected = "peer-disconnected"
	TypePeerList         = "peer-list"
	TypeRoomRedirect     = "room-redirect"
)

// ID decodes a client identifier sent as a JSON number or a numeric
// string; browser clients produce both. Zero means absent.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

// Envelope is the routing view of an inbound record. Only the fields the
// relay routes on are decoded; the rest of the object stays in the raw
// payload map.
type Envelope struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
	Name     string `json:"name"` // accepted alias for peerName on register
	RoomID   string `json:"roomId"`
	TargetID ID     `json:"targetId"`
}

// DecodeInbound parses one inbound record into its routing envelope and
// the raw object used for verbatim forwarding. A single error covers
// both; callers discard the message and keep the connection open.
func DecodeInbound(raw []byte) (Envelope, map[string]any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Envelope{}, nil, err
	}
	return env, payload, nil
}

// Welcome hands a new connection its relay-assigned identifier.
type Welcome struct {
	Type         string `json:"type"`
	ClientID     int64  `json:"clientId"`
	TotalClients int    `json:"totalClients"`
}

// PeerConnected announces a newly registered room member to the rest of
// its room.
type PeerConnected struct {
	Type         string `json:"type"`
	ClientID     int64  `json:"clientId"`
	PeerName     string `json:"peerName"`
	TotalClients int    `json:"totalClients"`
	PeersInRoom  int    `json:"peersInRoom"`
}

// PeerDisconnected announces a departed room member.
type PeerDisconnected struct {
	Type         string `json:"type"`
	ClientID     int64  `json:"clientId"`
	TotalClients int    `json:"totalClients"`
	PeersInRoom  int    `json:"peersInRoom"`
}

// PeerList answers a get-peers request with the ids of the other room
// members.
type PeerList struct {
	Type  string  `json:"type"`
	Peers []int64 `json:"peers"`
}

// RoomRedirect tells a registering client it was placed in an overflow
// room. Unicast only.
type RoomRedirect struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	OriginalRoom string `json:"originalRoom"`
	AssignedRoom string `json:"assignedRoom"`
}
