package http

import (
	"github.com/peerlink/signaling-server/internal/core"
	"github.com/peerlink/signaling-server/internal/proto"
)

// outboundFromEvent converts a relay event into its wire record.
// Forwarded payloads are already stamped and pass through untouched.
func outboundFromEvent(ev *core.Event) any {
	switch ev.Kind {
	case core.EventWelcome:
		return proto.Welcome{
			Type:         proto.TypeWelcome,
			ClientID:     ev.ClientID,
			TotalClients: ev.TotalClients,
		}
	case core.EventPeerConnected:
		return proto.PeerConnected{
			Type:         proto.TypePeerConnected,
			ClientID:     ev.ClientID,
			PeerName:     ev.PeerName,
			TotalClients: ev.TotalClients,
			PeersInRoom:  ev.PeersInRoom,
		}
	case core.EventPeerDisconnected:
		return proto.PeerDisconnected{
			Type:         proto.TypePeerDisconnected,
			ClientID:     ev.ClientID,
			TotalClients: ev.TotalClients,
			PeersInRoom:  ev.PeersInRoom,
		}
	case core.EventPeerList:
		return proto.PeerList{
			Type:  proto.TypePeerList,
			Peers: ev.Peers,
		}
	case core.EventRoomRedirect:
		return proto.RoomRedirect{
			Type:         proto.TypeRoomRedirect,
			Message:      ev.Reason,
			OriginalRoom: ev.RequestedRoom,
			AssignedRoom: ev.AssignedRoom,
		}
	case core.EventForward:
		return ev.Payload
	default:
		return nil
	}
}

// forwardKind maps a wire type tag onto the relay's closed message set.
func forwardKind(t string) (core.MessageKind, bool) {
	switch t {
	case proto.TypeOffer:
		return core.MsgOffer, true
	case proto.TypeAnswer:
		return core.MsgAnswer, true
	case proto.TypeICECandidate:
		return core.MsgICECandidate, true
	case proto.TypeChat:
		return core.MsgChat, true
	case proto.TypeMuteState:
		return core.MsgMuteState, true
	case proto.TypeScreenShareStopped:
		return core.MsgScreenShareStopped, true
	default:
		return 0, false
	}
}
