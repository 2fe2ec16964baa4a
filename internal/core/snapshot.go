package core

// RoomPeer describes one registered member for introspection.
type RoomPeer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Addr string `json:"ip"`
}

// RoomInfo describes one room for introspection.
type RoomInfo struct {
	Peers    []RoomPeer `json:"peers"`
	Count    int        `json:"count"`
	MaxPeers int        `json:"max_peers"`
}

// Snapshot is a point-in-time view of the relay's tables.
type Snapshot struct {
	TotalClients int                 `json:"total_clients"`
	TotalRooms   int                 `json:"total_rooms"`
	Rooms        map[string]RoomInfo `json:"rooms"`
}

// Snapshot copies the current connection and room state for the
// introspection API. The copy is detached; callers may hold it as long
// as they like.
func (r *Relay) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		TotalClients: len(r.clients),
		TotalRooms:   len(r.rooms),
		Rooms:        make(map[string]RoomInfo, len(r.rooms)),
	}
	for name, rm := range r.rooms {
		info := RoomInfo{
			Peers:    make([]RoomPeer, 0, rm.size()),
			Count:    rm.size(),
			MaxPeers: r.maxPeersPerRoom,
		}
		for _, member := range rm.members {
			info.Peers = append(info.Peers, RoomPeer{
				ID:   member.ID,
				Name: member.displayName(),
				Addr: member.Addr,
			})
		}
		snap.Rooms[name] = info
	}
	return snap
}
