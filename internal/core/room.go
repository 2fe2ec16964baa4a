package core

// room indexes the registered members of one room. All access happens
// under the owning Relay's mutex.
type room struct {
	name    string
	members map[int64]*Client
}

func newRoom(name string) *room {
	return &room{
		name:    name,
		members: make(map[int64]*Client),
	}
}

func (r *room) add(c *Client) {
	r.members[c.ID] = c
}

func (r *room) remove(c *Client) {
	delete(r.members, c.ID)
}

func (r *room) size() int {
	return len(r.members)
}

// broadcast queues ev for every member except excludeID and returns how
// many deliveries were dropped because a member's buffer was full.
func (r *room) broadcast(ev *Event, excludeID int64) int {
	dropped := 0
	for id, member := range r.members {
		if id == excludeID {
			continue
		}
		if !member.queue(ev) {
			dropped++
		}
	}
	return dropped
}
