package ws

import (
	"log"
)

// RoomMessage is a payload addressed to every current member of a room.
type RoomMessage struct {
	Room    string
	Payload []byte
}

// Hub maintains room membership and fans messages out to the clients of a
// room. All membership mutation happens on the run loop, so join, publish
// and leave are safe from any number of connection goroutines.
type Hub struct {
	// Room name to the set of subscribed clients.
	rooms map[string]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Inbound messages addressed to a room.
	Broadcast chan RoomMessage
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan RoomMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			members := h.rooms[client.Room]
			if members == nil {
				members = make(map[*Client]bool)
				h.rooms[client.Room] = members
			}
			members[client] = true
			log.Printf("Client joined room %s (%d members)", client.Room, len(members))

		case client := <-h.Unregister:
			if members, ok := h.rooms[client.Room]; ok {
				if _, ok := members[client]; ok {
					delete(members, client)
					close(client.Send)
					if len(members) == 0 {
						delete(h.rooms, client.Room)
					}
					log.Printf("Client left room %s", client.Room)
				}
			}

		case message := <-h.Broadcast:
			for client := range h.rooms[message.Room] {
				select {
				case client.Send <- message.Payload:
				default:
					close(client.Send)
					delete(h.rooms[message.Room], client)
				}
			}
		}
	}
}
