package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"

	"marketplace_backend/internal/store"
	"marketplace_backend/internal/translate"
	"marketplace_backend/models"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Number of messages replayed to a participant joining a room.
	historyLimit = 20
)

// Client is a middleman between one websocket connection and the hub. Each
// connection subscribes to exactly one room for its lifetime.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// Room this connection is subscribed to.
	Room string

	// Sender identity; nil UserID means an anonymous participant.
	UserID *uint
	Email  string

	Store      store.ChatStore
	Translator translate.Translator
}

// WSMessage is the client-to-server event envelope.
type WSMessage struct {
	Type    string `json:"type"` // 'chat' or 'translate'
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

// ChatEvent is the server-to-client payload for chat messages, both live
// broadcasts and history replay.
type ChatEvent struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Original   string  `json:"original"`
	Translated *string `json:"translated,omitempty"`
	Language   *string `json:"language"`
	Sender     string  `json:"sender"`
	Timestamp  string  `json:"timestamp"`
}

// TranslationEvent is sent only to the participant that requested the
// translation. On failure it carries the sentinel text and language; the
// connection itself never fails on a translation error.
type TranslationEvent struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Original string `json:"original"`
	Language string `json:"language"`
	Target   string `json:"target"`
	Sender   string `json:"sender"`
}

func (c *Client) sender() string {
	if c.UserID == nil {
		return models.AnonymousSender
	}
	return c.Email
}

// SendHistory replays the most recent messages of the room, oldest first,
// to this client only.
func (c *Client) SendHistory() {
	messages, err := c.Store.RecentMessages(c.Room, historyLimit)
	if err != nil {
		log.Printf("Error retrieving past messages for room %s: %v", c.Room, err)
		return
	}
	log.Printf("Retrieved %d past messages for room %s", len(messages), c.Room)

	for _, msg := range messages {
		payload, err := json.Marshal(ChatEvent{
			Type:       "chat_message",
			Message:    msg.Message,
			Original:   msg.Message,
			Translated: msg.TranslatedMessage,
			Language:   msg.Language,
			Sender:     msg.SenderEmail(),
			Timestamp:  msg.Timestamp.Format(time.RFC3339),
		})
		if err != nil {
			continue
		}
		c.Send <- payload
	}
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
		c.HandleMessage(message)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) HandleMessage(message []byte) {
	var wsMsg WSMessage
	if err := json.Unmarshal(message, &wsMsg); err != nil {
		log.Printf("Error unmarshalling message: %v", err)
		return
	}

	switch wsMsg.Type {
	case "chat":
		c.processChatMessage(&wsMsg)
	case "translate":
		c.processTranslationRequest(&wsMsg)
	}
}

// processChatMessage persists the message first, then fans it out to every
// current member of the room, including the sender. There is no optimistic
// local echo; the sender sees its own message through the same path.
func (c *Client) processChatMessage(wsMsg *WSMessage) {
	saved, err := c.Store.SaveMessage(c.Room, c.UserID, wsMsg.Message)
	if err != nil {
		log.Printf("Error saving message for room %s: %v", c.Room, err)
		return
	}

	payload, err := json.Marshal(ChatEvent{
		Type:      "chat_message",
		Message:   saved.Message,
		Original:  saved.Message,
		Language:  saved.Language,
		Sender:    saved.SenderEmail(),
		Timestamp: saved.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Error marshalling chat event: %v", err)
		return
	}

	c.Hub.Broadcast <- RoomMessage{Room: c.Room, Payload: payload}
}

// processTranslationRequest calls the translation collaborator and replies
// to the requesting participant only. Nothing is persisted.
func (c *Client) processTranslationRequest(wsMsg *WSMessage) {
	target := wsMsg.Target
	if target == "" {
		target = "EN-US"
	}

	translated, sourceLang, err := c.Translator.Translate(context.Background(), wsMsg.Message, target)
	if err != nil {
		log.Printf("Translation failed for room %s: %v", c.Room, err)
		translated = translate.FailedSentinel
		sourceLang = translate.UnknownLanguage
	}

	payload, err := json.Marshal(TranslationEvent{
		Type:     "translation_result",
		Message:  translated,
		Original: wsMsg.Message,
		Language: sourceLang,
		Target:   target,
		Sender:   c.sender(),
	})
	if err != nil {
		log.Printf("Error marshalling translation event: %v", err)
		return
	}

	c.Send <- payload
}
