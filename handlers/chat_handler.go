package handlers

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/store"
	"marketplace_backend/internal/translate"
	"marketplace_backend/internal/ws"
	"marketplace_backend/models"
	"marketplace_backend/utils"
)

type ChatHandler struct {
	Hub        *ws.Hub
	Chat       store.ChatStore
	Users      store.UserStore
	Products   store.ProductStore
	Translator translate.Translator
}

func NewChatHandler(hub *ws.Hub, chat store.ChatStore, users store.UserStore, products store.ProductStore, translator translate.Translator) *ChatHandler {
	return &ChatHandler{
		Hub:        hub,
		Chat:       chat,
		Users:      users,
		Products:   products,
		Translator: translator,
	}
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to
// WebSocket and resolves the optional token. A missing or invalid token
// makes the participant anonymous rather than rejecting the connection.
func (h *ChatHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	if token := c.Query("token"); token != "" {
		if claims, err := utils.ParseToken(token); err == nil {
			if userID := utils.ClaimUint(claims, "user_id"); userID != 0 {
				c.Locals("user_id", userID)
				if email, ok := claims["email"].(string); ok {
					c.Locals("email", email)
				}
			}
		}
	}
	return c.Next()
}

// Handler returns the websocket handler for GET /ws/chat/:roomName
func (h *ChatHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		room := c.Params("roomName")
		if room == "" {
			log.Println("Missing room name in WebSocket connection")
			c.Close()
			return
		}

		var userID *uint
		var email string
		if id, ok := c.Locals("user_id").(uint); ok && id != 0 {
			userID = &id
			email, _ = c.Locals("email").(string)
		}

		client := &ws.Client{
			Hub:        h.Hub,
			Conn:       c,
			Send:       make(chan []byte, 256),
			Room:       room,
			UserID:     userID,
			Email:      email,
			Store:      h.Chat,
			Translator: h.Translator,
		}

		// History goes to the joiner only, before any live traffic.
		client.Hub.Register <- client
		client.SendHistory()

		go client.WritePump()
		client.ReadPump()
	})
}

// CreateRoomRequest identifies the product and both participants
type CreateRoomRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	User1ID   uint `json:"user1_id" validate:"required"`
	User2ID   uint `json:"user2_id" validate:"required"`
}

// CreateRoom - POST /api/chats/room
// Rooms have no record of their own; this derives the deterministic room
// name and reports whether any messages exist in it yet.
func (h *ChatHandler) CreateRoom(c *fiber.Ctx) error {
	var req CreateRoomRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if _, err := h.Products.GetProduct(req.ProductID); err != nil {
		return respondError(c, err)
	}
	if _, err := h.Users.GetUserByID(req.User1ID); err != nil {
		return respondError(c, err)
	}
	if _, err := h.Users.GetUserByID(req.User2ID); err != nil {
		return respondError(c, err)
	}

	room := models.RoomName(req.ProductID, req.User1ID, req.User2ID)
	messages, err := h.Chat.RecentMessages(room, 1)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Room resolved", fiber.Map{
		"room_name":   room,
		"is_new_room": len(messages) == 0,
	})
}

// GetRooms - GET /api/chats/rooms/:userID
func (h *ChatHandler) GetRooms(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	rooms, err := h.Chat.RoomsForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Rooms fetched", rooms)
}

// GetMessages - GET /api/chats/messages/:roomName
// Full history, oldest first.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	room := c.Params("roomName")
	messages, err := h.Chat.AllMessages(room)
	if err != nil {
		return respondError(c, err)
	}

	type messageView struct {
		Message    string  `json:"message"`
		Translated *string `json:"translated_message"`
		Language   *string `json:"language"`
		Sender     string  `json:"sender"`
		Timestamp  string  `json:"timestamp"`
	}
	views := make([]messageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, messageView{
			Message:    msg.Message,
			Translated: msg.TranslatedMessage,
			Language:   msg.Language,
			Sender:     msg.SenderEmail(),
			Timestamp:  msg.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return respondData(c, fiber.StatusOK, "Messages fetched", views)
}

// CountRooms - GET /api/chats/count/:userID
func (h *ChatHandler) CountRooms(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.Chat.CountRoomsForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Room count fetched", fiber.Map{"count": count})
}
