package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnonymousSender is the display identity for messages with no sender.
const AnonymousSender = "anonymous"

// ChatMessage belongs to a room. A room has no standalone record; it is an
// emergent grouping over messages sharing a room name.
type ChatMessage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoomName string `gorm:"size:255;index;not null" json:"room_name"`

	// Nullable: a nil sender is a system/anonymous message.
	UserID *uint `json:"user_id"`

	Message           string  `gorm:"type:text;not null" json:"message"`
	TranslatedMessage *string `gorm:"type:text" json:"translated_message"`
	Language          *string `gorm:"size:10" json:"language"`

	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relation
	User *UserProfile `gorm:"foreignKey:UserID" json:"-"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// SenderEmail returns the sender's email or AnonymousSender for messages
// without a user.
func (m *ChatMessage) SenderEmail() string {
	if m.User == nil {
		return AnonymousSender
	}
	return m.User.Email
}

// RoomName derives the deterministic grouping key for a buyer/seller/product
// triple. It is commutative in the two participant ids, so both users always
// address the same room for a given product.
func RoomName(productID, userA, userB uint) string {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("product_%d_%d_%d", productID, lo, hi)
}

// ParseRoomName splits a room name back into its product and participant
// ids. Returns ok=false for names that do not follow the derivation scheme.
func ParseRoomName(room string) (productID, userA, userB uint, ok bool) {
	parts := strings.Split(room, "_")
	if len(parts) != 4 || parts[0] != "product" {
		return 0, 0, 0, false
	}
	ids := make([]uint, 0, 3)
	for _, p := range parts[1:] {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		ids = append(ids, uint(n))
	}
	return ids[0], ids[1], ids[2], true
}
