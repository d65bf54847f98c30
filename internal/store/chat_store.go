package store

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

type chatStore struct {
	db *gorm.DB
}

// SaveMessage persists a chat line and returns it with the sender loaded,
// so callers can broadcast the stored row rather than the raw input.
func (s *chatStore) SaveMessage(roomName string, userID *uint, text string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		RoomName: roomName,
		UserID:   userID,
		Message:  text,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	var saved models.ChatMessage
	if err := s.db.Preload("User").First(&saved, msg.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &saved, nil
}

// RecentMessages returns the most recent limit messages of a room in
// chronological order.
func (s *chatStore) RecentMessages(roomName string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Preload("User").
		Where("room_name = ?", roomName).
		Order("timestamp desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Query is newest-first for the LIMIT; flip back to oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *chatStore) AllMessages(roomName string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Preload("User").
		Where("room_name = ?", roomName).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return messages, nil
}

func (s *chatStore) roomNamesForUser(userID uint) ([]string, error) {
	var names []string
	err := s.db.Model(&models.ChatMessage{}).
		Distinct("room_name").
		Where("room_name LIKE ? OR room_name LIKE ?",
			fmt.Sprintf("%%_%d_%%", userID), fmt.Sprintf("%%_%d", userID)).
		Pluck("room_name", &names).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// The LIKE prefilter over-matches (underscore is a wildcard, and user 1
	// collides with product 1); verify against the parsed room name.
	filtered := names[:0]
	for _, name := range names {
		_, a, b, ok := models.ParseRoomName(name)
		if ok && (a == userID || b == userID) {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

// RoomsForUser lists every room the user participates in with the latest
// message and the counterparty's identity, newest conversation first.
func (s *chatStore) RoomsForUser(userID uint) ([]RoomSummary, error) {
	if err := s.db.First(&models.UserProfile{}, userID).Error; err != nil {
		return nil, asNotFound(err, "user with ID %d", userID)
	}

	names, err := s.roomNamesForUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(names))
	for _, name := range names {
		productID, a, b, _ := models.ParseRoomName(name)

		var latest models.ChatMessage
		if err := s.db.Where("room_name = ?", name).
			Order("timestamp desc").First(&latest).Error; err != nil {
			continue
		}

		otherID := a
		if a == userID {
			otherID = b
		}
		var other models.UserProfile
		if err := s.db.First(&other, otherID).Error; err != nil {
			continue
		}

		productName := "Product not found"
		var product models.Product
		if err := s.db.First(&product, productID).Error; err == nil {
			productName = product.Name
		}

		// Messages the counterparty sent after this user's own last word.
		var lastOwn models.ChatMessage
		ownErr := s.db.Where("room_name = ? AND user_id = ?", name, userID).
			Order("timestamp desc").First(&lastOwn).Error
		unreadQuery := s.db.Model(&models.ChatMessage{}).
			Where("room_name = ? AND user_id = ?", name, otherID)
		if ownErr == nil {
			unreadQuery = unreadQuery.Where("timestamp > ?", lastOwn.Timestamp)
		}
		var unread int64
		unreadQuery.Count(&unread)

		summaries = append(summaries, RoomSummary{
			RoomName:        name,
			LastMessage:     latest.Message,
			LastMessageTime: latest.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			OtherUserEmail:  other.Email,
			OtherUserName:   other.FullName(),
			ProductID:       productID,
			ProductName:     productName,
			UnreadCount:     unread,
			LastMessageAt:   latest.Timestamp,
		})
	}

	// Order on the instant, not its string form: formatted timestamps with
	// differing UTC offsets do not sort lexicographically.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
	return summaries, nil
}

func (s *chatStore) CountRoomsForUser(userID uint) (int64, error) {
	if err := s.db.First(&models.UserProfile{}, userID).Error; err != nil {
		return 0, asNotFound(err, "user with ID %d", userID)
	}
	names, err := s.roomNamesForUser(userID)
	if err != nil {
		return 0, err
	}
	return int64(len(names)), nil
}
