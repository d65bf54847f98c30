// Package store holds the repository layer. Handlers depend on these
// interfaces only; every method returns errors tagged with an apperr kind so
// the HTTP boundary can map them without inspecting messages.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

// UserUpdate carries a partial profile edit. Nil/empty fields are left
// untouched.
type UserUpdate struct {
	FirstName     string
	LastName      string
	Email         string
	UserType      string
	Badge         string
	ProfilePicURL string
	Address       *models.Address
}

type UserStore interface {
	CreateUser(user *models.UserProfile, address models.Address, roleID uint) (*models.UserProfile, error)
	GetUserByID(userID uint) (*models.UserProfile, error)
	GetUserByEmail(email string) (*models.UserProfile, error)
	UpdateUser(userID uint, upd UserUpdate) (*models.UserProfile, error)
	GetModerator(moderatorID uint) (*models.UserProfile, error)
	UpdateModerator(moderatorID uint, upd UserUpdate) (*models.UserProfile, error)

	AddFavourite(userID uint, productID int64) error
	RemoveFavourite(userID uint, productID int64) error
	ListFavourites(userID uint) ([]models.Product, error)
}

// ProductFilter narrows the public listing. A nil field means "no filter".
type ProductFilter struct {
	CategoryID *uint
	Name       string
	Condition  string
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
}

type ProductStore interface {
	CreateProduct(product *models.Product) (*models.Product, error)
	GetProduct(productID uint) (*models.Product, error)
	UpdateProduct(productID uint, product *models.Product) (*models.Product, error)
	DeleteProduct(productID uint) error
	ListProducts(filter ProductFilter) ([]models.Product, error)
	ListUserProducts(sellerID uint) ([]models.Product, error)
	ListCategories() ([]models.Category, error)

	ListPendingProducts() ([]models.Product, error)
	ApproveProduct(productID uint) error
	RejectProduct(productID uint, reason string) error
}

type ReportStore interface {
	CreateReport(productID, reportedByID uint) (*models.ProductReport, error)
	ListPendingReports() ([]models.ProductReport, error)
	ResolveDelete(reportID uint) error
	ResolveKeep(reportID uint) error
}

// DeliveryBrief is the reduced view served to buyers awaiting a delivery.
type DeliveryBrief struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	DeliveryDate    string `json:"delivery_date"`
	DeliveryTime    string `json:"delivery_time"`
}

type DeliveryStore interface {
	CreateAgent(agent *models.DeliveryAgent) (*models.DeliveryAgent, error)
	GetAgent(agentID uint) (*models.DeliveryAgent, error)
	GetAgentByEmail(email string) (*models.DeliveryAgent, error)
	ListPendingAgents() ([]models.DeliveryAgent, error)
	GetPendingAgent(agentID uint) (*models.DeliveryAgent, error)
	ApproveAgent(agentID uint) error
	RejectAgent(agentID uint) error

	CreateRequest(req *models.DeliveryRequest) (*models.DeliveryRequest, error)
	GetRequest(requestID uint) (*models.DeliveryRequest, error)
	AcceptRequest(requestID, agentID uint) (*models.DeliveryRequest, error)
	UpdateRequestStatus(requestID uint, status string) (*models.DeliveryRequest, error)
	ListPendingForAgents() ([]models.DeliveryRequest, error)
	ListAcceptedForAgent(agentID uint) ([]models.DeliveryRequest, error)
	ListCompletedForAgent(agentID uint) ([]models.DeliveryRequest, error)
	ListForBuyer(buyerID uint) ([]models.DeliveryRequest, error)
	GetBrief(requestID uint) (*DeliveryBrief, error)
}

// RoomSummary is one entry in a user's chat room list.
type RoomSummary struct {
	RoomName        string `json:"room_name"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	OtherUserEmail  string `json:"other_user_email"`
	OtherUserName   string `json:"other_user_name"`
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	UnreadCount     int64  `json:"unread_count"`

	// Sort key; LastMessageTime is only its wire formatting.
	LastMessageAt time.Time `json:"-"`
}

type ChatStore interface {
	SaveMessage(roomName string, userID *uint, text string) (*models.ChatMessage, error)
	RecentMessages(roomName string, limit int) ([]models.ChatMessage, error)
	AllMessages(roomName string) ([]models.ChatMessage, error)
	RoomsForUser(userID uint) ([]RoomSummary, error)
	CountRoomsForUser(userID uint) (int64, error)
}

// Stores bundles every repository over a single database handle.
type Stores struct {
	Users    UserStore
	Products ProductStore
	Reports  ReportStore
	Delivery DeliveryStore
	Chat     ChatStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:    &userStore{db: db},
		Products: &productStore{db: db},
		Reports:  &reportStore{db: db},
		Delivery: &deliveryStore{db: db},
		Chat:     &chatStore{db: db},
	}
}

// asNotFound translates gorm's record-not-found into the NotFound kind,
// anything else into Internal.
func asNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return apperr.Internal(err)
}
