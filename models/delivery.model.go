package models

import (
	"time"
)

// Delivery request lifecycle:
// pending -> accepted -> {out_for_delivery -> on_the_way -> delivered},
// with completed as an alternate terminal used for historical queries.
// Once delivered, no further status change is permitted.
const (
	DeliveryPending        = "pending"
	DeliveryAccepted       = "accepted"
	DeliveryOutForDelivery = "out_for_delivery"
	DeliveryOnTheWay       = "on_the_way"
	DeliveryDelivered      = "delivered"
	DeliveryCompleted      = "completed"
)

type DeliveryAgent struct {
	AgentID   uint   `gorm:"primaryKey" json:"agent_id"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"unique;not null;size:100" json:"email"`
	Password  string `gorm:"not null" json:"-"`

	PhoneNumber   string  `gorm:"unique;size:15" json:"phone_number"`
	TransportMode string  `gorm:"size:50" json:"transport_mode"`
	CategoryIDs   []int64 `gorm:"serializer:json" json:"category_ids"`

	Reviews             []string  `gorm:"serializer:json" json:"reviews"`
	DeliveriesCompleted int       `gorm:"default:0" json:"deliveries_completed"`
	IdentityImgURL      string    `json:"identity_img_url"`
	DayOfWeek           []string  `gorm:"serializer:json" json:"day_of_week"`
	TimeSlot            [][]int   `gorm:"serializer:json" json:"time_slot"`
	JoinedDate          time.Time `json:"joined_date"`
	ApprovalStatus      string    `gorm:"size:20;default:'pending'" json:"approval_status"`
}

func (DeliveryAgent) TableName() string { return "delivery_agents" }

// FullName is the agent's display identity.
func (a *DeliveryAgent) FullName() string {
	return a.FirstName + " " + a.LastName
}

type DeliveryRequest struct {
	RequestID uint  `gorm:"primaryKey" json:"request_id"`
	AgentID   *uint `json:"agent_id"`

	// Unique: at most one delivery request per product, across its whole
	// history. Kept as observed in the source schema; see DESIGN.md.
	ProductID uint `gorm:"uniqueIndex;not null" json:"product_id"`

	SellerID uint `gorm:"not null" json:"seller_id"`
	BuyerID  uint `gorm:"not null" json:"buyer_id"`

	RequestDate  time.Time  `gorm:"autoCreateTime" json:"request_date"`
	DeliveryDate *time.Time `json:"delivery_date"`

	PickupLocation  string `gorm:"size:255" json:"pickup_location"`
	DropoffLocation string `gorm:"size:255" json:"dropoff_location"`

	Status         string  `gorm:"size:20;default:'pending'" json:"status"`
	DeliveryFee    float64 `gorm:"default:0" json:"delivery_fee"`
	DeliveryRating *int    `json:"delivery_rating"`
	DeliveryMode   string  `gorm:"size:50;default:'standard'" json:"delivery_mode"`
	DeliveryNotes  string  `gorm:"type:text" json:"delivery_notes"`

	// Relations
	Agent *DeliveryAgent `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

func (DeliveryRequest) TableName() string { return "delivery_requests" }
