package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/internal/store"
	"marketplace_backend/models"
	"marketplace_backend/utils"
)

type DeliveryHandler struct {
	Delivery store.DeliveryStore
}

func NewDeliveryHandler(delivery store.DeliveryStore) *DeliveryHandler {
	return &DeliveryHandler{Delivery: delivery}
}

// AgentSignupRequest defines the payload for delivery agent registration
type AgentSignupRequest struct {
	FirstName       string   `json:"first_name" validate:"required"`
	LastName        string   `json:"last_name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirm_password" validate:"required"`
	PhoneNumber     string   `json:"phone_number" validate:"required"`
	TransportMode   string   `json:"transport_mode"`
	CategoryIDs     []int64  `json:"category_ids"`
	IdentityImgURL  string   `json:"identity_img_url"`
	DayOfWeek       []string `json:"day_of_week"`
	TimeSlot        [][]int  `json:"time_slot"`
}

// CreateRequestRequest defines the payload for a new delivery request
type CreateRequestRequest struct {
	ProductID       uint    `json:"product_id" validate:"required"`
	BuyerID         uint    `json:"buyer_id" validate:"required"`
	PickupLocation  string  `json:"pickup_location" validate:"required"`
	DropoffLocation string  `json:"dropoff_location" validate:"required"`
	DeliveryDate    string  `json:"delivery_date"`
	DeliveryFee     float64 `json:"delivery_fee"`
	DeliveryMode    string  `json:"delivery_mode"`
	DeliveryNotes   string  `json:"delivery_notes"`
}

// Signup - POST /api/delivery-agents/signup
// New agents start unapproved and cannot log in until a moderator approves.
func (h *DeliveryHandler) Signup(c *fiber.Ctx) error {
	var req AgentSignupRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Password != req.ConfirmPassword {
		return respondError(c, apperr.Validation("passwords do not match"))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	agent, err := h.Delivery.CreateAgent(&models.DeliveryAgent{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       hashed,
		PhoneNumber:    req.PhoneNumber,
		TransportMode:  req.TransportMode,
		CategoryIDs:    req.CategoryIDs,
		IdentityImgURL: req.IdentityImgURL,
		DayOfWeek:      req.DayOfWeek,
		TimeSlot:       req.TimeSlot,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Registration received, awaiting approval", agent)
}

// Login - POST /api/delivery-agents/login
func (h *DeliveryHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	agent, err := h.Delivery.GetAgentByEmail(req.Email)
	if err != nil {
		return respondError(c, apperr.Unauthorized("invalid credentials"))
	}
	if !utils.CheckPasswordHash(req.Password, agent.Password) {
		return respondError(c, apperr.Unauthorized("invalid credentials"))
	}
	if agent.ApprovalStatus != models.ApproveApproved {
		return respondError(c, apperr.Unauthorized("account is not approved"))
	}

	access, refresh, err := utils.GenerateAgentTokens(agent)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return respondData(c, fiber.StatusOK, "Login successful", fiber.Map{
		"agent":         agent,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// RefreshToken - POST /api/delivery-agents/refresh-token
func (h *DeliveryHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	claims, err := utils.ParseToken(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	if claims["type"] != "refresh" {
		return respondError(c, apperr.Unauthorized("refresh token required"))
	}

	agent, err := h.Delivery.GetAgent(utils.ClaimUint(claims, "agent_id"))
	if err != nil {
		return respondError(c, apperr.Unauthorized("agent no longer exists"))
	}
	if agent.ApprovalStatus != models.ApproveApproved {
		return respondError(c, apperr.Unauthorized("account is not approved"))
	}

	access, refresh, err := utils.GenerateAgentTokens(agent)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return respondData(c, fiber.StatusOK, "Token refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// CreateRequest - POST /api/delivery-agents/create-delivery-request
// The seller is resolved from the product, never taken from the caller.
func (h *DeliveryHandler) CreateRequest(c *fiber.Ctx) error {
	var req CreateRequestRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	request := &models.DeliveryRequest{
		ProductID:       req.ProductID,
		BuyerID:         req.BuyerID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		DeliveryFee:     req.DeliveryFee,
		DeliveryMode:    req.DeliveryMode,
		DeliveryNotes:   req.DeliveryNotes,
	}
	if req.DeliveryDate != "" {
		date, err := time.Parse(time.RFC3339, req.DeliveryDate)
		if err != nil {
			return respondError(c, apperr.Validation("invalid delivery_date, want RFC3339"))
		}
		request.DeliveryDate = &date
	}

	created, err := h.Delivery.CreateRequest(request)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Delivery request created", created)
}

// AcceptRequest - POST /api/delivery-agents/accept-request/:requestID/:agentID
func (h *DeliveryHandler) AcceptRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return respondError(c, err)
	}
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	request, err := h.Delivery.AcceptRequest(requestID, agentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Request accepted", request)
}

// UpdateStatus - POST /api/delivery-agents/update-status/:requestID?status=
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return respondError(c, err)
	}

	status := c.Query("status")
	switch status {
	case models.DeliveryOutForDelivery, models.DeliveryOnTheWay, models.DeliveryDelivered:
	default:
		return respondError(c, apperr.Validation("status must be one of out_for_delivery, on_the_way, delivered"))
	}

	request, err := h.Delivery.UpdateRequestStatus(requestID, status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Status updated", request)
}

// GetPendingRequests - GET /api/delivery-agents/pending-requests/:agentID
// Open work: unassigned, or held by an agent that never got approved.
func (h *DeliveryHandler) GetPendingRequests(c *fiber.Ctx) error {
	if _, err := paramUint(c, "agentID"); err != nil {
		return respondError(c, err)
	}
	requests, err := h.Delivery.ListPendingForAgents()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Pending requests fetched", requests)
}

// GetAcceptedDeliveries - GET /api/delivery-agents/accepted-deliveries/:agentID
func (h *DeliveryHandler) GetAcceptedDeliveries(c *fiber.Ctx) error {
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	requests, err := h.Delivery.ListAcceptedForAgent(agentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Accepted deliveries fetched", requests)
}

// GetPreviousDeliveries - GET /api/delivery-agents/previous-deliveries/:agentID
func (h *DeliveryHandler) GetPreviousDeliveries(c *fiber.Ctx) error {
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	requests, err := h.Delivery.ListCompletedForAgent(agentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Previous deliveries fetched", requests)
}

// GetDeliveryDetails - GET /api/delivery-agents/accepted-delivery-details/:requestID
func (h *DeliveryHandler) GetDeliveryDetails(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return respondError(c, err)
	}
	brief, err := h.Delivery.GetBrief(requestID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Delivery details fetched", brief)
}
