package handlers

import (
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/store"
)

type ModeratorHandler struct {
	Users    store.UserStore
	Products store.ProductStore
	Delivery store.DeliveryStore
}

func NewModeratorHandler(users store.UserStore, products store.ProductStore, delivery store.DeliveryStore) *ModeratorHandler {
	return &ModeratorHandler{Users: users, Products: products, Delivery: delivery}
}

// RejectListingRequest carries the moderator's reason for a rejection
type RejectListingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// GetPendingListings - GET /api/moderator/pending-listings
func (h *ModeratorHandler) GetPendingListings(c *fiber.Ctx) error {
	products, err := h.Products.ListPendingProducts()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Pending listings fetched", products)
}

// ApproveListing - POST /api/moderator/approve-listings/:productID
func (h *ModeratorHandler) ApproveListing(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Products.ApproveProduct(productID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product approved", nil)
}

// RejectListing - POST /api/moderator/reject-listings/:productID
func (h *ModeratorHandler) RejectListing(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	var req RejectListingRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.Products.RejectProduct(productID, req.Reason); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product rejected", nil)
}

// GetPendingAgents - GET /api/moderator/pending-agents
func (h *ModeratorHandler) GetPendingAgents(c *fiber.Ctx) error {
	agents, err := h.Delivery.ListPendingAgents()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Pending agents fetched", agents)
}

// GetPendingAgent - GET /api/moderator/pending-agents/:agentID
func (h *ModeratorHandler) GetPendingAgent(c *fiber.Ctx) error {
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	agent, err := h.Delivery.GetPendingAgent(agentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Agent fetched", agent)
}

// ApproveAgent - POST /api/moderator/approve-agents/:agentID
func (h *ModeratorHandler) ApproveAgent(c *fiber.Ctx) error {
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Delivery.ApproveAgent(agentID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Agent approved", nil)
}

// RejectAgent - POST /api/moderator/reject-agents/:agentID
func (h *ModeratorHandler) RejectAgent(c *fiber.Ctx) error {
	agentID, err := paramUint(c, "agentID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Delivery.RejectAgent(agentID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Agent rejected", nil)
}

// GetModerator - GET /api/moderator/:moderatorID
func (h *ModeratorHandler) GetModerator(c *fiber.Ctx) error {
	moderatorID, err := paramUint(c, "moderatorID")
	if err != nil {
		return respondError(c, err)
	}
	moderator, err := h.Users.GetModerator(moderatorID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Moderator fetched", moderator)
}

// UpdateModerator - PUT /api/moderator/:moderatorID
func (h *ModeratorHandler) UpdateModerator(c *fiber.Ctx) error {
	moderatorID, err := paramUint(c, "moderatorID")
	if err != nil {
		return respondError(c, err)
	}
	var req EditProfileRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	moderator, err := h.Users.UpdateModerator(moderatorID, req.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Moderator updated", moderator)
}
