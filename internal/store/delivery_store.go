package store

import (
	"errors"

	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

type deliveryStore struct {
	db *gorm.DB
}

func (s *deliveryStore) CreateAgent(agent *models.DeliveryAgent) (*models.DeliveryAgent, error) {
	var existing models.DeliveryAgent
	if err := s.db.Where("email = ?", agent.Email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if err := s.db.Where("phone_number = ?", agent.PhoneNumber).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("phone number already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	agent.ApprovalStatus = models.ApprovePending
	if err := s.db.Create(agent).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return agent, nil
}

func (s *deliveryStore) GetAgent(agentID uint) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	if err := s.db.First(&agent, agentID).Error; err != nil {
		return nil, asNotFound(err, "delivery agent with ID %d", agentID)
	}
	return &agent, nil
}

func (s *deliveryStore) GetAgentByEmail(email string) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	if err := s.db.Where("email = ?", email).First(&agent).Error; err != nil {
		return nil, asNotFound(err, "delivery agent with email %s", email)
	}
	return &agent, nil
}

func (s *deliveryStore) ListPendingAgents() ([]models.DeliveryAgent, error) {
	var agents []models.DeliveryAgent
	if err := s.db.Where("approval_status = ?", models.ApprovePending).Find(&agents).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return agents, nil
}

func (s *deliveryStore) GetPendingAgent(agentID uint) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	if err := s.db.Where("agent_id = ? AND approval_status = ?", agentID, models.ApprovePending).
		First(&agent).Error; err != nil {
		return nil, asNotFound(err, "delivery agent with ID %d not found or not pending", agentID)
	}
	return &agent, nil
}

// ApproveAgent moves a pending agent to approved. Approval is terminal:
// approving an approved or rejected agent fails with Conflict.
func (s *deliveryStore) ApproveAgent(agentID uint) error {
	agent, err := s.GetAgent(agentID)
	if err != nil {
		return err
	}
	if agent.ApprovalStatus != models.ApprovePending {
		return apperr.Conflict("delivery agent %d is already %s", agentID, agent.ApprovalStatus)
	}

	res := s.db.Model(&models.DeliveryAgent{}).
		Where("agent_id = ? AND approval_status = ?", agentID, models.ApprovePending).
		Update("approval_status", models.ApproveApproved)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("delivery agent %d is no longer pending", agentID)
	}
	return nil
}

func (s *deliveryStore) RejectAgent(agentID uint) error {
	agent, err := s.GetAgent(agentID)
	if err != nil {
		return err
	}
	if agent.ApprovalStatus != models.ApprovePending {
		return apperr.Conflict("delivery agent %d is already %s", agentID, agent.ApprovalStatus)
	}

	res := s.db.Model(&models.DeliveryAgent{}).
		Where("agent_id = ? AND approval_status = ?", agentID, models.ApprovePending).
		Update("approval_status", models.ApproveRejected)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("delivery agent %d is no longer pending", agentID)
	}
	return nil
}

func (s *deliveryStore) CreateRequest(req *models.DeliveryRequest) (*models.DeliveryRequest, error) {
	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		return nil, asNotFound(err, "product with ID %d", req.ProductID)
	}
	req.SellerID = product.SellerID

	var existing models.DeliveryRequest
	if err := s.db.Where("product_id = ?", req.ProductID).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("delivery request for product %d already exists", req.ProductID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	req.Status = models.DeliveryPending
	if err := s.db.Create(req).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return req, nil
}

func (s *deliveryStore) GetRequest(requestID uint) (*models.DeliveryRequest, error) {
	var req models.DeliveryRequest
	if err := s.db.Preload("Agent").First(&req, requestID).Error; err != nil {
		return nil, asNotFound(err, "delivery request with ID %d", requestID)
	}
	return &req, nil
}

// AcceptRequest assigns the request to the agent and marks it accepted.
// The precondition (pending, unassigned, approved agent) is enforced with a
// compare-and-swap UPDATE so two concurrent accepts cannot both win.
func (s *deliveryStore) AcceptRequest(requestID, agentID uint) (*models.DeliveryRequest, error) {
	if _, err := s.GetRequest(requestID); err != nil {
		return nil, err
	}
	agent, err := s.GetAgent(agentID)
	if err != nil {
		return nil, err
	}
	if agent.ApprovalStatus != models.ApproveApproved {
		return nil, apperr.Conflict("delivery agent %d is not approved", agentID)
	}

	res := s.db.Model(&models.DeliveryRequest{}).
		Where("request_id = ? AND status = ? AND agent_id IS NULL", requestID, models.DeliveryPending).
		Updates(map[string]interface{}{
			"agent_id": agentID,
			"status":   models.DeliveryAccepted,
		})
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("request %d is already assigned or not pending", requestID)
	}
	return s.GetRequest(requestID)
}

// UpdateRequestStatus applies a status transition. Delivered is terminal;
// the guard runs inside the UPDATE itself, so a racing transition leaves the
// row unchanged and fails with Conflict.
func (s *deliveryStore) UpdateRequestStatus(requestID uint, status string) (*models.DeliveryRequest, error) {
	if _, err := s.GetRequest(requestID); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.DeliveryRequest{}).
		Where("request_id = ? AND status <> ?", requestID, models.DeliveryDelivered).
		Update("status", status)
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("status cannot be changed once marked as delivered")
	}
	return s.GetRequest(requestID)
}

// ListPendingForAgents returns open work: pending requests that are either
// unassigned or held by an agent that never got approved.
func (s *deliveryStore) ListPendingForAgents() ([]models.DeliveryRequest, error) {
	var requests []models.DeliveryRequest
	err := s.db.Preload("Agent").
		Where("status = ?", models.DeliveryPending).
		Where("agent_id IS NULL OR agent_id NOT IN (?)",
			s.db.Model(&models.DeliveryAgent{}).Select("agent_id").
				Where("approval_status = ?", models.ApproveApproved)).
		Order("request_date desc").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return requests, nil
}

func (s *deliveryStore) ListAcceptedForAgent(agentID uint) ([]models.DeliveryRequest, error) {
	return s.listByAgentStatus(agentID, []string{models.DeliveryAccepted, models.DeliveryCompleted})
}

func (s *deliveryStore) ListCompletedForAgent(agentID uint) ([]models.DeliveryRequest, error) {
	return s.listByAgentStatus(agentID, []string{models.DeliveryCompleted})
}

func (s *deliveryStore) listByAgentStatus(agentID uint, statuses []string) ([]models.DeliveryRequest, error) {
	var requests []models.DeliveryRequest
	err := s.db.Preload("Agent").
		Where("agent_id = ? AND status IN ?", agentID, statuses).
		Order("request_date desc").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return requests, nil
}

func (s *deliveryStore) ListForBuyer(buyerID uint) ([]models.DeliveryRequest, error) {
	var requests []models.DeliveryRequest
	err := s.db.Preload("Agent").
		Where("buyer_id = ? AND status IN ?", buyerID,
			[]string{models.DeliveryPending, models.DeliveryAccepted, models.DeliveryCompleted}).
		Order("request_date desc").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return requests, nil
}

func (s *deliveryStore) GetBrief(requestID uint) (*DeliveryBrief, error) {
	req, err := s.GetRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.DeliveryAccepted && req.Status != models.DeliveryCompleted {
		return nil, apperr.Conflict("delivery %d is not accepted or completed yet", requestID)
	}

	brief := &DeliveryBrief{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
	}
	if req.DeliveryDate != nil {
		brief.DeliveryDate = req.DeliveryDate.Format("2006-01-02")
		brief.DeliveryTime = req.DeliveryDate.Format("15:04:05")
	}
	return brief, nil
}
