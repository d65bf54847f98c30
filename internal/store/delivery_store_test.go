package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

func TestAcceptRequest(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.UserID, "Desk lamp")
	approved := createAgent(t, db, "a@example.com", "111", models.ApproveApproved)
	pending := createAgent(t, db, "b@example.com", "222", models.ApprovePending)

	t.Run("pending request and approved agent succeeds", func(t *testing.T) {
		req := createRequest(t, db, product.ProductID, 5, models.DeliveryPending)
		accepted, err := stores.Delivery.AcceptRequest(req.RequestID, approved.AgentID)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryAccepted, accepted.Status)
		require.NotNil(t, accepted.AgentID)
		assert.Equal(t, approved.AgentID, *accepted.AgentID)
	})

	t.Run("already assigned fails with conflict", func(t *testing.T) {
		p2 := createProduct(t, db, seller.UserID, "Bookshelf")
		req := createRequest(t, db, p2.ProductID, 5, models.DeliveryPending)
		_, err := stores.Delivery.AcceptRequest(req.RequestID, approved.AgentID)
		require.NoError(t, err)

		_, err = stores.Delivery.AcceptRequest(req.RequestID, approved.AgentID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("unapproved agent fails with conflict", func(t *testing.T) {
		p3 := createProduct(t, db, seller.UserID, "Monitor")
		req := createRequest(t, db, p3.ProductID, 5, models.DeliveryPending)
		_, err := stores.Delivery.AcceptRequest(req.RequestID, pending.AgentID)
		assert.True(t, apperr.IsConflict(err))

		// Request stays unassigned.
		fresh, ferr := stores.Delivery.GetRequest(req.RequestID)
		require.NoError(t, ferr)
		assert.Equal(t, models.DeliveryPending, fresh.Status)
		assert.Nil(t, fresh.AgentID)
	})

	t.Run("missing request fails with not found", func(t *testing.T) {
		_, err := stores.Delivery.AcceptRequest(99999, approved.AgentID)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("missing agent fails with not found", func(t *testing.T) {
		p4 := createProduct(t, db, seller.UserID, "Chair")
		req := createRequest(t, db, p4.ProductID, 5, models.DeliveryPending)
		_, err := stores.Delivery.AcceptRequest(req.RequestID, 99999)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeliveredIsTerminal(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.UserID, "Desk lamp")
	req := createRequest(t, db, product.ProductID, 5, models.DeliveryAccepted)

	_, err := stores.Delivery.UpdateRequestStatus(req.RequestID, models.DeliveryOutForDelivery)
	require.NoError(t, err)
	_, err = stores.Delivery.UpdateRequestStatus(req.RequestID, models.DeliveryOnTheWay)
	require.NoError(t, err)
	updated, err := stores.Delivery.UpdateRequestStatus(req.RequestID, models.DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryDelivered, updated.Status)

	for _, next := range []string{
		models.DeliveryOutForDelivery,
		models.DeliveryOnTheWay,
		models.DeliveryPending,
	} {
		_, err = stores.Delivery.UpdateRequestStatus(req.RequestID, next)
		assert.True(t, apperr.IsConflict(err), "transition to %s after delivered", next)

		fresh, ferr := stores.Delivery.GetRequest(req.RequestID)
		require.NoError(t, ferr)
		assert.Equal(t, models.DeliveryDelivered, fresh.Status)
	}
}

func TestCreateRequestUniquePerProduct(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.UserID, "Desk lamp")

	req := &models.DeliveryRequest{
		ProductID:       product.ProductID,
		BuyerID:         7,
		PickupLocation:  "A",
		DropoffLocation: "B",
	}
	created, err := stores.Delivery.CreateRequest(req)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryPending, created.Status)
	assert.Equal(t, seller.UserID, created.SellerID)

	dup := &models.DeliveryRequest{ProductID: product.ProductID, BuyerID: 8}
	_, err = stores.Delivery.CreateRequest(dup)
	assert.True(t, apperr.IsConflict(err))

	missing := &models.DeliveryRequest{ProductID: 4242, BuyerID: 8}
	_, err = stores.Delivery.CreateRequest(missing)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAgentModeration(t *testing.T) {
	db := testDB(t)
	stores := New(db)

	t.Run("approve pending succeeds", func(t *testing.T) {
		agent := createAgent(t, db, "p1@example.com", "301", models.ApprovePending)
		require.NoError(t, stores.Delivery.ApproveAgent(agent.AgentID))

		fresh, err := stores.Delivery.GetAgent(agent.AgentID)
		require.NoError(t, err)
		assert.Equal(t, models.ApproveApproved, fresh.ApprovalStatus)
	})

	t.Run("re-approving approved conflicts", func(t *testing.T) {
		agent := createAgent(t, db, "p2@example.com", "302", models.ApproveApproved)
		err := stores.Delivery.ApproveAgent(agent.AgentID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("rejecting approved conflicts", func(t *testing.T) {
		agent := createAgent(t, db, "p3@example.com", "303", models.ApproveApproved)
		err := stores.Delivery.RejectAgent(agent.AgentID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("rejecting rejected conflicts", func(t *testing.T) {
		agent := createAgent(t, db, "p4@example.com", "304", models.ApproveRejected)
		err := stores.Delivery.RejectAgent(agent.AgentID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("missing agent not found", func(t *testing.T) {
		assert.True(t, apperr.IsNotFound(stores.Delivery.ApproveAgent(99999)))
	})
}

func TestCreateAgentDuplicates(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	createAgent(t, db, "taken@example.com", "500", models.ApprovePending)

	_, err := stores.Delivery.CreateAgent(&models.DeliveryAgent{
		Email: "taken@example.com", PhoneNumber: "501", Password: "x",
	})
	assert.True(t, apperr.IsConflict(err))

	_, err = stores.Delivery.CreateAgent(&models.DeliveryAgent{
		Email: "fresh@example.com", PhoneNumber: "500", Password: "x",
	})
	assert.True(t, apperr.IsConflict(err))

	agent, err := stores.Delivery.CreateAgent(&models.DeliveryAgent{
		Email: "fresh@example.com", PhoneNumber: "502", Password: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovePending, agent.ApprovalStatus)
}

func TestListPendingForAgents(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	approved := createAgent(t, db, "ok@example.com", "601", models.ApproveApproved)
	unapproved := createAgent(t, db, "no@example.com", "602", models.ApprovePending)

	p1 := createProduct(t, db, seller.UserID, "Unassigned")
	createRequest(t, db, p1.ProductID, 5, models.DeliveryPending)

	p2 := createProduct(t, db, seller.UserID, "Assigned to approved")
	r2 := createRequest(t, db, p2.ProductID, 5, models.DeliveryPending)
	require.NoError(t, db.Model(r2).Update("agent_id", approved.AgentID).Error)

	p3 := createProduct(t, db, seller.UserID, "Assigned to unapproved")
	r3 := createRequest(t, db, p3.ProductID, 5, models.DeliveryPending)
	require.NoError(t, db.Model(r3).Update("agent_id", unapproved.AgentID).Error)

	open, err := stores.Delivery.ListPendingForAgents()
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, req := range open {
		assert.NotEqual(t, p2.ProductID, req.ProductID)
	}
}

func TestGetBrief(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")

	p1 := createProduct(t, db, seller.UserID, "Pending brief")
	pendingReq := createRequest(t, db, p1.ProductID, 5, models.DeliveryPending)
	_, err := stores.Delivery.GetBrief(pendingReq.RequestID)
	assert.True(t, apperr.IsConflict(err))

	p2 := createProduct(t, db, seller.UserID, "Accepted brief")
	acceptedReq := createRequest(t, db, p2.ProductID, 5, models.DeliveryAccepted)
	brief, err := stores.Delivery.GetBrief(acceptedReq.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "Campusallee 1", brief.PickupLocation)
	assert.Equal(t, "Hauptstr. 9", brief.DropoffLocation)

	_, err = stores.Delivery.GetBrief(99999)
	assert.True(t, apperr.IsNotFound(err))
}
