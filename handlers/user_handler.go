package handlers

import (
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/store"
	"marketplace_backend/models"
)

type UserHandler struct {
	Users    store.UserStore
	Products store.ProductStore
	Delivery store.DeliveryStore
}

func NewUserHandler(users store.UserStore, products store.ProductStore, delivery store.DeliveryStore) *UserHandler {
	return &UserHandler{Users: users, Products: products, Delivery: delivery}
}

// EditProfileRequest carries a partial profile update. Absent fields keep
// their current value.
type EditProfileRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" validate:"omitempty,email"`
	UserType      string `json:"user_type"`
	Badge         string `json:"badge"`
	ProfilePicURL string `json:"profile_pic_url"`

	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func (r *EditProfileRequest) toUpdate() store.UserUpdate {
	upd := store.UserUpdate{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		UserType:      r.UserType,
		Badge:         r.Badge,
		ProfilePicURL: r.ProfilePicURL,
	}
	if r.Street != "" || r.City != "" || r.State != "" || r.PostalCode != "" {
		upd.Address = &models.Address{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
		}
	}
	return upd
}

// GetProfile - GET /api/users/edit/:userID
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.Users.GetUserByID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Profile fetched", user)
}

// UpdateProfile - PUT /api/users/edit/:userID
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	var req EditProfileRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	user, err := h.Users.UpdateUser(userID, req.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Profile updated", user)
}

// AddFavouriteRequest defines the payload for adding a favourite
type AddFavouriteRequest struct {
	UserID    uint  `json:"user_id" validate:"required"`
	ProductID int64 `json:"product_id" validate:"required"`
}

// AddFavourite - POST /api/users/favourites
func (h *UserHandler) AddFavourite(c *fiber.Ctx) error {
	var req AddFavouriteRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.Users.AddFavourite(req.UserID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Product added to favourites", nil)
}

// GetFavourites - GET /api/users/favourites/:userID
func (h *UserHandler) GetFavourites(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.Users.ListFavourites(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Favourites fetched", products)
}

// RemoveFavourite - DELETE /api/users/favourites/:userID/:productID
func (h *UserHandler) RemoveFavourite(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Users.RemoveFavourite(userID, int64(productID)); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product removed from favourites", nil)
}

// PreviousDeliveries - GET /api/users/:userID
// Delivery history of the buyer, newest first.
func (h *UserHandler) PreviousDeliveries(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	requests, err := h.Delivery.ListForBuyer(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Deliveries fetched", requests)
}

// OrderDetails - GET /api/users/orders/:requestID
func (h *UserHandler) OrderDetails(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return respondError(c, err)
	}
	request, err := h.Delivery.GetRequest(requestID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Order fetched", request)
}

// MyListings - GET /api/users/my-listings/:userID
func (h *UserHandler) MyListings(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.Products.ListUserProducts(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Listings fetched", products)
}
