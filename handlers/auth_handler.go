package handlers

import (
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/internal/store"
	"marketplace_backend/models"
	"marketplace_backend/utils"
)

type AuthHandler struct {
	Users store.UserStore
}

func NewAuthHandler(users store.UserStore) *AuthHandler {
	return &AuthHandler{Users: users}
}

// SignupRequest defines the payload for user registration
type SignupRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	UserType        string `json:"user_type"`
	RoleID          uint   `json:"role_id"`

	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
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

	roleID := req.RoleID
	if roleID == 0 {
		roleID = 1 // seeded "user" role
	}
	user, err := h.Users.CreateUser(&models.UserProfile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		UserType:  req.UserType,
	}, models.Address{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	}, roleID)
	if err != nil {
		return respondError(c, err)
	}

	access, refresh, err := utils.GenerateUserTokens(user)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return respondData(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.GetUserByEmail(req.Email)
	if err != nil {
		return respondError(c, err)
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return respondError(c, apperr.Unauthorized("invalid credentials"))
	}

	access, refresh, err := utils.GenerateUserTokens(user)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return respondData(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// RefreshToken trades a valid refresh token for a fresh access/refresh pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
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

	user, err := h.Users.GetUserByID(utils.ClaimUint(claims, "user_id"))
	if err != nil {
		return respondError(c, apperr.Unauthorized("user no longer exists"))
	}

	access, refresh, err := utils.GenerateUserTokens(user)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return respondData(c, fiber.StatusOK, "Token refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
