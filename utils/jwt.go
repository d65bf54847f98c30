package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

// Token lifetimes. Agents get a short access token with a long-lived refresh
// token; user sessions follow the same shape with a longer access window.
const (
	UserAccessTTL  = 72 * time.Hour
	AgentAccessTTL = 30 * time.Minute
	RefreshTTL     = 7 * 24 * time.Hour
)

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// GenerateUserTokens issues the access/refresh pair for a marketplace user.
func GenerateUserTokens(user *models.UserProfile) (access, refresh string, err error) {
	now := time.Now()
	access, err = sign(jwt.MapClaims{
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.RoleName(),
		"type":    "access",
		"exp":     now.Add(UserAccessTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(jwt.MapClaims{
		"user_id": user.UserID,
		"type":    "refresh",
		"exp":     now.Add(RefreshTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAgentTokens issues the access/refresh pair for a delivery agent.
// Access expires in 30 minutes, refresh in 7 days.
func GenerateAgentTokens(agent *models.DeliveryAgent) (access, refresh string, err error) {
	now := time.Now()
	access, err = sign(jwt.MapClaims{
		"agent_id":   agent.AgentID,
		"email":      agent.Email,
		"first_name": agent.FirstName,
		"last_name":  agent.LastName,
		"user_type":  "delivery_agent",
		"type":       "access",
		"exp":        now.Add(AgentAccessTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(jwt.MapClaims{
		"agent_id": agent.AgentID,
		"email":    agent.Email,
		"type":     "refresh",
		"exp":      now.Add(RefreshTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseToken verifies the signature and expiry of an HS256 token and returns
// its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("token is invalid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid token claims")
	}
	return claims, nil
}

// ClaimUint reads a numeric claim; JSON numbers arrive as float64.
func ClaimUint(claims jwt.MapClaims, key string) uint {
	if v, ok := claims[key].(float64); ok {
		return uint(v)
	}
	return 0
}
