package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
)

const walletAddressKey = "wallet_address"

// TokenValidator validates provider access tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.ProviderClaims, error)
}

// ProviderAuthMiddleware validates the bearer JWT and adds the provider wallet to context
func ProviderAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Success: false,
				Error:   "Authorization header is required",
			})
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Success: false,
				Error:   "Invalid authorization header format",
			})
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Success: false,
				Error:   "Invalid or expired token",
			})
			return
		}

		c.Set(walletAddressKey, claims.WalletAddress)

		c.Next()
	}
}

func callerWallet(c *gin.Context) string {
	return c.GetString(walletAddressKey)
}
