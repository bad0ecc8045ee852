package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
)

// JWTManager signs and validates provider access tokens
type JWTManager struct {
	secret            []byte
	accessTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:            []byte(secret),
		accessTokenExpiry: accessTokenExpiry,
	}
}

// GenerateAccessToken issues a token for the given provider wallet
func (j *JWTManager) GenerateAccessToken(walletAddress string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"wallet_address": NormalizeAddress(walletAddress),
		"exp":            now.Add(j.accessTokenExpiry).Unix(),
		"iat":            now.Unix(),
		"jti":            uuid.New().String(),
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTManager) ValidateToken(tokenString string) (*domain.ProviderClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	wallet, ok := claims["wallet_address"].(string)
	if !ok || wallet == "" {
		return nil, fmt.Errorf("invalid wallet_address in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp in token")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat in token")
	}

	providerClaims := &domain.ProviderClaims{
		WalletAddress: NormalizeAddress(wallet),
		Exp:           int64(exp),
		Iat:           int64(iat),
	}

	if providerClaims.IsExpired(time.Now()) {
		return nil, fmt.Errorf("token is expired")
	}

	return providerClaims, nil
}

// AccessTokenExpiry returns the configured lifetime of issued tokens
func (j *JWTManager) AccessTokenExpiry() time.Duration {
	return j.accessTokenExpiry
}
