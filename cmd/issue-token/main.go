package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
)

// issue-token mints a provider access token for local testing and gateway setup.
func main() {
	wallet := flag.String("wallet", "", "provider wallet address (0x...)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if err := utils.ValidateAddress(*wallet); err != nil {
		log.Fatalf("Invalid -wallet: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters long")
	}

	jwtManager := utils.NewJWTManager(secret, *ttl)
	token, err := jwtManager.GenerateAccessToken(*wallet)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(jwtManager.AccessTokenExpiry().Seconds()),
	}); err != nil {
		log.Fatalf("Failed to write token: %v", err)
	}
}
