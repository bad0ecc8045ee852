//go:build acceptance

package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
)

const developer = "0x00000000000000000000000000000000000000d1"

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Summary    json.RawMessage `json:"summary"`
	Pagination *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
	Error string `json:"error"`
}

func (s *Suite) insertProvider(wallet string, active bool) string {
	id := uuid.New().String()
	_, err := s.Postgres.DB.Exec(
		`INSERT INTO providers (id, name, wallet_address, is_active) VALUES ($1, $2, $3, $4)`,
		id, "Acme", wallet, active,
	)
	s.Require().NoError(err)
	return id
}

func (s *Suite) insertAPI(providerID, name string, active bool) string {
	id := uuid.New().String()
	_, err := s.Postgres.DB.Exec(`
		INSERT INTO apis (id, provider_id, name, description, category, base_url, price_per_token, currency, is_active)
		VALUES ($1, $2, $3, 'test api', 'data', 'https://api.example.com', 0.5, 'ETH', $4)`,
		id, providerID, name, active,
	)
	s.Require().NoError(err)
	return id
}

type paymentFixture struct {
	apiID    *string
	amount   string
	verified bool
	status   string
	created  time.Time
}

func (s *Suite) insertPayment(p paymentFixture) string {
	id := uuid.New().String()
	if p.status == "" {
		p.status = "verified"
	}
	if p.created.IsZero() {
		p.created = time.Now()
	}
	_, err := s.Postgres.DB.Exec(`
		INSERT INTO payments (id, developer_address, api_id, transaction_hash, amount, currency,
		                      number_of_tokens, tokens_issued, is_verified, status, block_number, created_at)
		VALUES ($1, $2, $3, $4, $5, 'ETH', 3, TRUE, $6, $7, 100, $8)`,
		id, developer, p.apiID, "0x"+uuid.New().String(), p.amount, p.verified, p.status, p.created,
	)
	s.Require().NoError(err)
	return id
}

// insertToken stores a token and returns its raw secret
func (s *Suite) insertToken(paymentID string, used bool, expiresAt time.Time) string {
	secret := uuid.New().String()
	var usedAt *time.Time
	if used {
		now := time.Now()
		usedAt = &now
	}
	_, err := s.Postgres.DB.Exec(`
		INSERT INTO tokens (id, payment_id, token_hash, is_used, used_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), paymentID, utils.HashToken(secret), used, usedAt, expiresAt,
	)
	s.Require().NoError(err)
	return secret
}

func (s *Suite) get(path string) (int, envelope) {
	resp, err := http.Get(s.BaseURL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body envelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (s *Suite) send(method, path, bearer string, payload interface{}) (int, envelope) {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)

	req, err := http.NewRequest(method, s.BaseURL+path, bytes.NewReader(raw))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body envelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}
