//go:build acceptance

package acceptance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/dto"
)

func (s *Suite) TestConsumeToken() {
	const gatewayWallet = "0x00000000000000000000000000000000000000a2"
	providerID := s.insertProvider(gatewayWallet, true)
	s.insertProvider("0x00000000000000000000000000000000000000a4", true)
	apiID := s.insertAPI(providerID, "Weather", true)
	payment := s.insertPayment(paymentFixture{apiID: &apiID, amount: "1", verified: true})
	live := s.insertToken(payment, false, time.Now().Add(time.Hour))
	s.insertToken(payment, false, time.Now().Add(time.Hour))
	stale := s.insertToken(payment, false, time.Now().Add(-time.Hour))

	gateway, err := s.JWT.GenerateAccessToken(gatewayWallet)
	s.Require().NoError(err)
	stranger, err := s.JWT.GenerateAccessToken("0x00000000000000000000000000000000000000a4")
	s.Require().NoError(err)

	consumeAs := func(bearer, token string) (int, envelope) {
		return s.send(http.MethodPost, "/api/v1/tokens/consume", bearer, dto.ConsumeTokenRequest{
			Token:          token,
			Endpoint:       "/forecast",
			StatusCode:     200,
			ResponseTimeMs: 35,
		})
	}

	consume := func(token string) (int, envelope) {
		return consumeAs(gateway, token)
	}

	status, _ := consumeAs("", live)
	s.Equal(http.StatusUnauthorized, status)

	status, _ = consumeAs(stranger, live)
	s.Equal(http.StatusForbidden, status, "only the api's provider may spend its tokens")

	status, body := consume(live)
	s.Require().Equal(http.StatusOK, status)
	var result struct {
		APIID           string `json:"apiId"`
		RemainingTokens int    `json:"remainingTokens"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &result))
	s.Equal(apiID, result.APIID)
	s.Equal(1, result.RemainingTokens)

	status, _ = consume(live)
	s.Equal(http.StatusConflict, status)

	status, _ = consume(stale)
	s.Equal(http.StatusGone, status)

	status, _ = consume("never-issued")
	s.Equal(http.StatusNotFound, status)

	status, body = s.get("/api/v1/usage?developerAddress=" + developer + "&apiId=" + apiID)
	s.Require().Equal(http.StatusOK, status)
	var stats struct {
		TotalCalls int `json:"totalCalls"`
		Last24h    struct {
			SuccessfulCalls int `json:"successfulCalls"`
			FailedCalls     int `json:"failedCalls"`
		} `json:"last24h"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &stats))
	s.Equal(1, stats.TotalCalls)
	s.Equal(1, stats.Last24h.SuccessfulCalls)
	s.Equal(0, stats.Last24h.FailedCalls)
}
