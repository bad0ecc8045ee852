//go:build acceptance

package acceptance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/dto"
)

const providerWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func (s *Suite) TestProviderLifecycle() {
	token, err := s.JWT.GenerateAccessToken(providerWallet)
	s.Require().NoError(err)

	status, _ := s.send(http.MethodPost, "/api/v1/providers", "", dto.RegisterProviderRequest{Name: "Acme"})
	s.Equal(http.StatusUnauthorized, status)

	status, body := s.send(http.MethodPost, "/api/v1/providers", token, dto.RegisterProviderRequest{Name: "Acme"})
	s.Require().Equal(http.StatusCreated, status, body.Error)
	var provider struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &provider))

	status, _ = s.send(http.MethodPost, "/api/v1/providers", token, dto.RegisterProviderRequest{Name: "Acme"})
	s.Equal(http.StatusConflict, status)

	status, body = s.send(http.MethodPost, "/api/v1/provider/apis", token, dto.CreateAPIRequest{
		Name:          "Weather",
		Description:   "Forecasts",
		Category:      "data",
		BaseURL:       "https://weather.example.com",
		PricePerToken: "0.01",
		Currency:      "ETH",
	})
	s.Require().Equal(http.StatusCreated, status, body.Error)
	var api struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &api))

	status, body = s.get("/api/v1/apis?search=weath")
	s.Require().Equal(http.StatusOK, status)
	s.Equal(1, body.Pagination.Total)

	status, _ = s.get("/api/v1/apis/" + api.ID)
	s.Equal(http.StatusOK, status)

	status, _ = s.get("/api/v1/providers/" + provider.ID + "/apis")
	s.Equal(http.StatusOK, status)

	status, _ = s.send(http.MethodPatch, "/api/v1/provider/apis/"+api.ID+"/status", token, map[string]bool{"isActive": false})
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.get("/api/v1/apis/" + api.ID)
	s.Equal(http.StatusForbidden, status, "deactivation must invalidate the cached api")

	status, _ = s.get("/api/v1/apis/00000000-0000-4000-8000-000000000000")
	s.Equal(http.StatusNotFound, status)
}

func (s *Suite) TestReviewsAndFavorites() {
	providerID := s.insertProvider("0x00000000000000000000000000000000000000a3", true)
	apiID := s.insertAPI(providerID, "Maps", true)

	review := dto.CreateReviewRequest{DeveloperAddress: developer, Rating: 5}
	status, _ := s.send(http.MethodPost, "/api/v1/apis/"+apiID+"/reviews", "", review)
	s.Equal(http.StatusForbidden, status, "no purchase yet")

	s.insertPayment(paymentFixture{apiID: &apiID, amount: "1", verified: true, created: time.Now()})

	status, body := s.send(http.MethodPost, "/api/v1/apis/"+apiID+"/reviews", "", review)
	s.Require().Equal(http.StatusCreated, status, body.Error)

	status, _ = s.send(http.MethodPost, "/api/v1/apis/"+apiID+"/reviews", "", review)
	s.Equal(http.StatusConflict, status)

	status, body = s.get("/api/v1/apis/" + apiID + "/reviews")
	s.Require().Equal(http.StatusOK, status)
	var summary struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(body.Summary, &summary))
	s.Equal(5.0, summary.Average)
	s.Equal(1, summary.Count)

	favorite := dto.AddFavoriteRequest{DeveloperAddress: developer, APIID: apiID}
	status, _ = s.send(http.MethodPost, "/api/v1/favorites", "", favorite)
	s.Equal(http.StatusCreated, status)
	status, _ = s.send(http.MethodPost, "/api/v1/favorites", "", favorite)
	s.Equal(http.StatusConflict, status)

	status, body = s.get("/api/v1/favorites?developerAddress=" + developer)
	s.Require().Equal(http.StatusOK, status)
	var favorites []json.RawMessage
	s.Require().NoError(json.Unmarshal(body.Data, &favorites))
	s.Len(favorites, 1)

	status, _ = s.send(http.MethodDelete, "/api/v1/favorites/"+apiID+"?developerAddress="+developer, "", nil)
	s.Equal(http.StatusOK, status)
	status, _ = s.send(http.MethodDelete, "/api/v1/favorites/"+apiID+"?developerAddress="+developer, "", nil)
	s.Equal(http.StatusNotFound, status)
}
