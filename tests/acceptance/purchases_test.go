//go:build acceptance

package acceptance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type purchaseFixtures struct {
	activePayment  string
	expiredPayment string
}

// seedPurchases creates one active purchase, one spent purchase, an orphaned
// payment and a pending payment for the test developer.
func (s *Suite) seedPurchases() purchaseFixtures {
	providerID := s.insertProvider("0x00000000000000000000000000000000000000a1", true)
	weather := s.insertAPI(providerID, "Weather", true)
	maps := s.insertAPI(providerID, "Maps", true)

	now := time.Now()
	active := s.insertPayment(paymentFixture{apiID: &weather, amount: "10.50", verified: true, created: now.Add(-time.Hour)})
	s.insertToken(active, false, now.Add(24*time.Hour))
	s.insertToken(active, true, now.Add(24*time.Hour))
	s.insertToken(active, false, now.Add(-time.Hour))

	expired := s.insertPayment(paymentFixture{apiID: &maps, amount: "3.25", verified: true, created: now.Add(-2 * time.Hour)})
	s.insertToken(expired, false, now.Add(-time.Minute))

	s.insertPayment(paymentFixture{amount: "99", verified: true, created: now.Add(-3 * time.Hour)})
	s.insertPayment(paymentFixture{apiID: &weather, amount: "1", status: "pending", created: now.Add(-4 * time.Hour)})

	return purchaseFixtures{activePayment: active, expiredPayment: expired}
}

func (s *Suite) TestPurchasedAPIs() {
	fx := s.seedPurchases()

	status, body := s.get("/api/v1/developers/purchased-apis?developerAddress=" + "0x00000000000000000000000000000000000000D1")
	s.Require().Equal(http.StatusOK, status)
	s.True(body.Success)

	var purchases []struct {
		PaymentID string `json:"paymentId"`
		Status    string `json:"status"`
		Tokens    struct {
			Total, Active, Used, Expired int
		} `json:"tokens"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &purchases))
	s.Require().Len(purchases, 2, "orphaned and pending payments are not purchases")

	s.Equal(fx.activePayment, purchases[0].PaymentID)
	s.Equal("active", purchases[0].Status)
	s.Equal(3, purchases[0].Tokens.Total)
	s.Equal(1, purchases[0].Tokens.Active)
	s.Equal(1, purchases[0].Tokens.Used)
	s.Equal(1, purchases[0].Tokens.Expired)

	s.Equal(fx.expiredPayment, purchases[1].PaymentID)
	s.Equal("expired", purchases[1].Status)

	var summary map[string]float64
	s.Require().NoError(json.Unmarshal(body.Summary, &summary))
	s.Equal(2.0, summary["totalAPIsPurchased"])
	s.Equal(4.0, summary["totalTokensPurchased"])
	s.Equal(13.75, summary["totalSpent"])
	s.Equal(1.0, summary["activePurchases"])

	s.Require().NotNil(body.Pagination)
	s.Equal(10, body.Pagination.Limit)
}

func (s *Suite) TestPurchasedAPIs_StatusFilters() {
	fx := s.seedPurchases()
	base := "/api/v1/developers/purchased-apis?developerAddress=" + developer

	var purchases []struct {
		PaymentID string `json:"paymentId"`
	}

	status, body := s.get(base + "&status=active")
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body.Data, &purchases))
	s.Require().Len(purchases, 1)
	s.Equal(fx.activePayment, purchases[0].PaymentID)
	s.Equal(1, body.Pagination.Total)

	purchases = nil
	status, body = s.get(base + "&status=expired")
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body.Data, &purchases))
	s.Require().Len(purchases, 1)
	s.Equal(fx.expiredPayment, purchases[0].PaymentID)
}

func (s *Suite) TestPurchasedAPIs_Validation() {
	status, body := s.get("/api/v1/developers/purchased-apis")
	s.Equal(http.StatusBadRequest, status)
	s.False(body.Success)
	s.NotEmpty(body.Error)

	status, _ = s.get("/api/v1/developers/purchased-apis?developerAddress=" + developer + "&status=bogus")
	s.Equal(http.StatusBadRequest, status)
}

func (s *Suite) TestPaymentHistory() {
	s.seedPurchases()
	base := "/api/v1/payments/history?developerAddress=" + developer

	status, body := s.get(base)
	s.Require().Equal(http.StatusOK, status)

	var history []struct {
		Status string           `json:"status"`
		API    *json.RawMessage `json:"api"`
	}
	s.Require().NoError(json.Unmarshal(body.Data, &history))
	s.Len(history, 4)
	s.Equal(4, body.Pagination.Total)
	s.Equal(20, body.Pagination.Limit)
	s.Nil(history[2].API, "orphaned payment keeps a null api")

	history = nil
	status, body = s.get(base + "&status=pending")
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body.Data, &history))
	s.Require().Len(history, 1)
	s.Equal("pending", history[0].Status)
}

func (s *Suite) TestPaymentRejectsMixedCaseDeveloper() {
	_, err := s.Postgres.DB.Exec(`
		INSERT INTO payments (id, developer_address, transaction_hash, amount, currency, number_of_tokens)
		VALUES ($1, $2, $3, 1, 'ETH', 1)`,
		uuid.New().String(), "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0xmixed",
	)
	s.Require().Error(err, "lowercase lookups would never find a mixed-case row")
	s.Contains(err.Error(), "check constraint")
}
