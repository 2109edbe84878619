// internal/tests/checkout_test.go
package tests

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/gateway"
	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/router"
)

// createProductAsAdmin creates a product through the admin API and returns its id.
func (suite *APITestSuite) createProductAsAdmin(token, sku string, price float64) uint {
	w := suite.request(http.MethodPost, "/admin/products", map[string]interface{}{
		"name":     "Sensor " + sku,
		"sku":      sku,
		"price":    price,
		"category": "sensores",
		"tags":     []string{"industrial", "24v"},
	}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return uint(suite.data(w)["id"].(float64))
}

func (suite *APITestSuite) TestCheckoutAndWebhookFlow() {
	adminToken := suite.adminToken()
	productID := suite.createProductAsAdmin(adminToken, "X1", 19.99)

	suite.signup("Joao", "joao@example.com", "secret1")
	token := suite.login("joao@example.com", "secret1")

	suite.gateway.On("Configured").Return(true)
	suite.gateway.On("CreatePreference", mock.Anything, mock.MatchedBy(func(pref *gateway.Preference) bool {
		return len(pref.Items) == 1 &&
			pref.Items[0].Quantity == 3 &&
			pref.Items[0].UnitPrice == 19.99 &&
			pref.Payer.Email == "joao@example.com" &&
			pref.NotificationURL == "https://shop.example.com/webhooks/mp" &&
			pref.BackURLs.Success == "https://shop.example.com/checkout/success"
	})).Return(&gateway.PreferenceResult{ID: "pref-1", CheckoutURL: "https://mp.example.com/init?pref=pref-1"}, nil).Once()

	w := suite.request(http.MethodPost, "/checkout", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 3}},
	}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	result := suite.data(w)
	suite.Equal("https://mp.example.com/init?pref=pref-1", result["checkout_url"])
	orderID := uint(result["order_id"].(float64))

	var order models.Order
	suite.Require().NoError(suite.db.Preload("Items").First(&order, orderID).Error)
	suite.InDelta(59.97, order.TotalAmount, 0.001)
	suite.Equal(models.OrderStatusCreated, order.Status)
	suite.Equal("pref-1", order.MPPreferenceID)
	suite.Len(order.Items, 1)

	ref := strconv.FormatUint(uint64(orderID), 10)
	suite.gateway.On("FetchPayment", mock.Anything, "555").
		Return(&gateway.Payment{ID: "555", Status: "approved", ExternalReference: ref}, nil).Twice()

	for i := 0; i < 2; i++ {
		w = suite.request(http.MethodPost, "/webhooks/mp", []byte(`{"type":"payment","data":{"id":"555"}}`), "")
		suite.Equal(http.StatusOK, w.Code)
		suite.JSONEq(`{"ok":true}`, w.Body.String())

		suite.Require().NoError(suite.db.First(&order, orderID).Error)
		suite.Equal(models.OrderStatusApproved, order.Status)
		suite.Equal("555", order.MPPaymentID)
	}

	w = suite.request(http.MethodGet, "/orders/mine", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"status":"approved"`)

	suite.gateway.AssertExpectations(suite.T())
}

func (suite *APITestSuite) TestCheckoutRejectsBadCarts() {
	adminToken := suite.adminToken()
	productID := suite.createProductAsAdmin(adminToken, "X1", 19.99)
	suite.gateway.On("Configured").Return(true)

	cases := map[string]struct {
		items []map[string]interface{}
		code  string
	}{
		"empty cart":        {items: []map[string]interface{}{}, code: "EMPTY_CART"},
		"unknown product":   {items: []map[string]interface{}{{"product_id": 999, "quantity": 1}}, code: "INVALID_ITEM"},
		"zero quantity":     {items: []map[string]interface{}{{"product_id": productID, "quantity": 0}}, code: "INVALID_QUANTITY"},
		"negative quantity": {items: []map[string]interface{}{{"product_id": productID, "quantity": -2}}, code: "INVALID_QUANTITY"},
	}

	for name, tc := range cases {
		suite.Run(name, func() {
			w := suite.request(http.MethodPost, "/checkout", map[string]interface{}{"items": tc.items}, adminToken)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
			suite.Equal(tc.code, suite.decode(w)["error"].(map[string]interface{})["code"])
		})
	}

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Order{}).Count(&count).Error)
	suite.Zero(count)
	suite.gateway.AssertNotCalled(suite.T(), "CreatePreference", mock.Anything, mock.Anything)
}

func (suite *APITestSuite) TestCheckoutGatewayFailureKeepsOrder() {
	adminToken := suite.adminToken()
	productID := suite.createProductAsAdmin(adminToken, "X1", 10)

	suite.gateway.On("Configured").Return(true)
	suite.gateway.On("CreatePreference", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider said 401 with secret details")).Once()

	w := suite.request(http.MethodPost, "/checkout", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 1}},
	}, adminToken)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "secret details")

	var orders []models.Order
	suite.Require().NoError(suite.db.Find(&orders).Error)
	suite.Require().Len(orders, 1)
	suite.Equal(models.OrderStatusCreated, orders[0].Status)
	suite.Empty(orders[0].MPPreferenceID)
}

func (suite *APITestSuite) TestCheckoutRequiresAuth() {
	w := suite.request(http.MethodPost, "/checkout", map[string]interface{}{"items": []interface{}{}}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestRedirectReturnReconcilesAndRendersPage() {
	order := &models.Order{Status: "created", CustomerEmail: "a@example.com", TotalAmount: 10}
	suite.Require().NoError(suite.db.Create(order).Error)

	suite.gateway.On("FetchPayment", mock.Anything, "777").
		Return(&gateway.Payment{ID: "777", Status: "approved", ExternalReference: "999"}, nil).Once()

	path := fmt.Sprintf("/checkout/result?payment_id=777&external_reference=%d&status=pending", order.ID)
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	suite.Contains(w.Body.String(), "Payment approved")

	suite.Require().NoError(suite.db.First(order, order.ID).Error)
	suite.Equal(models.OrderStatusApproved, order.Status)
	suite.Equal("777", order.MPPaymentID)
}

func (suite *APITestSuite) TestRedirectFetchFailureFallsBackToQueryStatus() {
	suite.gateway.On("FetchPayment", mock.Anything, "888").Return(nil, errors.New("timeout")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/checkout/result?collection_id=888&collection_status=rejected", nil)
	req.Header.Set("Accept-Language", "en")
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Payment not completed")
}

func (suite *APITestSuite) TestStaticOutcomePages() {
	for path, text := range map[string]string{
		"/checkout/success": "Pagamento aprovado",
		"/checkout/pending": "Pagamento pendente",
		"/checkout/failure": "Pagamento n",
	} {
		w := suite.request(http.MethodGet, path, nil, "")
		suite.Equal(http.StatusOK, w.Code, path)
		suite.Contains(w.Body.String(), text, path)
		suite.Contains(w.Body.String(), `http-equiv="refresh"`, path)
	}
}

func (suite *APITestSuite) TestWebhookEdgeCases() {
	suite.gateway.On("FetchPayment", mock.Anything, "404").Return(nil, errors.New("not found")).Once()

	w := suite.request(http.MethodPost, "/webhooks/mp", []byte(`not json`), "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())

	w = suite.request(http.MethodPost, "/webhooks/mp", []byte(`{"type":"merchant_order","data":{"id":"1"}}`), "")
	suite.JSONEq(`{"ok":true}`, w.Body.String())

	w = suite.request(http.MethodPost, "/webhooks/mp?id=404", []byte(`{"topic":"payment"}`), "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":false,"detail":"payment fetch failed"}`, w.Body.String())

	suite.gateway.AssertNumberOfCalls(suite.T(), "FetchPayment", 1)
}

func (suite *APITestSuite) TestWebhookIgnoresGeneralRateLimit() {
	suite.cfg.RateLimit = config.RateLimitConfig{GeneralPerSecond: 10, GeneralBurst: 20, AuthPerMinute: 10, AuthBurst: 5}
	suite.router = router.Initialize(suite.db, suite.cfg, router.WithGateway(suite.gateway))

	for i := 0; i < 40; i++ {
		w := suite.request(http.MethodPost, "/webhooks/mp", []byte(`{"type":"merchant_order"}`), "")
		suite.Require().Equal(http.StatusOK, w.Code, "notification %d", i)
		suite.JSONEq(`{"ok":true}`, w.Body.String())
	}

	limited := 0
	for i := 0; i < 40; i++ {
		w := suite.request(http.MethodGet, "/products", nil, "")
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	suite.Positive(limited)
}

func (suite *APITestSuite) TestWebhookRejectsOversizedBody() {
	body := fmt.Sprintf(`{"type":"payment","data":{"id":"77"},"padding":"%s"}`, strings.Repeat("x", 70<<10))

	w := suite.request(http.MethodPost, "/webhooks/mp", []byte(body), "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())
	suite.gateway.AssertNotCalled(suite.T(), "FetchPayment", mock.Anything, "77")
}
