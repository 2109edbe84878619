// internal/tests/admin_test.go
package tests

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"

	"github.com/soutech/shop-backend/internal/models"
)

func (suite *APITestSuite) TestAdminProductLifecycle() {
	token := suite.adminToken()
	id := suite.createProductAsAdmin(token, "CLP-01", 1250.5)

	w := suite.request(http.MethodPost, "/admin/products", map[string]interface{}{
		"name": "Duplicate", "sku": "CLP-01", "price": 1,
	}, token)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPut, fmt.Sprintf("/admin/products/%d", id), map[string]interface{}{
		"name": "CLP compacto", "sku": "CLP-01", "price": 999.9, "active": false, "tags": []string{"plc"},
	}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated := suite.data(w)
	suite.Equal(false, updated["active"])
	suite.Equal([]interface{}{"plc"}, updated["tags"])

	// Inactive products leave the public catalog but stay in the admin list.
	w = suite.request(http.MethodGet, "/products", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "CLP-01")

	w = suite.request(http.MethodGet, "/admin/products", nil, token)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "CLP-01")

	w = suite.request(http.MethodDelete, fmt.Sprintf("/admin/products/%d", id), nil, token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/admin/products/%d", id), nil, token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestPublicCatalogFilters() {
	token := suite.adminToken()
	suite.createProductAsAdmin(token, "SNS-10", 10)
	suite.createProductAsAdmin(token, "RLY-20", 20)

	w := suite.request(http.MethodGet, "/products?q=sns", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "SNS-10")
	suite.NotContains(w.Body.String(), "RLY-20")
}

func (suite *APITestSuite) TestAdminUsers() {
	token := suite.adminToken()

	w := suite.request(http.MethodPost, "/admin/users", map[string]interface{}{
		"name": "Operador", "email": "op@example.com", "password": "secret1", "is_admin": false,
	}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	userID := uint(suite.data(w)["id"].(float64))

	w = suite.request(http.MethodPatch, fmt.Sprintf("/admin/users/%d", userID), map[string]interface{}{"toggle_admin": true}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(true, suite.data(w)["is_admin"])

	w = suite.request(http.MethodPatch, "/admin/users/9999", map[string]interface{}{"toggle_admin": true}, token)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/admin/users", nil, token)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "op@example.com")
	suite.NotContains(w.Body.String(), "password")
}

func (suite *APITestSuite) TestAdminOrders() {
	token := suite.adminToken()
	order := &models.Order{Status: models.OrderStatusCreated, CustomerEmail: "a@example.com", TotalAmount: 5,
		Items: []models.OrderItem{{ProductID: 1, Name: "X", SKU: "X", UnitPrice: 5, Quantity: 1}}}
	suite.Require().NoError(suite.db.Create(order).Error)

	w := suite.request(http.MethodGet, "/admin/orders", nil, token)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "a@example.com")

	w = suite.request(http.MethodGet, fmt.Sprintf("/admin/orders/%d", order.ID), nil, token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/admin/orders/%d", order.ID), nil, token)
	suite.Equal(http.StatusOK, w.Code)

	var items int64
	suite.Require().NoError(suite.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	suite.Zero(items)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/admin/orders/%d", order.ID), nil, token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestAdminMutationsAreAudited() {
	token := suite.adminToken()

	w := suite.request(http.MethodPost, "/admin/users", map[string]interface{}{
		"name": "Auditado", "email": "audit@example.com", "password": "secret1",
	}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var logs []models.AuditLog
	suite.Require().NoError(suite.db.Find(&logs).Error)
	suite.Require().Len(logs, 1)
	suite.Equal("users", logs[0].ResourceType)
	suite.Equal(http.StatusCreated, logs[0].StatusCode)
	suite.Equal("[REDACTED]", logs[0].NewValues["password"])
	suite.Equal("audit@example.com", logs[0].NewValues["email"])
	suite.Require().NotNil(logs[0].UserID)
}

func (suite *APITestSuite) TestUploadProductImageLocally() {
	token := suite.adminToken()
	id := suite.createProductAsAdmin(token, "IMG-1", 10)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngData bytes.Buffer
	suite.Require().NoError(png.Encode(&pngData, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "sensor.png")
	suite.Require().NoError(err)
	_, err = part.Write(pngData.Bytes())
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/admin/products/%d/image", id), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := suite.serve(req)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var product models.Product
	suite.Require().NoError(suite.db.First(&product, id).Error)
	suite.Contains(product.ImageURL, "/uploads/products/")

	served := suite.request(http.MethodGet, product.ImageURL, nil, "")
	suite.Equal(http.StatusOK, served.Code)
}

func (suite *APITestSuite) TestAdminDashboardAndAuditLogs() {
	token := suite.adminToken()
	suite.createProductAsAdmin(token, "DASH-1", 10)

	w := suite.request(http.MethodGet, "/admin/dashboard", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	stats := suite.data(w)
	suite.Equal(float64(1), stats["total_users"])
	suite.Equal(float64(1), stats["active_products"])

	w = suite.request(http.MethodGet, "/admin/audit-logs?resource_type=products", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("1", w.Header().Get("X-Total-Count"))
	suite.Contains(w.Body.String(), "POST /admin/products")
}
