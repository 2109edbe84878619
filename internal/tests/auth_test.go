// internal/tests/auth_test.go
package tests

import (
	"net/http"
)

func (suite *APITestSuite) TestSignupLoginAndMe() {
	suite.signup("Maria Souza", " Maria@Example.com ", "secret1")

	token := suite.login("maria@example.com", "secret1")

	w := suite.request(http.MethodGet, "/auth/me", nil, token)
	suite.Equal(http.StatusOK, w.Code)
	me := suite.data(w)
	suite.Equal("maria@example.com", me["email"])
	suite.Equal(false, me["is_admin"])
	suite.NotContains(me, "password_hash")
}

func (suite *APITestSuite) TestSignupDuplicateEmail() {
	suite.signup("Maria", "maria@example.com", "secret1")

	w := suite.request(http.MethodPost, "/auth/signup", map[string]interface{}{
		"name":     "Outra Maria",
		"email":    "MARIA@example.com",
		"password": "secret2",
	}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	suite.Equal(false, response["success"])
	suite.Equal("DUPLICATE_EMAIL", response["error"].(map[string]interface{})["code"])
}

func (suite *APITestSuite) TestLoginWrongPasswordAndUnknownEmailLookAlike() {
	suite.signup("Maria", "maria@example.com", "secret1")

	wrong := suite.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"email": "maria@example.com", "password": "nope!!",
	}, "")
	unknown := suite.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"email": "ghost@example.com", "password": "secret1",
	}, "")

	suite.Equal(http.StatusUnauthorized, wrong.Code)
	suite.Equal(http.StatusUnauthorized, unknown.Code)
	suite.JSONEq(wrong.Body.String(), unknown.Body.String())
}

func (suite *APITestSuite) TestMeRequiresBearerToken() {
	w := suite.request(http.MethodGet, "/auth/me", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/auth/me", nil, "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestAdminRoutesRequireAdmin() {
	suite.signup("Cliente", "cliente@example.com", "secret1")
	token := suite.login("cliente@example.com", "secret1")

	w := suite.request(http.MethodGet, "/admin/products", nil, token)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodGet, "/admin/products", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestHealth() {
	suite.gateway.On("Configured").Return(true)

	w := suite.request(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true,"payment_configured":true,"base_url":"https://shop.example.com"}`, w.Body.String())
	suite.NotEmpty(w.Header().Get("X-Request-ID"))
}
