// internal/tests/suite_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/database"
	"github.com/soutech/shop-backend/internal/gateway"
	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/router"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePreference(ctx context.Context, pref *gateway.Preference) (*gateway.PreferenceResult, error) {
	args := m.Called(ctx, pref)
	if res, ok := args.Get(0).(*gateway.PreferenceResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	args := m.Called(ctx, paymentID)
	if p, ok := args.Get(0).(*gateway.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) Configured() bool {
	return m.Called().Bool(0)
}

// APITestSuite drives the full router against an in-memory database.
type APITestSuite struct {
	suite.Suite
	db      *gorm.DB
	cfg     *config.Config
	gateway *mockGateway
	router  *gin.Engine
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("pt_BR"))
}

func (suite *APITestSuite) SetupTest() {
	suite.cfg = &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			LogLevel:     "silent",
		},
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 60},
		Payment: config.PaymentConfig{
			Provider:           "mercadopago",
			MPAccessToken:      "TEST-token",
			BaseURL:            "https://shop.example.com",
			Currency:           "BRL",
			FallbackPayerEmail: "compras@soutechautomacao.com",
			Timeout:            5,
		},
		Storage:   config.StorageConfig{LocalDir: suite.T().TempDir(), MaxImageSize: 1 << 20},
		RateLimit: config.RateLimitConfig{GeneralPerSecond: 1000, GeneralBurst: 1000, AuthPerMinute: 1000, AuthBurst: 1000},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		I18n:      config.I18nConfig{DefaultLocale: "pt_BR"},
	}

	db, err := database.Initialize(suite.cfg.Database)
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db))
	suite.db = db

	suite.gateway = new(mockGateway)
	suite.router = router.Initialize(db, suite.cfg, router.WithGateway(suite.gateway))
}

func (suite *APITestSuite) TearDownTest() {
	database.Close(suite.db)
}

func (suite *APITestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func (suite *APITestSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	response := suite.decode(w)
	suite.Require().Equal(true, response["success"], w.Body.String())
	data, ok := response["data"].(map[string]interface{})
	suite.Require().True(ok, w.Body.String())
	return data
}

func (suite *APITestSuite) signup(name, email, password string) {
	w := suite.request(http.MethodPost, "/auth/signup", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *APITestSuite) login(email, password string) string {
	w := suite.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	token, _ := suite.data(w)["access_token"].(string)
	suite.Require().NotEmpty(token)
	return token
}

// adminToken signs up an account, promotes it and logs it in.
func (suite *APITestSuite) adminToken() string {
	suite.signup("Admin", "admin@soutech.com.br", "secret1")
	suite.Require().NoError(database.PromoteAdmin(suite.db, "admin@soutech.com.br"))
	return suite.login("admin@soutech.com.br", "secret1")
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (suite *APITestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}
