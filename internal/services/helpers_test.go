// internal/services/helpers_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/database"
	"github.com/soutech/shop-backend/internal/gateway"
	"github.com/soutech/shop-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func createProduct(t *testing.T, db *gorm.DB, sku string, price float64, active bool) *models.Product {
	t.Helper()

	product := &models.Product{Name: "Product " + sku, SKU: sku, Price: price, Active: active}
	require.NoError(t, db.Create(product).Error)
	return product
}

type mockGateway struct {
	mock.Mock
}

var _ gateway.PaymentGateway = (*mockGateway)(nil)

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
