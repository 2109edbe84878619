// internal/services/product_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewProductService(suite.db)
}

func boolPtr(b bool) *bool { return &b }

func (suite *ProductServiceTestSuite) create(req ProductRequest) *models.Product {
	product, err := suite.service.CreateProduct(&req)
	require.NoError(suite.T(), err)
	return product
}

func (suite *ProductServiceTestSuite) TestCreateProductDefaults() {
	product := suite.create(ProductRequest{
		Name:  "Relé 24V",
		SKU:   " RL-24 ",
		Price: 19.99,
		Tags:  []string{"automacao", "rele"},
	})

	assert.Equal(suite.T(), "RL-24", product.SKU)
	assert.True(suite.T(), product.Active)

	stored, err := suite.service.GetProduct(product.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"automacao", "rele"}, stored.TagList())
	assert.Equal(suite.T(), "automacao,rele", stored.Tags)
	assert.InDelta(suite.T(), 19.99, stored.Price, 0.001)
}

func (suite *ProductServiceTestSuite) TestCreateInactiveProduct() {
	product := suite.create(ProductRequest{Name: "CLP", SKU: "CLP-1", Price: 10, Active: boolPtr(false)})

	stored, err := suite.service.GetProduct(product.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), stored.Active)
}

func (suite *ProductServiceTestSuite) TestDuplicateSKU() {
	suite.create(ProductRequest{Name: "A", SKU: "X1", Price: 1})

	_, err := suite.service.CreateProduct(&ProductRequest{Name: "B", SKU: "X1", Price: 2})
	assert.ErrorIs(suite.T(), err, ErrDuplicateSKU)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct() {
	a := suite.create(ProductRequest{Name: "A", SKU: "A1", Price: 1})
	b := suite.create(ProductRequest{Name: "B", SKU: "B1", Price: 2})

	// Keeping its own SKU is not a collision.
	updated, err := suite.service.UpdateProduct(a.ID, &ProductRequest{
		Name: "A v2", SKU: "A1", Price: 1.5, Category: "sensores", Active: boolPtr(false),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "A v2", updated.Name)
	assert.Equal(suite.T(), "sensores", updated.Category)
	assert.False(suite.T(), updated.Active)

	_, err = suite.service.UpdateProduct(a.ID, &ProductRequest{Name: "A", SKU: "B1", Price: 1})
	assert.ErrorIs(suite.T(), err, ErrDuplicateSKU)

	_, err = suite.service.UpdateProduct(9999, &ProductRequest{Name: "Z", SKU: "Z1", Price: 1})
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	stored, err := suite.service.GetProduct(b.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "B1", stored.SKU)
}

func (suite *ProductServiceTestSuite) TestValidation() {
	_, err := suite.service.CreateProduct(&ProductRequest{Name: " ", SKU: "X", Price: -1})
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	product := suite.create(ProductRequest{Name: "A", SKU: "A1", Price: 1})

	require.NoError(suite.T(), suite.service.DeleteProduct(product.ID))
	_, err := suite.service.GetProduct(product.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	assert.ErrorIs(suite.T(), suite.service.DeleteProduct(product.ID), ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestListActiveFilters() {
	rele := suite.create(ProductRequest{Name: "Relé Industrial", SKU: "RL-01", Price: 1, Category: "reles"})
	sensor := suite.create(ProductRequest{Name: "Sensor Indutivo", SKU: "SN-01", Price: 2, Category: "sensores"})
	suite.create(ProductRequest{Name: "Sensor Antigo", SKU: "SN-00", Price: 2, Category: "sensores", Active: boolPtr(false)})

	all, err := suite.service.ListActive(ProductFilter{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, 2)
	assert.Equal(suite.T(), sensor.ID, all[0].ID)
	assert.Equal(suite.T(), rele.ID, all[1].ID)

	byName, err := suite.service.ListActive(ProductFilter{Query: "SENSOR"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), byName, 1)
	assert.Equal(suite.T(), sensor.ID, byName[0].ID)

	bySKU, err := suite.service.ListActive(ProductFilter{Query: "rl-"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), bySKU, 1)
	assert.Equal(suite.T(), rele.ID, bySKU[0].ID)

	byCategory, err := suite.service.ListActive(ProductFilter{Category: "sensores"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), byCategory, 1)
	assert.Equal(suite.T(), sensor.ID, byCategory[0].ID)

	none, err := suite.service.ListActive(ProductFilter{Query: "motor"})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)
	assert.NotNil(suite.T(), none)
}

func (suite *ProductServiceTestSuite) TestListAllNewestFirst() {
	old := suite.create(ProductRequest{Name: "Old", SKU: "O1", Price: 1, Active: boolPtr(false)})
	recent := suite.create(ProductRequest{Name: "New", SKU: "N1", Price: 1})
	suite.db.Model(old).Update("created_at", time.Now().Add(-time.Hour))

	products, total, err := suite.service.ListAll(nil)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 2, total)
	require.Len(suite.T(), products, 2)
	assert.Equal(suite.T(), recent.ID, products[0].ID)
	assert.Equal(suite.T(), old.ID, products[1].ID)

	page, _, err := suite.service.ListAll(&utils.PaginationParams{Page: 1, Limit: 1})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), page, 1)
	assert.Equal(suite.T(), recent.ID, page[0].ID)
}

func (suite *ProductServiceTestSuite) TestSetImageURL() {
	product := suite.create(ProductRequest{Name: "A", SKU: "A1", Price: 1})

	updated, err := suite.service.SetImageURL(product.ID, "/uploads/products/a.png")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/uploads/products/a.png", updated.ImageURL)

	_, err = suite.service.SetImageURL(9999, "x")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
