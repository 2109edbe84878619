// internal/services/product_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

// ProductService is the catalog.
type ProductService struct {
	db *gorm.DB
}

type ProductRequest struct {
	Name     string   `json:"name" validate:"required,not_blank,max=255"`
	SKU      string   `json:"sku" validate:"required,not_blank,max=120"`
	Price    float64  `json:"price" validate:"gte=0"`
	Category string   `json:"category" validate:"max=120"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url" validate:"max=500"`
	Active   *bool    `json:"active"` // defaults to true
}

type ProductFilter struct {
	Query    string
	Category string
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ListActive returns active products, newest first. Query matches name or
// SKU as a case-insensitive substring; Category must match exactly.
func (s *ProductService) ListActive(filter ProductFilter) ([]models.Product, error) {
	query := s.db.Where("active = ?", true)

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	products := make([]models.Product, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, internalError("failed to list products", err)
	}
	return products, nil
}

// ListAll includes inactive products. A nil params returns everything.
func (s *ProductService) ListAll(params *utils.PaginationParams) ([]models.Product, int64, error) {
	var total int64
	if err := s.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, internalError("failed to count products", err)
	}

	query := s.db.Order("created_at DESC, id DESC")
	if params != nil {
		query = utils.ApplyPagination(query, *params)
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, internalError("failed to list products", err)
	}
	return products, total, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "product not found", err)
		}
		return nil, internalError("database error", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewError(KindValidation, "validation failed", err)
	}

	sku := strings.TrimSpace(req.SKU)
	if err := s.checkSKU(sku, 0); err != nil {
		return nil, err
	}

	product := &models.Product{SKU: sku}
	applyProductRequest(product, req)

	if err := s.db.Create(product).Error; err != nil {
		return nil, internalError("failed to create product", err)
	}
	return product, nil
}

// UpdateProduct replaces every editable field.
func (s *ProductService) UpdateProduct(id uint, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewError(KindValidation, "validation failed", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if err := s.checkSKU(sku, id); err != nil {
		return nil, err
	}

	product.SKU = sku
	applyProductRequest(product, req)

	if err := s.db.Save(product).Error; err != nil {
		return nil, internalError("failed to update product", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return internalError("failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewError(KindNotFound, "product not found", nil)
	}
	return nil
}

func (s *ProductService) SetImageURL(id uint, imageURL string) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	product.ImageURL = imageURL
	if err := s.db.Model(product).Update("image_url", imageURL).Error; err != nil {
		return nil, internalError("failed to update product image", err)
	}
	return product, nil
}

// checkSKU rejects a SKU already used by a product other than exceptID.
func (s *ProductService) checkSKU(sku string, exceptID uint) error {
	query := s.db.Model(&models.Product{}).Where("sku = ?", sku)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return internalError("database error", err)
	}
	if count > 0 {
		return ErrDuplicateSKU
	}
	return nil
}

func applyProductRequest(product *models.Product, req *ProductRequest) {
	product.Name = strings.TrimSpace(req.Name)
	product.Price = req.Price
	product.Category = strings.TrimSpace(req.Category)
	product.SetTags(req.Tags)
	product.ImageURL = strings.TrimSpace(req.ImageURL)
	product.Active = req.Active == nil || *req.Active
}
