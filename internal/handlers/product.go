// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListActive(services.ProductFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /admin/products
func (h *ProductHandler) AdminListProducts(c *gin.Context) {
	params, paginated := utils.GetPaginationParams(c)
	if !paginated {
		products, _, err := h.productService.ListAll(nil)
		if err != nil {
			respondError(c, err, "")
			return
		}
		utils.SuccessResponse(c, products)
		return
	}

	products, total, err := h.productService.ListAll(&params)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// GET /admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"ok":      true,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyProductDeleted),
	})
}

// POST /admin/products/:id/image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageInvalid), err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageInvalid), err.Error())
		return
	}
	defer file.Close()

	product, result, err := h.storageService.UploadProductImage(c.Request.Context(), id, services.ImageUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		if services.KindOf(err) == services.KindValidation {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageInvalid), err.Error())
			return
		}
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductImageUploaded),
		"product": product,
		"file":    result,
	})
}
