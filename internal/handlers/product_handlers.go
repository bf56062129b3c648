package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the reward catalog under /eco.
type ProductHandler struct {
	productService services.ProductService
	files          FileResolver
}

func NewProductHandler(ps services.ProductService, files FileResolver) *ProductHandler {
	return &ProductHandler{productService: ps, files: files}
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	var filter services.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.productService.GetProducts(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetProducts: Error from productService.GetProducts")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetProductByID: Error from productService.GetProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateProduct: Error from productService.CreateProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateProduct: Error from productService.UpdateProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeleteProduct: Error from productService.DeleteProduct")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Product deleted successfully")
}

func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	fh, ok := uploadedFile(c, "image")
	if !ok {
		return
	}
	product, err := h.productService.UploadProductImage(c.Request.Context(), id, fh)
	if err != nil {
		respondServiceError(c, err, "UploadProductImage: Error from productService.UploadProductImage")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ServeProductImage(c *gin.Context) {
	serveFile(c, h.files, storage.ProductImages)
}
