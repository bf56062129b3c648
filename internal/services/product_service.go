package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"
)

type ProductRequest struct {
	ProductName string `json:"product_name" binding:"required,max=255"`
	Description string `json:"description"`
	Leaves      int    `json:"leaves" binding:"gte=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
}

type ProductFilter struct {
	ListParams
	Search string `form:"search"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*models.ProductDetail, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductDetail, error)
	GetProducts(ctx context.Context, filter ProductFilter) (*ListResult, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*models.ProductDetail, error)
	UploadProductImage(ctx context.Context, id int64, fh *multipart.FileHeader) (*models.ProductDetail, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repositories.ProductRepository
	db          repositories.SQLExecutor
	files       FileStore
}

func NewProductService(productRepo repositories.ProductRepository, db repositories.SQLExecutor, files FileStore) ProductService {
	return &productService{productRepo: productRepo, db: db, files: files}
}

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest) (*models.ProductDetail, error) {
	product := &models.ProductDetail{
		ProductName: strings.TrimSpace(req.ProductName),
		Description: req.Description,
		Leaves:      req.Leaves,
		Stock:       req.Stock,
	}
	if _, err := s.productRepo.CreateProduct(ctx, s.db, product); err != nil {
		return nil, fmt.Errorf("creating product: %w", duplicateError(err))
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.ProductDetail, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *productService) GetProducts(ctx context.Context, filter ProductFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	products, total, err := s.productRepo.GetProducts(ctx, strings.TrimSpace(filter.Search), params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(products, total, params), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*models.ProductDetail, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ProductName = strings.TrimSpace(req.ProductName)
	product.Description = req.Description
	product.Leaves = req.Leaves
	product.Stock = req.Stock
	if err := s.productRepo.UpdateProduct(ctx, s.db, product); err != nil {
		return nil, duplicateError(mapNotFound(err, ErrProductNotFound))
	}
	return product, nil
}

func (s *productService) UploadProductImage(ctx context.Context, id int64, fh *multipart.FileHeader) (*models.ProductDetail, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.files.Save(storage.ProductImages, fh)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateProductImage(ctx, s.db, id, name); err != nil {
		_ = s.files.Remove(storage.ProductImages, name)
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	if product.Image != nil {
		if err := s.files.Remove(storage.ProductImages, *product.Image); err != nil {
			utils.LogWarn("Failed to remove old product image", map[string]interface{}{"product_id": id, "error": err.Error()})
		}
	}
	product.Image = &name
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, s.db, id); err != nil {
		return mapNotFound(err, ErrProductNotFound)
	}
	if product.Image != nil {
		if err := s.files.Remove(storage.ProductImages, *product.Image); err != nil {
			utils.LogWarn("Failed to remove product image", map[string]interface{}{"product_id": id, "error": err.Error()})
		}
	}
	return nil
}
