package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// ProductRepository defines the interface for reward catalog operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, executor SQLExecutor, product *models.ProductDetail) (int64, error)
	GetProductByID(ctx context.Context, id int64) (*models.ProductDetail, error)
	GetProductByName(ctx context.Context, name string) (*models.ProductDetail, error)
	GetProducts(ctx context.Context, searchTerm string, page, pageSize int) ([]models.ProductDetail, int, error)
	UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.ProductDetail) error
	UpdateProductImage(ctx context.Context, executor SQLExecutor, id int64, fileName string) error
	DeleteProduct(ctx context.Context, executor SQLExecutor, id int64) error
	// UpdateStock adds quantityChange to the stock as long as the result
	// stays non-negative. It returns the new level, or ErrConditionFailed
	// when the stock would go negative.
	UpdateStock(ctx context.Context, executor SQLExecutor, id int64, quantityChange int) (int, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]models.ProductDetail, error)
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, product_name, description, leaves, stock, image, created_at, updated_at`

func scanProduct(row scanner, extra ...interface{}) (*models.ProductDetail, error) {
	var p models.ProductDetail
	var image sql.NullString
	dest := []interface{}{&p.ID, &p.ProductName, &p.Description, &p.Leaves, &p.Stock, &image, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if image.Valid {
		p.Image = &image.String
	}
	return &p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, executor SQLExecutor, product *models.ProductDetail) (int64, error) {
	query := `INSERT INTO product_details (product_name, description, leaves, stock, image, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	currentTime := time.Now()
	product.CreatedAt, product.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		product.ProductName, product.Description, product.Leaves, product.Stock, product.Image,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, translateError(err, "creating product")
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.ProductDetail, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product_details WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting product by ID %d", id))
	}
	return product, nil
}

func (r *productRepository) GetProductByName(ctx context.Context, name string) (*models.ProductDetail, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product_details WHERE product_name = $1`, name))
	if err != nil {
		return nil, translateError(err, "getting product by name")
	}
	return product, nil
}

func (r *productRepository) GetProducts(ctx context.Context, searchTerm string, page, pageSize int) ([]models.ProductDetail, int, error) {
	products := []models.ProductDetail{}
	totalCount := 0

	var qb queryBuilder
	if searchTerm != "" {
		qb.add("(LOWER(product_name) LIKE ? OR LOWER(description) LIKE ?)", likePattern(searchTerm))
	}
	query := `SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count FROM product_details` +
		qb.where() + ` ORDER BY product_name ASC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying products")
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.ProductDetail) error {
	query := `UPDATE product_details SET product_name = $1, description = $2, leaves = $3, stock = $4, updated_at = $5
	          WHERE id = $6`
	product.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query,
		product.ProductName, product.Description, product.Leaves, product.Stock, product.UpdatedAt, product.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating product ID %d", product.ID))
	}
	return requireAffected(result, "updating product")
}

func (r *productRepository) UpdateProductImage(ctx context.Context, executor SQLExecutor, id int64, fileName string) error {
	result, err := executor.ExecContext(ctx, `UPDATE product_details SET image = $1, updated_at = $2 WHERE id = $3`, fileName, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating image for product ID %d", id))
	}
	return requireAffected(result, "updating product image")
}

func (r *productRepository) DeleteProduct(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM product_details WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting product ID %d", id))
	}
	return requireAffected(result, "deleting product")
}

func (r *productRepository) UpdateStock(ctx context.Context, executor SQLExecutor, id int64, quantityChange int) (int, error) {
	var newStock int
	query := `UPDATE product_details
	          SET stock = stock + $1, updated_at = $2
	          WHERE id = $3 AND stock + $1 >= 0
	          RETURNING stock`
	err := executor.QueryRowContext(ctx, query, quantityChange, time.Now(), id).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, translateError(err, fmt.Sprintf("updating stock for product ID %d", id))
	}

	var exists int
	checkErr := executor.QueryRowContext(ctx, `SELECT 1 FROM product_details WHERE id = $1`, id).Scan(&exists)
	if errors.Is(checkErr, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if checkErr != nil {
		return 0, translateError(checkErr, fmt.Sprintf("checking product ID %d", id))
	}
	return 0, ErrConditionFailed
}

func (r *productRepository) SearchProducts(ctx context.Context, term string, limit int) ([]models.ProductDetail, error) {
	query := `SELECT ` + productColumns + ` FROM product_details
	          WHERE product_name ILIKE $1 OR description ILIKE $1
	          ORDER BY product_name ASC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, likePattern(term), limit)
	if err != nil {
		return nil, translateError(err, "searching products")
	}
	defer rows.Close()

	products := []models.ProductDetail{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}
