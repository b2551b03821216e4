package repositories

import (
	"context"

	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// Update replaces the row only when the stored version still matches
	// product.Version. Returns the number of rows affected so the caller
	// can tell a stale write from a vanished row.
	Update(ctx context.Context, product *models.Product) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListByType(ctx context.Context, productType models.ProductType, limit, offset int) ([]*models.Product, error)
	CountByType(ctx context.Context, productType models.ProductType) (int, error)
	List(ctx context.Context) ([]*models.Product, error)
	SetImageURL(ctx context.Context, id uuid.UUID, column, url string) (int64, error)
}

const productColumns = `id, product_type, name, description, category, sub_category,
		image_small, image_medium, image_large, price, date_added,
		isbn, author, year, publisher,
		brand, colour, size, gender, age_group, fashion_type,
		version, created_at, updated_at`

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, product_type, name, description, category, sub_category,
			image_small, image_medium, image_large, price, date_added,
			isbn, author, year, publisher,
			brand, colour, size, gender, age_group, fashion_type,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		product.ID, product.Type, product.Name, product.Description, product.Category, product.SubCategory,
		product.ImageSmall, product.ImageMedium, product.ImageLarge, product.Price, product.DateAdded,
		product.ISBN, product.Author, product.Year, product.Publisher,
		product.Brand, product.Colour, product.Size, product.Gender, product.AgeGroup, product.FashionType,
		product.Version)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	product := &models.Product{}
	err := scanProduct(r.db.QueryRow(ctx, query, id), product)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) (int64, error) {
	query := `
		UPDATE products
		SET product_type = $1, name = $2, description = $3, category = $4, sub_category = $5,
			image_small = $6, image_medium = $7, image_large = $8, price = $9, date_added = $10,
			isbn = $11, author = $12, year = $13, publisher = $14,
			brand = $15, colour = $16, size = $17, gender = $18, age_group = $19, fashion_type = $20,
			version = version + 1, updated_at = NOW()
		WHERE id = $21 AND version = $22
	`
	tag, err := r.db.Exec(ctx, query,
		product.Type, product.Name, product.Description, product.Category, product.SubCategory,
		product.ImageSmall, product.ImageMedium, product.ImageLarge, product.Price, product.DateAdded,
		product.ISBN, product.Author, product.Year, product.Publisher,
		product.Brand, product.Colour, product.Size, product.Gender, product.AgeGroup, product.FashionType,
		product.ID, product.Version)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *productRepo) ListByType(ctx context.Context, productType models.ProductType, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_type = $1
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, productType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepo) CountByType(ctx context.Context, productType models.ProductType) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE product_type = $1`, productType).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// SetImageURL writes the uploaded object URL to one of the image columns.
// The column name is validated by the service before it reaches SQL.
func (r *productRepo) SetImageURL(ctx context.Context, id uuid.UUID, column, url string) (int64, error) {
	query := `UPDATE products SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, url, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Type, &p.Name, &p.Description, &p.Category, &p.SubCategory,
		&p.ImageSmall, &p.ImageMedium, &p.ImageLarge, &p.Price, &p.DateAdded,
		&p.ISBN, &p.Author, &p.Year, &p.Publisher,
		&p.Brand, &p.Colour, &p.Size, &p.Gender, &p.AgeGroup, &p.FashionType,
		&p.Version, &p.CreatedAt, &p.UpdatedAt)
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := scanProduct(rows, product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
