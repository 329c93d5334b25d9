package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"basketDebate/domain"
	"basketDebate/pkg/embedding"
	"basketDebate/pkg/logger"

	"gorm.io/gorm"
)

const listSeparator = "|"

// productRow is the storage shape of a catalog product. List columns are
// "|" joined text, the embedding is raw little-endian float32.
type productRow struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string  `gorm:"column:product_name"`
	Category       string  `gorm:"column:product_category"`
	Brand          string  `gorm:"column:brand"`
	Unit           string  `gorm:"column:unit"`
	PricePerUnit   float64 `gorm:"column:price_per_unit"`
	Tags           *string `gorm:"column:tags"`
	MealComponents *string `gorm:"column:meal_components"`
	Embedding      []byte  `gorm:"column:embedding"`
}

func (productRow) TableName() string {
	return "products"
}

func toRow(p domain.Product) productRow {
	return productRow{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		Unit:           p.Unit,
		PricePerUnit:   p.PricePerUnit,
		Tags:           joinList(p.Tags),
		MealComponents: joinList(p.MealComponents),
		Embedding:      embedding.Encode(p.Embedding),
	}
}

func (r productRow) toDomain() (domain.Product, error) {
	emb, err := embedding.Decode(r.Embedding)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", r.ID, err)
	}

	return domain.Product{
		ID:             r.ID,
		Name:           r.Name,
		Category:       r.Category,
		Brand:          r.Brand,
		PricePerUnit:   r.PricePerUnit,
		Unit:           r.Unit,
		Tags:           splitList(r.Tags),
		MealComponents: splitList(r.MealComponents),
		Embedding:      emb,
	}, nil
}

func joinList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	s := strings.Join(items, listSeparator)
	return &s
}

func splitList(s *string) []string {
	if s == nil || *s == "" {
		return []string{}
	}
	return strings.Split(*s, listSeparator)
}

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// AutoMigrate creates the products table when it does not exist.
func (r *ProductRepository) AutoMigrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&productRow{}); err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := toRow(*product)
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = row.ID

	return nil
}

// FindByID returns nil, nil when the product does not exist.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row productRow
	err := r.DB.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindEmbedding loads only the embedding column. A missing product or a NULL
// embedding both yield nil, nil.
func (r *ProductRepository) FindEmbedding(ctx context.Context, id int64) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row productRow
	err := r.DB.WithContext(ctx).Select("id", "embedding").First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find embedding: %w", err)
	}

	return embedding.Decode(row.Embedding)
}

// FindCandidates returns products matching filter, by id unless filter.Shuffle
// is set. A non-positive limit returns every match. Rows whose embedding does
// not decode are left out.
func (r *ProductRepository) FindCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := applyFilter(r.DB.WithContext(ctx).Model(&productRow{}), filter)

	if filter.Shuffle {
		q = q.Order("RANDOM()")
	} else {
		q = q.Order("id ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []productRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			logger.Warn("catalog_row_skipped", "product_id", row.ID, "err", err)
			continue
		}
		products = append(products, p)
	}

	return products, nil
}

func applyFilter(q *gorm.DB, f domain.CandidateFilter) *gorm.DB {
	if f.PricedOnly {
		q = q.Where("price_per_unit > 0")
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_unit >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_unit <= ?", *f.MaxPrice)
	}
	if f.PriceBelow != nil {
		q = q.Where("price_per_unit < ?", *f.PriceBelow)
	}
	if f.RequireEmbedding {
		q = q.Where("embedding IS NOT NULL AND length(embedding) > 0")
	}
	if f.MealComponent != "" {
		q = q.Where("meal_components LIKE ?", "%"+f.MealComponent+"%")
	}
	if f.RequireMealComponents {
		q = q.Where("meal_components IS NOT NULL AND meal_components <> '' AND meal_components <> 'other'")
	}
	for _, tag := range f.ExcludeTags {
		q = q.Where("(tags IS NULL OR tags NOT LIKE ?)", "%"+tag+"%")
	}
	for _, tag := range f.IncludeTags {
		q = q.Where("tags LIKE ?", "%"+tag+"%")
	}
	return q
}

func (r *ProductRepository) Count(ctx context.Context, filter domain.CandidateFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var n int64
	if err := applyFilter(r.DB.WithContext(ctx).Model(&productRow{}), filter).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Connection runs fn with a finder pinned to a single pooled connection.
// The connection goes back to the pool when fn returns.
func (r *ProductRepository) Connection(ctx context.Context, fn func(domain.CandidateFinder) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(&ProductRepository{DB: conn})
	})
}
