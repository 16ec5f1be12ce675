package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/pagination"
)

// ProductFilters narrows public product listings.
type ProductFilters struct {
	SubcategoryID  *uuid.UUID
	CategoryID     *uuid.UUID
	Search         string
	PromotionsOnly bool
	NewOnly        bool
}

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error)
	FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	ListProducts(ctx context.Context, filters ProductFilters, activeOnly bool) ([]models.Product, error)
	ListProductsPage(ctx context.Context, cursor string, limit int) (ProductsPageDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error)
	FindBannerByID(ctx context.Context, id uuid.UUID) (*models.Banner, error)
	ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC").Order("name ASC")
		}).
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns categories ordered for display. When activeOnly is
// set, inactive categories and inactive subcategories are filtered out.
func (r *repository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			if activeOnly {
				db = db.Where("is_active = ?", true)
			}
			return db.Order("display_order ASC").Order("name ASC")
		}).
		Order("display_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *repository) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error) {
	if subcategory.ID == uuid.Nil {
		subcategory.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(subcategory).Error; err != nil {
		return nil, err
	}
	return subcategory, nil
}

func (r *repository) FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := r.db.WithContext(ctx).First(&subcategory, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (r *repository) ListSubcategories(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]models.Subcategory, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Subcategory{}).
		Where("category_id = ?", categoryID).
		Order("display_order ASC").
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var subcategories []models.Subcategory
	if err := query.Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *repository) UpdateSubcategory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Subcategory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Subcategory{}, "id = ?", id).Error
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListProducts returns products ordered for display. The category filter
// joins through subcategories.
func (r *repository) ListProducts(ctx context.Context, filters ProductFilters, activeOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Order("products.display_order ASC").
		Order("products.name ASC")
	if activeOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filters.SubcategoryID != nil {
		query = query.Where("products.subcategory_id = ?", *filters.SubcategoryID)
	}
	if filters.CategoryID != nil {
		query = query.
			Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
			Where("subcategories.category_id = ?", *filters.CategoryID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.code) LIKE ?", like, like)
	}
	if filters.PromotionsOnly {
		query = query.Where("products.is_promotion = ?", true)
	}
	if filters.NewOnly {
		query = query.Where("products.is_new = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsPage is the admin listing, newest first with a cursor.
func (r *repository) ListProductsPage(ctx context.Context, cursor string, limit int) (ProductsPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return ProductsPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at DESC").
		Order("id DESC").
		Limit(buffered)
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return ProductsPageDTO{}, err
	}

	page := ProductsPageDTO{Products: make([]ProductDTO, 0, len(rows))}
	hasMore := len(rows) > normalized
	if hasMore {
		rows = rows[:normalized]
	}
	for i := range rows {
		page.Products = append(page.Products, *ProductFromModel(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *repository) CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *repository) FindBannerByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *repository) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Banner{}).
		Order("display_order ASC").
		Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var banners []models.Banner
	if err := query.Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *repository) UpdateBanner(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Banner{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id).Error
}
