package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/aurenecom/storefront-backend/pkg/db"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

// Service exposes catalog reads for the storefront and full CRUD for the
// back office. Public reads only ever see active rows.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error)
	ListProducts(ctx context.Context, filters ProductFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListBanners(ctx context.Context) ([]BannerDTO, error)

	AdminListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error

	AdminListProducts(ctx context.Context, cursor string, limit int) (ProductsPageDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	AdminListBanners(ctx context.Context) ([]BannerDTO, error)
	CreateBanner(ctx context.Context, input CreateBannerInput) (*BannerDTO, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error
}

// CreateCategoryInput captures the fields for a new category.
type CreateCategoryInput struct {
	Name         string
	Slug         string
	ImageURL     *string
	DisplayOrder int
	IsActive     *bool
}

// UpdateCategoryInput carries the mutable category fields.
type UpdateCategoryInput struct {
	Name         *string
	Slug         *string
	ImageURL     *string
	DisplayOrder *int
	IsActive     *bool
}

// CreateSubcategoryInput captures the fields for a new subcategory.
type CreateSubcategoryInput struct {
	CategoryID   uuid.UUID
	Name         string
	Slug         string
	ImageURL     *string
	DisplayOrder int
	IsActive     *bool
}

// UpdateSubcategoryInput carries the mutable subcategory fields.
type UpdateSubcategoryInput struct {
	Name         *string
	Slug         *string
	ImageURL     *string
	DisplayOrder *int
	IsActive     *bool
}

// CreateProductInput captures the fields for a new product.
type CreateProductInput struct {
	SubcategoryID     uuid.UUID
	Code              string
	Name              string
	Description       *string
	PricePerUnitCents int
	OldPriceCents     *int
	Currency          enums.Currency
	IsNew             bool
	IsPromotion       bool
	ExpiryDate        *time.Time
	SellByBox         bool
	UnitsInBox        int
	MinOrderQuantity  int
	StockQuantity     int
	ImageURL          *string
	DisplayOrder      int
	IsActive          *bool
}

// UpdateProductInput carries the mutable product fields.
type UpdateProductInput struct {
	SubcategoryID     *uuid.UUID
	Code              *string
	Name              *string
	Description       *string
	PricePerUnitCents *int
	OldPriceCents     *int
	Currency          *enums.Currency
	IsNew             *bool
	IsPromotion       *bool
	ExpiryDate        *time.Time
	SellByBox         *bool
	UnitsInBox        *int
	MinOrderQuantity  *int
	StockQuantity     *int
	ImageURL          *string
	DisplayOrder      *int
	IsActive          *bool
}

// CreateBannerInput captures the fields for a new banner.
type CreateBannerInput struct {
	Title        string
	Subtitle     *string
	ImageURL     string
	LinkURL      *string
	DisplayOrder int
	IsActive     *bool
}

// UpdateBannerInput carries the mutable banner fields.
type UpdateBannerInput struct {
	Title        *string
	Subtitle     *string
	ImageURL     *string
	LinkURL      *string
	DisplayOrder *int
	IsActive     *bool
}

type service struct {
	repo Repository
}

// NewService builds a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	return s.listCategories(ctx, true)
}

func (s *service) AdminListCategories(ctx context.Context) ([]CategoryDTO, error) {
	return s.listCategories(ctx, false)
}

func (s *service) listCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *CategoryFromModel(&categories[i]))
	}
	return dtos, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error) {
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	subcategories, err := s.repo.ListSubcategories(ctx, categoryID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}
	dtos := make([]SubcategoryDTO, 0, len(subcategories))
	for i := range subcategories {
		dtos = append(dtos, *SubcategoryFromModel(&subcategories[i]))
	}
	return dtos, nil
}

func (s *service) ListProducts(ctx context.Context, filters ProductFilters) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, filters, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *ProductFromModel(&products[i]))
	}
	return dtos, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return ProductFromModel(product), nil
}

func (s *service) ListBanners(ctx context.Context) ([]BannerDTO, error) {
	return s.listBanners(ctx, true)
}

func (s *service) AdminListBanners(ctx context.Context) ([]BannerDTO, error) {
	return s.listBanners(ctx, false)
}

func (s *service) listBanners(ctx context.Context, activeOnly bool) ([]BannerDTO, error) {
	banners, err := s.repo.ListBanners(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	dtos := make([]BannerDTO, 0, len(banners))
	for i := range banners {
		dtos = append(dtos, *BannerFromModel(&banners[i]))
	}
	return dtos, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	slug, err := normalizeSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:         name,
		Slug:         slug,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     boolOrDefault(input.IsActive, true),
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return CategoryFromModel(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Slug != nil {
		slug, err := normalizeSlug(*input.Slug, "")
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		if pkgdb.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}

	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload category")
	}
	return CategoryFromModel(category), nil
}

// DeleteCategory removes the category; subcategories and their products go
// with it via the FK cascade.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, id, "category", s.repo.DeleteCategory, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.repo.FindCategoryByID(ctx, id)
		return err
	})
}

func (s *service) CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error) {
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name required")
	}
	slug, err := normalizeSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	subcategory := &models.Subcategory{
		CategoryID:   input.CategoryID,
		Name:         name,
		Slug:         slug,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     boolOrDefault(input.IsActive, true),
	}
	created, err := s.repo.CreateSubcategory(ctx, subcategory)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "subcategories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subcategory slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subcategory")
	}
	return SubcategoryFromModel(created), nil
}

func (s *service) UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Slug != nil {
		slug, err := normalizeSlug(*input.Slug, "")
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.UpdateSubcategory(ctx, id, updates); err != nil {
		if pkgdb.IsUniqueViolation(err, "subcategories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subcategory slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subcategory")
	}

	subcategory, err := s.repo.FindSubcategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload subcategory")
	}
	return SubcategoryFromModel(subcategory), nil
}

func (s *service) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, id, "subcategory", s.repo.DeleteSubcategory, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.repo.FindSubcategoryByID(ctx, id)
		return err
	})
}

func (s *service) AdminListProducts(ctx context.Context, cursor string, limit int) (ProductsPageDTO, error) {
	page, err := s.repo.ListProductsPage(ctx, cursor, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return ProductsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return page, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.SubcategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory id required")
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product code required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.PricePerUnitCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	currency := input.Currency
	if currency == "" {
		currency = enums.CurrencyEUR
	}
	if !currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", currency))
	}

	if _, err := s.repo.FindSubcategoryByID(ctx, input.SubcategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subcategory")
	}

	product := &models.Product{
		SubcategoryID:     input.SubcategoryID,
		Code:              code,
		Name:              name,
		Description:       input.Description,
		PricePerUnitCents: input.PricePerUnitCents,
		OldPriceCents:     input.OldPriceCents,
		Currency:          currency,
		IsNew:             input.IsNew,
		IsPromotion:       input.IsPromotion,
		ExpiryDate:        input.ExpiryDate,
		SellByBox:         input.SellByBox,
		UnitsInBox:        intOrDefault(input.UnitsInBox, 1),
		MinOrderQuantity:  intOrDefault(input.MinOrderQuantity, 1),
		StockQuantity:     input.StockQuantity,
		ImageURL:          input.ImageURL,
		DisplayOrder:      input.DisplayOrder,
		IsActive:          boolOrDefault(input.IsActive, true),
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "products_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return ProductFromModel(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	updates := map[string]any{}
	if input.SubcategoryID != nil {
		if *input.SubcategoryID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory id cannot be empty")
		}
		updates["subcategory_id"] = *input.SubcategoryID
	}
	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		if code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product code cannot be empty")
		}
		updates["code"] = code
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.PricePerUnitCents != nil {
		if *input.PricePerUnitCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price_per_unit_cents"] = *input.PricePerUnitCents
	}
	if input.OldPriceCents != nil {
		updates["old_price_cents"] = *input.OldPriceCents
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", *input.Currency))
		}
		updates["currency"] = *input.Currency
	}
	if input.IsNew != nil {
		updates["is_new"] = *input.IsNew
	}
	if input.IsPromotion != nil {
		updates["is_promotion"] = *input.IsPromotion
	}
	if input.ExpiryDate != nil {
		updates["expiry_date"] = *input.ExpiryDate
	}
	if input.SellByBox != nil {
		updates["sell_by_box"] = *input.SellByBox
	}
	if input.UnitsInBox != nil {
		if *input.UnitsInBox < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "units in box must be at least 1")
		}
		updates["units_in_box"] = *input.UnitsInBox
	}
	if input.MinOrderQuantity != nil {
		if *input.MinOrderQuantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum order quantity must be at least 1")
		}
		updates["min_order_quantity"] = *input.MinOrderQuantity
	}
	if input.StockQuantity != nil {
		updates["stock_quantity"] = *input.StockQuantity
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		if pkgdb.IsUniqueViolation(err, "products_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return ProductFromModel(product), nil
}

// DeleteProduct removes the catalog row. Order lines that referenced the
// product keep their snapshot and drop the reference.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, id, "product", s.repo.DeleteProduct, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.repo.FindProductByID(ctx, id)
		return err
	})
}

func (s *service) CreateBanner(ctx context.Context, input CreateBannerInput) (*BannerDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner title required")
	}
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner image url required")
	}

	banner := &models.Banner{
		Title:        title,
		Subtitle:     input.Subtitle,
		ImageURL:     imageURL,
		LinkURL:      input.LinkURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     boolOrDefault(input.IsActive, true),
	}
	created, err := s.repo.CreateBanner(ctx, banner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
	}
	return BannerFromModel(created), nil
}

func (s *service) UpdateBanner(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner id required")
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner title cannot be empty")
		}
		updates["title"] = title
	}
	if input.Subtitle != nil {
		updates["subtitle"] = *input.Subtitle
	}
	if input.ImageURL != nil {
		imageURL := strings.TrimSpace(*input.ImageURL)
		if imageURL == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner image url cannot be empty")
		}
		updates["image_url"] = imageURL
	}
	if input.LinkURL != nil {
		updates["link_url"] = *input.LinkURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.UpdateBanner(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banner")
	}

	banner, err := s.repo.FindBannerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload banner")
	}
	return BannerFromModel(banner), nil
}

func (s *service) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, id, "banner", s.repo.DeleteBanner, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.repo.FindBannerByID(ctx, id)
		return err
	})
}

func (s *service) deleteByID(ctx context.Context, id uuid.UUID, entity string, delete func(context.Context, uuid.UUID) error, find func(context.Context, uuid.UUID) error) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, entity+" id required")
	}
	if err := find(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
	}
	if err := delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete "+entity)
	}
	return nil
}

func normalizeSlug(slug, fallback string) (string, error) {
	value := strings.TrimSpace(slug)
	if value == "" {
		value = fallback
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, " ", "-")
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "slug required")
	}
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid slug %q", value))
		}
	}
	return value, nil
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func intOrDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
