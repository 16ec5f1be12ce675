package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/catalog"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Slug         string  `json:"slug" validate:"required,max=200"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder int     `json:"display_order" validate:"min=0"`
	IsActive     *bool   `json:"is_active"`
}

func (c createCategoryRequest) toInput() catalog.CreateCategoryInput {
	return catalog.CreateCategoryInput{
		Name:         c.Name,
		Slug:         c.Slug,
		ImageURL:     c.ImageURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

type updateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Slug         *string `json:"slug" validate:"omitempty,min=1,max=200"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

func (u updateCategoryRequest) toInput() catalog.UpdateCategoryInput {
	return catalog.UpdateCategoryInput{
		Name:         u.Name,
		Slug:         u.Slug,
		ImageURL:     u.ImageURL,
		DisplayOrder: u.DisplayOrder,
		IsActive:     u.IsActive,
	}
}

// AdminListCategories lists all categories, inactive ones included.
func AdminListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.AdminListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// AdminCreateCategory registers a new catalog category.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminUpdateCategory patches the mutable fields of a category.
func AdminUpdateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "categoryID"), "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// AdminDeleteCategory removes a category and cascades to its subcategories.
func AdminDeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "categoryID"), "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createSubcategoryRequest struct {
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=200"`
	Slug         string    `json:"slug" validate:"required,max=200"`
	ImageURL     *string   `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder int       `json:"display_order" validate:"min=0"`
	IsActive     *bool     `json:"is_active"`
}

func (c createSubcategoryRequest) toInput() catalog.CreateSubcategoryInput {
	return catalog.CreateSubcategoryInput{
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Slug:         c.Slug,
		ImageURL:     c.ImageURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

type updateSubcategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Slug         *string `json:"slug" validate:"omitempty,min=1,max=200"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

func (u updateSubcategoryRequest) toInput() catalog.UpdateSubcategoryInput {
	return catalog.UpdateSubcategoryInput{
		Name:         u.Name,
		Slug:         u.Slug,
		ImageURL:     u.ImageURL,
		DisplayOrder: u.DisplayOrder,
		IsActive:     u.IsActive,
	}
}

// AdminCreateSubcategory registers a subcategory under an existing category.
func AdminCreateSubcategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createSubcategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subcategory, err := svc.CreateSubcategory(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, subcategory)
	}
}

// AdminUpdateSubcategory patches the mutable fields of a subcategory.
func AdminUpdateSubcategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "subcategoryID"), "subcategory_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSubcategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subcategory, err := svc.UpdateSubcategory(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, subcategory)
	}
}

// AdminDeleteSubcategory removes a subcategory.
func AdminDeleteSubcategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "subcategoryID"), "subcategory_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSubcategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createProductRequest struct {
	SubcategoryID     uuid.UUID  `json:"subcategory_id" validate:"required"`
	Code              string     `json:"code" validate:"required,max=100"`
	Name              string     `json:"name" validate:"required,max=300"`
	Description       *string    `json:"description" validate:"omitempty,max=5000"`
	PricePerUnitCents int        `json:"price_per_unit_cents" validate:"required,min=1"`
	OldPriceCents     *int       `json:"old_price_cents" validate:"omitempty,min=1"`
	Currency          string     `json:"currency"`
	IsNew             bool       `json:"is_new"`
	IsPromotion       bool       `json:"is_promotion"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	SellByBox         bool       `json:"sell_by_box"`
	UnitsInBox        int        `json:"units_in_box" validate:"min=0"`
	MinOrderQuantity  int        `json:"min_order_quantity" validate:"min=0"`
	StockQuantity     int        `json:"stock_quantity" validate:"min=0"`
	ImageURL          *string    `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder      int        `json:"display_order" validate:"min=0"`
	IsActive          *bool      `json:"is_active"`
}

func (c createProductRequest) toInput() (catalog.CreateProductInput, error) {
	currency := enums.CurrencyEUR
	if c.Currency != "" {
		parsed, err := enums.ParseCurrency(c.Currency)
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
		}
		currency = parsed
	}
	return catalog.CreateProductInput{
		SubcategoryID:     c.SubcategoryID,
		Code:              c.Code,
		Name:              c.Name,
		Description:       c.Description,
		PricePerUnitCents: c.PricePerUnitCents,
		OldPriceCents:     c.OldPriceCents,
		Currency:          currency,
		IsNew:             c.IsNew,
		IsPromotion:       c.IsPromotion,
		ExpiryDate:        c.ExpiryDate,
		SellByBox:         c.SellByBox,
		UnitsInBox:        c.UnitsInBox,
		MinOrderQuantity:  c.MinOrderQuantity,
		StockQuantity:     c.StockQuantity,
		ImageURL:          c.ImageURL,
		DisplayOrder:      c.DisplayOrder,
		IsActive:          c.IsActive,
	}, nil
}

type updateProductRequest struct {
	SubcategoryID     *uuid.UUID `json:"subcategory_id"`
	Code              *string    `json:"code" validate:"omitempty,min=1,max=100"`
	Name              *string    `json:"name" validate:"omitempty,min=1,max=300"`
	Description       *string    `json:"description" validate:"omitempty,max=5000"`
	PricePerUnitCents *int       `json:"price_per_unit_cents" validate:"omitempty,min=1"`
	OldPriceCents     *int       `json:"old_price_cents" validate:"omitempty,min=1"`
	Currency          *string    `json:"currency"`
	IsNew             *bool      `json:"is_new"`
	IsPromotion       *bool      `json:"is_promotion"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	SellByBox         *bool      `json:"sell_by_box"`
	UnitsInBox        *int       `json:"units_in_box" validate:"omitempty,min=0"`
	MinOrderQuantity  *int       `json:"min_order_quantity" validate:"omitempty,min=0"`
	StockQuantity     *int       `json:"stock_quantity" validate:"omitempty,min=0"`
	ImageURL          *string    `json:"image_url" validate:"omitempty,max=2048"`
	DisplayOrder      *int       `json:"display_order" validate:"omitempty,min=0"`
	IsActive          *bool      `json:"is_active"`
}

func (u updateProductRequest) toInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		SubcategoryID:     u.SubcategoryID,
		Code:              u.Code,
		Name:              u.Name,
		Description:       u.Description,
		PricePerUnitCents: u.PricePerUnitCents,
		OldPriceCents:     u.OldPriceCents,
		IsNew:             u.IsNew,
		IsPromotion:       u.IsPromotion,
		ExpiryDate:        u.ExpiryDate,
		SellByBox:         u.SellByBox,
		UnitsInBox:        u.UnitsInBox,
		MinOrderQuantity:  u.MinOrderQuantity,
		StockQuantity:     u.StockQuantity,
		ImageURL:          u.ImageURL,
		DisplayOrder:      u.DisplayOrder,
		IsActive:          u.IsActive,
	}
	if u.Currency != nil {
		currency, err := enums.ParseCurrency(*u.Currency)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
		}
		input.Currency = &currency
	}
	return input, nil
}

// AdminListProducts pages through all products regardless of active state.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		cursor := r.URL.Query().Get("cursor")
		limit, _ := validators.ParseQueryInt(r, "limit", 50, 1, 200)

		page, err := svc.AdminListProducts(r.Context(), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// AdminCreateProduct registers a new product.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct patches the mutable fields of a product.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a product. Existing order lines keep their
// denormalized snapshot.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createBannerRequest struct {
	Title        string  `json:"title" validate:"required,max=300"`
	Subtitle     *string `json:"subtitle" validate:"omitempty,max=500"`
	ImageURL     string  `json:"image_url" validate:"required,max=2048"`
	LinkURL      *string `json:"link_url" validate:"omitempty,max=2048"`
	DisplayOrder int     `json:"display_order" validate:"min=0"`
	IsActive     *bool   `json:"is_active"`
}

func (c createBannerRequest) toInput() catalog.CreateBannerInput {
	return catalog.CreateBannerInput{
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		ImageURL:     c.ImageURL,
		LinkURL:      c.LinkURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

type updateBannerRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=300"`
	Subtitle     *string `json:"subtitle" validate:"omitempty,max=500"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=2048"`
	LinkURL      *string `json:"link_url" validate:"omitempty,max=2048"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

func (u updateBannerRequest) toInput() catalog.UpdateBannerInput {
	return catalog.UpdateBannerInput{
		Title:        u.Title,
		Subtitle:     u.Subtitle,
		ImageURL:     u.ImageURL,
		LinkURL:      u.LinkURL,
		DisplayOrder: u.DisplayOrder,
		IsActive:     u.IsActive,
	}
}

// AdminListBanners lists all banners, inactive ones included.
func AdminListBanners(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		banners, err := svc.AdminListBanners(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, banners)
	}
}

// AdminCreateBanner registers a new promotional banner.
func AdminCreateBanner(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.CreateBanner(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, banner)
	}
}

// AdminUpdateBanner patches the mutable fields of a banner.
func AdminUpdateBanner(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "bannerID"), "banner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.UpdateBanner(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, banner)
	}
}

// AdminDeleteBanner removes a banner.
func AdminDeleteBanner(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "bannerID"), "banner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBanner(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
