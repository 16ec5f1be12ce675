package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// CategoryDTO is the transport shape for a catalog category.
type CategoryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	ImageURL      *string          `json:"image_url,omitempty"`
	DisplayOrder  int              `json:"display_order"`
	IsActive      bool             `json:"is_active"`
	Subcategories []SubcategoryDTO `json:"subcategories,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// SubcategoryDTO is the transport shape for a subcategory.
type SubcategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductDTO is the transport shape for a product listing.
type ProductDTO struct {
	ID                uuid.UUID      `json:"id"`
	SubcategoryID     uuid.UUID      `json:"subcategory_id"`
	Code              string         `json:"code"`
	Name              string         `json:"name"`
	Description       *string        `json:"description,omitempty"`
	PricePerUnitCents int            `json:"price_per_unit_cents"`
	OldPriceCents     *int           `json:"old_price_cents,omitempty"`
	Currency          enums.Currency `json:"currency"`
	IsNew             bool           `json:"is_new"`
	IsPromotion       bool           `json:"is_promotion"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	SellByBox         bool           `json:"sell_by_box"`
	UnitsInBox        int            `json:"units_in_box"`
	MinOrderQuantity  int            `json:"min_order_quantity"`
	StockQuantity     int            `json:"stock_quantity"`
	ImageURL          *string        `json:"image_url,omitempty"`
	DisplayOrder      int            `json:"display_order"`
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// BannerDTO is the transport shape for a storefront banner.
type BannerDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle,omitempty"`
	ImageURL     string    `json:"image_url"`
	LinkURL      *string   `json:"link_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductsPageDTO is a cursor-paginated product listing.
type ProductsPageDTO struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func CategoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	dto := &CategoryDTO{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ImageURL:     c.ImageURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for i := range c.Subcategories {
		dto.Subcategories = append(dto.Subcategories, *SubcategoryFromModel(&c.Subcategories[i]))
	}
	return dto
}

func SubcategoryFromModel(s *models.Subcategory) *SubcategoryDTO {
	if s == nil {
		return nil
	}
	return &SubcategoryDTO{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		Name:         s.Name,
		Slug:         s.Slug,
		ImageURL:     s.ImageURL,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ProductFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:                p.ID,
		SubcategoryID:     p.SubcategoryID,
		Code:              p.Code,
		Name:              p.Name,
		Description:       p.Description,
		PricePerUnitCents: p.PricePerUnitCents,
		OldPriceCents:     p.OldPriceCents,
		Currency:          p.Currency,
		IsNew:             p.IsNew,
		IsPromotion:       p.IsPromotion,
		ExpiryDate:        p.ExpiryDate,
		SellByBox:         p.SellByBox,
		UnitsInBox:        p.UnitsInBox,
		MinOrderQuantity:  p.MinOrderQuantity,
		StockQuantity:     p.StockQuantity,
		ImageURL:          p.ImageURL,
		DisplayOrder:      p.DisplayOrder,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func BannerFromModel(b *models.Banner) *BannerDTO {
	if b == nil {
		return nil
	}
	return &BannerDTO{
		ID:           b.ID,
		Title:        b.Title,
		Subtitle:     b.Subtitle,
		ImageURL:     b.ImageURL,
		LinkURL:      b.LinkURL,
		DisplayOrder: b.DisplayOrder,
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
