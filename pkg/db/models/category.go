package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level catalog grouping.
type Category struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string        `gorm:"column:name;not null"`
	Slug          string        `gorm:"column:slug;not null;uniqueIndex:categories_slug_key"`
	ImageURL      *string       `gorm:"column:image_url"`
	DisplayOrder  int           `gorm:"column:display_order;not null;default:0"`
	IsActive      bool          `gorm:"column:is_active;not null;default:true"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// Subcategory nests under a category and owns products.
type Subcategory struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID   uuid.UUID `gorm:"column:category_id;type:uuid;not null;index:subcategories_category_id_idx"`
	Name         string    `gorm:"column:name;not null"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex:subcategories_slug_key"`
	ImageURL     *string   `gorm:"column:image_url"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
