package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	schema := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image_url TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS subcategories (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image_url TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  subcategory_id TEXT NOT NULL,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  price_per_unit_cents INTEGER NOT NULL,
  old_price_cents INTEGER,
  currency TEXT NOT NULL DEFAULT 'EUR',
  is_new BOOLEAN NOT NULL DEFAULT 0,
  is_promotion BOOLEAN NOT NULL DEFAULT 0,
  expiry_date DATETIME,
  sell_by_box BOOLEAN NOT NULL DEFAULT 0,
  units_in_box INTEGER NOT NULL DEFAULT 1,
  min_order_quantity INTEGER NOT NULL DEFAULT 1,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS banners (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  subtitle TEXT,
  image_url TEXT NOT NULL,
  link_url TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := conn.Exec(schema).Error; err != nil {
		t.Fatalf("failed to create catalog tables: %v", err)
	}
	for _, table := range []string{"products", "subcategories", "categories", "banners"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
	return conn
}

func mustCreateCategory(t *testing.T, repo Repository, name string, order int, active bool) *models.Category {
	t.Helper()
	category, err := repo.CreateCategory(context.Background(), &models.Category{
		Name:         name,
		Slug:         fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		DisplayOrder: order,
		IsActive:     active,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateSubcategory(t *testing.T, repo Repository, categoryID uuid.UUID, name string, active bool) *models.Subcategory {
	t.Helper()
	subcategory, err := repo.CreateSubcategory(context.Background(), &models.Subcategory{
		CategoryID: categoryID,
		Name:       name,
		Slug:       fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		IsActive:   active,
	})
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}
	return subcategory
}

func mustCreateProduct(t *testing.T, repo Repository, subcategoryID uuid.UUID, name string, active bool) *models.Product {
	t.Helper()
	product, err := repo.CreateProduct(context.Background(), &models.Product{
		SubcategoryID:     subcategoryID,
		Code:              fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:              name,
		PricePerUnitCents: 450,
		Currency:          "EUR",
		UnitsInBox:        1,
		MinOrderQuantity:  1,
		IsActive:          active,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestListCategoriesFiltersAndOrders(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	second := mustCreateCategory(t, repo, "drinks", 2, true)
	first := mustCreateCategory(t, repo, "dairy", 1, true)
	mustCreateCategory(t, repo, "hidden", 0, false)
	mustCreateSubcategory(t, repo, first.ID, "milk", true)
	mustCreateSubcategory(t, repo, first.ID, "closed", false)

	categories, err := repo.ListCategories(context.Background(), true)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 active categories, got %d", len(categories))
	}
	if categories[0].ID != first.ID || categories[1].ID != second.ID {
		t.Fatalf("expected display_order ordering, got %s then %s", categories[0].Name, categories[1].Name)
	}
	if len(categories[0].Subcategories) != 1 {
		t.Fatalf("expected only active subcategories, got %d", len(categories[0].Subcategories))
	}

	all, err := repo.ListCategories(context.Background(), false)
	if err != nil {
		t.Fatalf("list all categories: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 categories without filter, got %d", len(all))
	}
}

func TestListProductsFilters(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	category := mustCreateCategory(t, repo, "pantry", 0, true)
	other := mustCreateCategory(t, repo, "frozen", 1, true)
	subcategory := mustCreateSubcategory(t, repo, category.ID, "rice", true)
	otherSub := mustCreateSubcategory(t, repo, other.ID, "peas", true)

	beta := mustCreateProduct(t, repo, subcategory.ID, "beta rice", true)
	alpha := mustCreateProduct(t, repo, subcategory.ID, "alpha rice", true)
	mustCreateProduct(t, repo, subcategory.ID, "retired rice", false)
	mustCreateProduct(t, repo, otherSub.ID, "frozen peas", true)

	bySubcategory, err := repo.ListProducts(context.Background(), ProductFilters{SubcategoryID: &subcategory.ID}, true)
	if err != nil {
		t.Fatalf("list by subcategory: %v", err)
	}
	if len(bySubcategory) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(bySubcategory))
	}
	if bySubcategory[0].ID != alpha.ID || bySubcategory[1].ID != beta.ID {
		t.Fatalf("expected name ordering, got %s then %s", bySubcategory[0].Name, bySubcategory[1].Name)
	}

	byCategory, err := repo.ListProducts(context.Background(), ProductFilters{CategoryID: &category.ID}, true)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("expected category join to find 2 products, got %d", len(byCategory))
	}

	bySearch, err := repo.ListProducts(context.Background(), ProductFilters{Search: "ALPHA"}, true)
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != alpha.ID {
		t.Fatalf("expected case-insensitive search hit, got %d rows", len(bySearch))
	}
}

func TestListProductsPageCursor(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	category := mustCreateCategory(t, repo, "bulk", 0, true)
	subcategory := mustCreateSubcategory(t, repo, category.ID, "flour", true)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		product := mustCreateProduct(t, repo, subcategory.ID, fmt.Sprintf("flour-%d", i), true)
		createdAt := base.Add(time.Duration(i) * time.Minute)
		if err := conn.Model(&models.Product{}).Where("id = ?", product.ID).UpdateColumn("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate product: %v", err)
		}
	}

	first, err := repo.ListProductsPage(context.Background(), "", 3)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(first.Products))
	}
	if first.NextCursor == nil {
		t.Fatal("expected next cursor on first page")
	}
	if first.Products[0].Name != "flour-4" {
		t.Fatalf("expected newest first, got %s", first.Products[0].Name)
	}

	second, err := repo.ListProductsPage(context.Background(), *first.NextCursor, 3)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Products) != 2 {
		t.Fatalf("expected 2 remaining products, got %d", len(second.Products))
	}
	if second.NextCursor != nil {
		t.Fatal("expected no cursor on final page")
	}
}

func TestBannersOrderingAndUpdates(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	late, err := repo.CreateBanner(context.Background(), &models.Banner{Title: "late", ImageURL: "https://cdn/late.png", DisplayOrder: 5, IsActive: true})
	if err != nil {
		t.Fatalf("create banner: %v", err)
	}
	early, err := repo.CreateBanner(context.Background(), &models.Banner{Title: "early", ImageURL: "https://cdn/early.png", DisplayOrder: 1, IsActive: true})
	if err != nil {
		t.Fatalf("create banner: %v", err)
	}
	if _, err := repo.CreateBanner(context.Background(), &models.Banner{Title: "off", ImageURL: "https://cdn/off.png", IsActive: false}); err != nil {
		t.Fatalf("create banner: %v", err)
	}

	active, err := repo.ListBanners(context.Background(), true)
	if err != nil {
		t.Fatalf("list banners: %v", err)
	}
	if len(active) != 2 || active[0].ID != early.ID || active[1].ID != late.ID {
		t.Fatalf("unexpected active banner ordering: %+v", active)
	}

	if err := repo.UpdateBanner(context.Background(), late.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("update banner: %v", err)
	}
	active, err = repo.ListBanners(context.Background(), true)
	if err != nil {
		t.Fatalf("list banners after update: %v", err)
	}
	if len(active) != 1 || active[0].ID != early.ID {
		t.Fatalf("expected only early banner active, got %d rows", len(active))
	}
}
