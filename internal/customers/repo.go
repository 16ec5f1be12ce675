package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	"github.com/aurenecom/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for customer profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreateProfileDTO) (*models.CustomerProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	StatusByUserID(ctx context.Context, userID uuid.UUID) (enums.CustomerStatus, error)
	List(ctx context.Context, cursor string, limit int) (ProfilesPageDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts a new profile. Status always starts pending.
func (r *repository) Create(ctx context.Context, dto CreateProfileDTO) (*models.CustomerProfile, error) {
	profile := dto.ToModel()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// StatusByUserID returns only the status column for the given user.
func (r *repository) StatusByUserID(ctx context.Context, userID uuid.UUID) (enums.CustomerStatus, error) {
	var row struct {
		Status enums.CustomerStatus
	}
	err := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Select("status").
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return "", err
	}
	return row.Status, nil
}

// List returns a cursor-paginated page of profiles, newest first.
func (r *repository) List(ctx context.Context, cursor string, limit int) (ProfilesPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return ProfilesPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Order("created_at DESC").
		Order("id DESC").
		Limit(buffered)
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.CustomerProfile
	if err := query.Find(&rows).Error; err != nil {
		return ProfilesPageDTO{}, err
	}

	page := ProfilesPageDTO{Profiles: make([]ProfileDTO, 0, len(rows))}
	hasMore := len(rows) > normalized
	if hasMore {
		rows = rows[:normalized]
	}
	for i := range rows {
		page.Profiles = append(page.Profiles, *FromModel(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

// Update applies the self-service profile fields.
func (r *repository) Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	updates := map[string]any{}
	if dto.FullName != nil {
		updates["full_name"] = *dto.FullName
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
	}
	if dto.Address != nil {
		updates["address"] = *dto.Address
	}
	if dto.NIF != nil {
		updates["nif"] = *dto.NIF
	}
	if dto.Community != nil {
		updates["community"] = *dto.Community
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatus sets the status column without touching other fields.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.CustomerProfile{}, "id = ?", id).Error
}
