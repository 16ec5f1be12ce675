package push

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// Repository persists device push tokens.
type Repository interface {
	Upsert(ctx context.Context, token string, platform enums.PushPlatform, userID *uuid.UUID) (*models.PushToken, error)
	Claim(ctx context.Context, token string, userID uuid.UUID) error
	ListAll(ctx context.Context) ([]models.PushToken, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the push token repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert registers a token, refreshing platform and owner on conflict so a
// re-registered device never duplicates rows.
func (r *repository) Upsert(ctx context.Context, token string, platform enums.PushPlatform, userID *uuid.UUID) (*models.PushToken, error) {
	row := models.PushToken{
		ID:       uuid.New(),
		Token:    token,
		Platform: platform,
		UserID:   userID,
	}

	assignments := map[string]any{"platform": platform}
	if userID != nil {
		assignments["user_id"] = *userID
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved models.PushToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).Take(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *repository) Claim(ctx context.Context, token string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PushToken{}).
		Where("token = ?", token).
		Update("user_id", userID).Error
}

func (r *repository) ListAll(ctx context.Context) ([]models.PushToken, error) {
	var rows []models.PushToken
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushToken, error) {
	var rows []models.PushToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.PushToken{}).Error
}
