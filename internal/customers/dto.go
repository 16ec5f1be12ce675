package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// ProfileDTO is the transport shape for a customer profile.
type ProfileDTO struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	FullName  string               `json:"full_name"`
	Phone     *string              `json:"phone,omitempty"`
	Address   *string              `json:"address,omitempty"`
	NIF       *string              `json:"nif,omitempty"`
	Community *string              `json:"community,omitempty"`
	Status    enums.CustomerStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateProfileDTO holds the data needed to persist a new profile.
type CreateProfileDTO struct {
	UserID    uuid.UUID
	FullName  string
	Phone     *string
	Address   *string
	NIF       *string
	Community *string
}

// UpdateProfileDTO carries the self-service editable fields.
type UpdateProfileDTO struct {
	FullName  *string
	Phone     *string
	Address   *string
	NIF       *string
	Community *string
}

// ProfilesPageDTO is a cursor-paginated admin listing.
type ProfilesPageDTO struct {
	Profiles   []ProfileDTO `json:"profiles"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func FromModel(p *models.CustomerProfile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		NIF:       p.NIF,
		Community: p.Community,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (c CreateProfileDTO) ToModel() *models.CustomerProfile {
	return &models.CustomerProfile{
		UserID:    c.UserID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Address:   c.Address,
		NIF:       c.NIF,
		Community: c.Community,
		Status:    enums.CustomerStatusPending,
	}
}
