package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes customer profile operations for the storefront and the
// back office.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileDTO) (*ProfileDTO, error)
	ListCustomers(ctx context.Context, cursor string, limit int) (ProfilesPageDTO, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*ProfileDTO, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// SetStatusInput carries an admin status transition.
type SetStatusInput struct {
	CustomerID  uuid.UUID
	Status      enums.CustomerStatus
	ActorUserID uuid.UUID
}

// StatusChangedEvent is the outbox payload for customer.status_changed.
type StatusChangedEvent struct {
	CustomerID uuid.UUID            `json:"customer_id"`
	UserID     uuid.UUID            `json:"user_id"`
	OldStatus  enums.CustomerStatus `json:"old_status"`
	NewStatus  enums.CustomerStatus `json:"new_status"`
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a customer service with the provided dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileDTO) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.FullName != nil && strings.TrimSpace(*input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if err := s.repo.Update(ctx, profile.ID, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}

	updated, err := s.repo.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
	}
	return FromModel(updated), nil
}

func (s *service) ListCustomers(ctx context.Context, cursor string, limit int) (ProfilesPageDTO, error) {
	page, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfilesPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return ProfilesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return page, nil
}

func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*ProfileDTO, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid customer status %q", input.Status))
	}

	var updated *models.CustomerProfile
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		profile, err := repo.FindByID(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		oldStatus := profile.Status
		if oldStatus == input.Status {
			updated = profile
			return nil
		}

		if err := repo.UpdateStatus(ctx, profile.ID, input.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer status")
		}
		profile.Status = input.Status
		updated = profile

		event := outbox.DomainEvent{
			EventType:     enums.EventCustomerStatusChanged,
			AggregateType: enums.AggregateCustomer,
			AggregateID:   profile.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID),
			Data: StatusChangedEvent{
				CustomerID: profile.ID,
				UserID:     profile.UserID,
				OldStatus:  oldStatus,
				NewStatus:  input.Status,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func buildActor(userID uuid.UUID) *outbox.ActorRef {
	if userID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleAdmin)}
}
