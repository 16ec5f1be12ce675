package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/users"
	"github.com/aurenecom/storefront-backend/pkg/config"
	pkgdb "github.com/aurenecom/storefront-backend/pkg/db"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
	"github.com/aurenecom/storefront-backend/pkg/security"
)

type userCreator interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type profileCreator interface {
	Create(ctx context.Context, dto customers.CreateProfileDTO) (*models.CustomerProfile, error)
}

type registerTxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerOutbox interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// CustomerRegisteredEvent is the outbox payload for customer.registered.
type CustomerRegisteredEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
}

// RegisterService handles storefront sign-up.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams bundles the sign-up dependencies. Outbox and logger
// are optional; registration succeeds without them.
type RegisterServiceParams struct {
	Users          userCreator
	Profiles       profileCreator
	Tx             registerTxRunner
	Outbox         registerOutbox
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

type registerService struct {
	users       userCreator
	profiles    profileCreator
	tx          registerTxRunner
	outbox      registerOutbox
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// NewRegisterService builds the registration flow.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "customers repository required")
	}
	return &registerService{
		users:       params.Users,
		profiles:    params.Profiles,
		tx:          params.Tx,
		outbox:      params.Outbox,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// Register creates the identity first and the customer profile second. The
// writes are deliberately sequential: a profile failure surfaces the error
// but leaves the identity in place so a retry can converge.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         enums.UserRoleCustomer,
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	profile, err := s.profiles.Create(ctx, customers.CreateProfileDTO{
		UserID:    user.ID,
		FullName:  fullName,
		Phone:     req.Phone,
		Address:   req.Address,
		NIF:       req.NIF,
		Community: req.Community,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer profile")
	}

	s.emitRegistered(ctx, user, profile)

	return &RegisterResponse{
		User:    users.FromModel(user),
		Profile: customers.FromModel(profile),
	}, nil
}

// emitRegistered is best effort; a missing outbox or a failed emit never
// fails the sign-up.
func (s *registerService) emitRegistered(ctx context.Context, user *models.User, profile *models.CustomerProfile) {
	if s.tx == nil || s.outbox == nil {
		return
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventCustomerRegistered,
			AggregateType: enums.AggregateCustomer,
			AggregateID:   profile.ID,
			Data: CustomerRegisteredEvent{
				UserID:     user.ID,
				CustomerID: profile.ID,
				Email:      user.Email,
				FullName:   profile.FullName,
			},
		})
	})
	if err != nil && s.logg != nil {
		s.logg.Warn(ctx, "customer registered event not emitted: "+err.Error())
	}
}
