package push

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

// TokenDTO is the API shape of a registered device token.
type TokenDTO struct {
	ID        uuid.UUID          `json:"id"`
	Token     string             `json:"token"`
	Platform  enums.PushPlatform `json:"platform"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// BroadcastResult counts per-token delivery outcomes.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Service manages token registration and best-effort fan-out.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*TokenDTO, error)
	Claim(ctx context.Context, token string, userID uuid.UUID) error
	Broadcast(ctx context.Context, msg Message) (*BroadcastResult, error)
	NotifyUser(ctx context.Context, userID uuid.UUID, msg Message) (*BroadcastResult, error)
	Unregister(ctx context.Context, token string) error
}

// RegisterInput registers or refreshes a device token.
type RegisterInput struct {
	Token    string
	Platform string
	UserID   *uuid.UUID
}

type service struct {
	repo   Repository
	sender Sender
	logg   *logger.Logger
}

// NewService wires push dependencies. The sender may be nil when FCM is not
// configured; broadcasts then fail with a dependency error.
func NewService(repo Repository, sender Sender, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("push repository is required")
	}
	return &service{repo: repo, sender: sender, logg: logg}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*TokenDTO, error) {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}
	platform, err := enums.ParsePushPlatform(strings.TrimSpace(input.Platform))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform")
	}

	row, err := s.repo.Upsert(ctx, token, platform, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register push token")
	}

	return &TokenDTO{
		ID:        row.ID,
		Token:     row.Token,
		Platform:  row.Platform,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Claim attaches a previously anonymous token to the signed-in user.
func (s *service) Claim(ctx context.Context, token string, userID uuid.UUID) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.Claim(ctx, trimmed, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim push token")
	}
	return nil
}

func (s *service) Broadcast(ctx context.Context, msg Message) (*BroadcastResult, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list push tokens")
	}
	return s.fanOut(ctx, rows, msg)
}

func (s *service) NotifyUser(ctx context.Context, userID uuid.UUID, msg Message) (*BroadcastResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list push tokens")
	}
	return s.fanOut(ctx, rows, msg)
}

func (s *service) Unregister(ctx context.Context, token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}
	if err := s.repo.DeleteByToken(ctx, trimmed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unregister push token")
	}
	return nil
}

// fanOut delivers one message per token. A failed send never aborts the rest;
// failures are counted and logged.
func (s *service) fanOut(ctx context.Context, rows []models.PushToken, msg Message) (*BroadcastResult, error) {
	if s.sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "push sender not configured")
	}

	result := &BroadcastResult{}
	for _, row := range rows {
		perToken := msg
		perToken.Token = row.Token
		if err := s.sender.Send(ctx, perToken); err != nil {
			result.Failed++
			if s.logg != nil {
				s.logg.Warn(ctx, "push delivery failed: "+err.Error())
			}
			continue
		}
		result.Sent++
	}
	return result, nil
}
