package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
)

type stubProfileRepo struct {
	profile       *models.CustomerProfile
	findErr       error
	updateErr     error
	updatedStatus enums.CustomerStatus
	updates       UpdateProfileDTO
	deleted       bool
}

func (s *stubProfileRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubProfileRepo) Create(ctx context.Context, dto CreateProfileDTO) (*models.CustomerProfile, error) {
	model := dto.ToModel()
	model.ID = uuid.New()
	return model, nil
}

func (s *stubProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.profile, nil
}

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.profile, nil
}

func (s *stubProfileRepo) StatusByUserID(ctx context.Context, userID uuid.UUID) (enums.CustomerStatus, error) {
	if s.findErr != nil {
		return "", s.findErr
	}
	return s.profile.Status, nil
}

func (s *stubProfileRepo) List(ctx context.Context, cursor string, limit int) (ProfilesPageDTO, error) {
	if s.findErr != nil {
		return ProfilesPageDTO{}, s.findErr
	}
	page := ProfilesPageDTO{}
	if s.profile != nil {
		page.Profiles = append(page.Profiles, *FromModel(s.profile))
	}
	return page, nil
}

func (s *stubProfileRepo) Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = dto
	if dto.FullName != nil {
		s.profile.FullName = *dto.FullName
	}
	if dto.Phone != nil {
		s.profile.Phone = dto.Phone
	}
	return nil
}

func (s *stubProfileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedStatus = status
	return nil
}

func (s *stubProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func baseProfile(status enums.CustomerStatus) *models.CustomerProfile {
	return &models.CustomerProfile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		FullName: "Ana Serra",
		Status:   status,
	}
}

func newTestService(t *testing.T, repo Repository, sink *stubOutbox) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, sink)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, stubTxRunner{}, &stubOutbox{}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewService(&stubProfileRepo{}, nil, &stubOutbox{}); err == nil {
		t.Fatal("expected error without tx runner")
	}
	if _, err := NewService(&stubProfileRepo{}, stubTxRunner{}, nil); err == nil {
		t.Fatal("expected error without outbox publisher")
	}
}

func TestGetProfileSuccess(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusApproved)
	svc := newTestService(t, &stubProfileRepo{profile: profile}, &stubOutbox{})

	dto, err := svc.GetProfile(context.Background(), profile.UserID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if dto.ID != profile.ID || dto.FullName != profile.FullName {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc := newTestService(t, &stubProfileRepo{findErr: gorm.ErrRecordNotFound}, &stubOutbox{})

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProfileMissingIdentity(t *testing.T) {
	svc := newTestService(t, &stubProfileRepo{}, &stubOutbox{})

	_, err := svc.GetProfile(context.Background(), uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUpdateOwnProfileSuccess(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusApproved)
	repo := &stubProfileRepo{profile: profile}
	svc := newTestService(t, repo, &stubOutbox{})

	name := "Ana Serra Puig"
	phone := "+34911222333"
	dto, err := svc.UpdateOwnProfile(context.Background(), profile.UserID, UpdateProfileDTO{FullName: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.FullName != name {
		t.Fatalf("expected full name updated, got %s", dto.FullName)
	}
	if repo.updates.Phone == nil || *repo.updates.Phone != phone {
		t.Fatalf("expected phone forwarded to repo, got %v", repo.updates.Phone)
	}
}

func TestUpdateOwnProfileRejectsBlankName(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusApproved)
	svc := newTestService(t, &stubProfileRepo{profile: profile}, &stubOutbox{})

	blank := "   "
	_, err := svc.UpdateOwnProfile(context.Background(), profile.UserID, UpdateProfileDTO{FullName: &blank})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetStatusEmitsEvent(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusPending)
	repo := &stubProfileRepo{profile: profile}
	sink := &stubOutbox{}
	svc := newTestService(t, repo, sink)

	actor := uuid.New()
	dto, err := svc.SetStatus(context.Background(), SetStatusInput{
		CustomerID:  profile.ID,
		Status:      enums.CustomerStatusApproved,
		ActorUserID: actor,
	})
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if dto.Status != enums.CustomerStatusApproved {
		t.Fatalf("expected approved dto, got %s", dto.Status)
	}
	if repo.updatedStatus != enums.CustomerStatusApproved {
		t.Fatalf("expected repo status update, got %s", repo.updatedStatus)
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(sink.events))
	}
	event := sink.events[0]
	if event.EventType != enums.EventCustomerStatusChanged {
		t.Fatalf("unexpected event type %s", event.EventType)
	}
	if event.AggregateID != profile.ID {
		t.Fatalf("unexpected aggregate id %s", event.AggregateID)
	}
	if event.Actor == nil || event.Actor.UserID != actor {
		t.Fatalf("expected actor %s, got %+v", actor, event.Actor)
	}
	payload, ok := event.Data.(StatusChangedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Data)
	}
	if payload.OldStatus != enums.CustomerStatusPending || payload.NewStatus != enums.CustomerStatusApproved {
		t.Fatalf("unexpected transition %s -> %s", payload.OldStatus, payload.NewStatus)
	}
}

func TestSetStatusNoopWhenUnchanged(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusApproved)
	repo := &stubProfileRepo{profile: profile}
	sink := &stubOutbox{}
	svc := newTestService(t, repo, sink)

	dto, err := svc.SetStatus(context.Background(), SetStatusInput{
		CustomerID: profile.ID,
		Status:     enums.CustomerStatusApproved,
	})
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if dto.Status != enums.CustomerStatusApproved {
		t.Fatalf("unexpected dto status %s", dto.Status)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events for noop transition, got %d", len(sink.events))
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t, &stubProfileRepo{profile: baseProfile(enums.CustomerStatusPending)}, &stubOutbox{})

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		CustomerID: uuid.New(),
		Status:     enums.CustomerStatus("suspended"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetStatusOutboxFailureAborts(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusPending)
	repo := &stubProfileRepo{profile: profile}
	sink := &stubOutbox{err: errors.New("insert failed")}
	svc := newTestService(t, repo, sink)

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		CustomerID: profile.ID,
		Status:     enums.CustomerStatusBlocked,
	})
	if err == nil {
		t.Fatal("expected error when outbox emit fails")
	}
}

func TestDeleteCustomer(t *testing.T) {
	profile := baseProfile(enums.CustomerStatusInactive)
	repo := &stubProfileRepo{profile: profile}
	svc := newTestService(t, repo, &stubOutbox{})

	if err := svc.DeleteCustomer(context.Background(), profile.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected repo delete call")
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc := newTestService(t, &stubProfileRepo{findErr: gorm.ErrRecordNotFound}, &stubOutbox{})

	err := svc.DeleteCustomer(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
