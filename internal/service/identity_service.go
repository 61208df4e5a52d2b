package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/pkg/serverutils"
	"career-assistant-be/internal/repository/specification"
	"career-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ErrIdentityUnavailable is returned when the service runs without a database.
var ErrIdentityUnavailable = errors.New("identity store is not configured")

type IIdentityService interface {
	GetCurrentUser(token string) (string, bool)
	IssueToken(userID string) (string, error)
	LookupNickname(ctx context.Context, userID string) (string, bool, error)
	RegisterUser(ctx context.Context, displayName string) (string, error)
	RecordNickname(ctx context.Context, userID, displayName string) error
	LoadPreferences(ctx context.Context, userID string) (entity.Preferences, error)
	SavePreferences(ctx context.Context, userID string, prefs entity.Preferences) error
}

type identityService struct {
	uowFactory unitofwork.RepositoryFactory
	tokenTTL   time.Duration
}

// NewIdentityService accepts a nil factory; every store operation then fails
// with ErrIdentityUnavailable and callers degrade to an anonymous session.
func NewIdentityService(uowFactory unitofwork.RepositoryFactory, tokenTTL time.Duration) IIdentityService {
	return &identityService{
		uowFactory: uowFactory,
		tokenTTL:   tokenTTL,
	}
}

func (s *identityService) GetCurrentUser(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	userID, err := serverutils.ParseToken(token)
	if err != nil {
		return "", false
	}
	return userID, true
}

func (s *identityService) IssueToken(userID string) (string, error) {
	return serverutils.GenerateToken(userID, s.tokenTTL)
}

func (s *identityService) LookupNickname(ctx context.Context, userID string) (string, bool, error) {
	id, err := s.parse(userID)
	if err != nil {
		return "", false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return "", false, err
	}
	if user == nil || user.Nickname == "" {
		return "", false, nil
	}

	// Last-seen is bookkeeping only.
	_ = uow.UserRepository().TouchLastSeen(ctx, id)

	return user.Nickname, true, nil
}

func (s *identityService) RegisterUser(ctx context.Context, displayName string) (string, error) {
	if s.uowFactory == nil {
		return "", ErrIdentityUnavailable
	}

	now := time.Now()
	user := &entity.User{
		Id:         uuid.New(),
		Nickname:   displayName,
		LastSeenAt: &now,
	}
	err := unitofwork.WithinTransaction(ctx, s.uowFactory, func(uow unitofwork.UnitOfWork) error {
		return uow.UserRepository().Create(ctx, user)
	})
	if err != nil {
		return "", fmt.Errorf("register user: %w", err)
	}

	return user.Id.String(), nil
}

func (s *identityService) RecordNickname(ctx context.Context, userID, displayName string) error {
	id, err := s.parse(userID)
	if err != nil {
		return err
	}

	return unitofwork.WithinTransaction(ctx, s.uowFactory, func(uow unitofwork.UnitOfWork) error {
		users := uow.UserRepository()
		existing, err := users.FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return err
		}
		if existing == nil {
			// A token minted while the store was down: persist the user now.
			now := time.Now()
			return users.Create(ctx, &entity.User{Id: id, Nickname: displayName, LastSeenAt: &now})
		}
		return users.UpdateNickname(ctx, id, displayName)
	})
}

func (s *identityService) LoadPreferences(ctx context.Context, userID string) (entity.Preferences, error) {
	id, err := s.parse(userID)
	if err != nil {
		return entity.Preferences{}, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return entity.Preferences{}, err
	}
	if user == nil {
		return entity.Preferences{}, nil
	}
	return user.Preferences, nil
}

func (s *identityService) SavePreferences(ctx context.Context, userID string, prefs entity.Preferences) error {
	id, err := s.parse(userID)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().UpdatePreferences(ctx, id, prefs)
}

func (s *identityService) parse(userID string) (uuid.UUID, error) {
	if s.uowFactory == nil {
		return uuid.Nil, ErrIdentityUnavailable
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	return id, nil
}
