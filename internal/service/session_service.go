package service

import (
	"context"
	"strings"

	"career-assistant-be/internal/dto"
	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/internal/repository/memory"
	"career-assistant-be/internal/session"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/events"

	"github.com/google/uuid"
)

// SessionProvider hands out the live state of a user, creating it on first use.
type SessionProvider interface {
	Ensure(ctx context.Context, userID string) *session.State
}

type ISessionService interface {
	SessionProvider
	Restore(ctx context.Context, token string) (*dto.SessionResponse, error)
	EnterName(ctx context.Context, token, displayName string) (*dto.SessionResponse, error)
	State(ctx context.Context, userID string) (*session.Snapshot, error)
	SetDarkMode(ctx context.Context, userID string, on bool) (*session.Snapshot, error)
	Activate(ctx context.Context, userID string, intent career.Intent) (*session.Snapshot, error)
}

type sessionService struct {
	sessions  *memory.SessionRepository
	identity  IIdentityService
	publisher IPublisherService
	logger    logger.ILogger
}

func NewSessionService(
	sessions *memory.SessionRepository,
	identity IIdentityService,
	publisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessions:  sessions,
		identity:  identity,
		publisher: publisher,
		logger:    log,
	}
}

// Restore never fails on identity errors: they are logged and the caller is
// treated as a new user who still has to enter a name.
func (s *sessionService) Restore(ctx context.Context, token string) (*dto.SessionResponse, error) {
	anonymous := &dto.SessionResponse{State: session.New("").Snapshot()}

	userID, ok := s.identity.GetCurrentUser(token)
	if !ok {
		return anonymous, nil
	}

	if state, ok := s.sessions.Get(userID); ok && state.Snapshot().NameConfirmed {
		return &dto.SessionResponse{Known: true, Token: token, State: state.Snapshot()}, nil
	}

	nickname, found, err := s.identity.LookupNickname(ctx, userID)
	if err != nil {
		s.logger.Warn("SESSION", "Nickname lookup failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return anonymous, nil
	}
	if !found {
		return anonymous, nil
	}

	state := s.sessions.GetOrCreate(userID)
	if err := state.ConfirmName(nickname); err != nil {
		return anonymous, nil
	}
	s.loadPreferences(ctx, state)

	return &dto.SessionResponse{Known: true, Token: token, State: state.Snapshot()}, nil
}

func (s *sessionService) EnterName(ctx context.Context, token, displayName string) (*dto.SessionResponse, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, session.ErrNameRequired
	}

	userID, ok := s.identity.GetCurrentUser(token)
	if ok {
		if err := s.identity.RecordNickname(ctx, userID, displayName); err != nil {
			s.logger.Warn("SESSION", "Failed to record nickname", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	} else {
		id, err := s.identity.RegisterUser(ctx, displayName)
		if err != nil {
			id = uuid.NewString()
			s.logger.Warn("SESSION", "Registration failed, continuing with an unpersisted id", map[string]interface{}{
				"user_id": id,
				"error":   err.Error(),
			})
		}
		userID = id
	}

	state := s.sessions.GetOrCreate(userID)
	if err := state.ConfirmName(displayName); err != nil {
		return nil, err
	}

	issued, err := s.identity.IssueToken(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SESSION", "Display name confirmed", map[string]interface{}{"user_id": userID})
	return &dto.SessionResponse{Known: true, Token: issued, State: state.Snapshot()}, nil
}

func (s *sessionService) State(ctx context.Context, userID string) (*session.Snapshot, error) {
	snap := s.Ensure(ctx, userID).Snapshot()
	return &snap, nil
}

// SetDarkMode applies the flag immediately; persisting it is best effort.
func (s *sessionService) SetDarkMode(ctx context.Context, userID string, on bool) (*session.Snapshot, error) {
	state := s.Ensure(ctx, userID)
	state.SetDarkMode(on)

	if err := s.identity.SavePreferences(ctx, userID, entity.Preferences{DarkMode: on}); err != nil {
		s.logger.Warn("SESSION", "Failed to persist preferences", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	snap := state.Snapshot()
	return &snap, nil
}

func (s *sessionService) Activate(ctx context.Context, userID string, intent career.Intent) (*session.Snapshot, error) {
	state := s.Ensure(ctx, userID)
	changed, err := state.Activate(intent)
	if err != nil {
		return nil, err
	}
	if changed {
		emit(ctx, s.publisher, s.logger, events.TypeSectionActivated, userID, map[string]interface{}{
			"intent": intent.String(),
		})
	}

	snap := state.Snapshot()
	return &snap, nil
}

// Ensure returns the cached state of userID, rebuilding it from the identity
// store when the cache has expired it.
func (s *sessionService) Ensure(ctx context.Context, userID string) *session.State {
	if state, ok := s.sessions.Get(userID); ok {
		return state
	}

	state := s.sessions.GetOrCreate(userID)
	if nickname, found, err := s.identity.LookupNickname(ctx, userID); err == nil && found {
		_ = state.ConfirmName(nickname)
		s.loadPreferences(ctx, state)
	}
	return state
}

func (s *sessionService) loadPreferences(ctx context.Context, state *session.State) {
	prefs, err := s.identity.LoadPreferences(ctx, state.UserID())
	if err != nil {
		s.logger.Warn("SESSION", "Failed to load preferences", map[string]interface{}{
			"user_id": state.UserID(),
			"error":   err.Error(),
		})
		return
	}
	state.SetDarkMode(prefs.DarkMode)
}
