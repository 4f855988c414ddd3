package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"barberhub/config"
	businessRepo "barberhub/database/repository/business"
	"barberhub/models"
	"barberhub/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionPrefix is the prefix used for Redis session keys.
const SessionPrefix = "session:"

// SessionTTL is the time-to-live for persisted sessions.
const SessionTTL = 24 * time.Hour

// DefaultSessionService implements SessionService on Redis, with Firebase
// ID-token verification for owner sign-in.
type DefaultSessionService struct {
	Cache        *redis.Client
	BusinessRepo businessRepo.BusinessRepository
	FirebaseAuth *auth.Client

	mu       sync.Mutex
	watchers map[int]func(*models.Session)
	nextID   int
}

func (s *DefaultSessionService) save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Cache.Set(ctx, SessionPrefix+session.ID, data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) open(ctx context.Context, role, subjectID, email string, device models.DeviceInfo) (*models.Session, string, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:         uuid.NewString(),
		Role:       role,
		SubjectID:  subjectID,
		Email:      email,
		Device:     device,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, "", err
	}
	token, err := utils.GenerateToken(session.ID, role, email, SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	s.notify(session)
	return session, token, nil
}

// SignInGuest opens an anonymous session.
func (s *DefaultSessionService) SignInGuest(ctx context.Context, device models.DeviceInfo) (*models.Session, string, error) {
	return s.open(ctx, models.RoleGuest, "", "", device)
}

// SignInOwner verifies the Firebase ID token and binds the session to the
// business record whose contact email matches the token.
func (s *DefaultSessionService) SignInOwner(ctx context.Context, idToken string, device models.DeviceInfo) (*models.Session, string, error) {
	logger := utils.GetLogger()

	if s.FirebaseAuth == nil {
		return nil, "", fmt.Errorf("owner sign-in requires the firebase backend")
	}
	token, err := s.FirebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid ID token: %w", err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, "", fmt.Errorf("ID token carries no email claim")
	}

	businesses, err := s.BusinessRepo.GetAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up business for %s: %w", email, err)
	}
	var owned *models.BusinessView
	for i := range businesses {
		if businesses[i].Email == email {
			owned = &businesses[i]
			break
		}
	}
	if owned == nil {
		logger.Warn("Owner sign-in with no matching business", zap.String("email", email))
		return nil, "", fmt.Errorf("no business is registered for %s", email)
	}
	return s.open(ctx, models.RoleOwner, owned.ID, email, device)
}

// SignInAdmin verifies the configured operator credentials.
func (s *DefaultSessionService) SignInAdmin(ctx context.Context, email, password string, device models.DeviceInfo) (*models.Session, string, error) {
	if email != config.AppConfig.AdminEmail || config.AppConfig.AdminPasswordHash == "" {
		return nil, "", fmt.Errorf("invalid admin credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AdminPasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid admin credentials")
	}
	return s.open(ctx, models.RoleAdmin, "", email, device)
}

// GetSession loads a session and refreshes its last-seen stamp and TTL.
// Unknown or expired sessions return (nil, nil).
func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := s.Cache.Get(ctx, SessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.LastSeenAt = time.Now().UTC()
	if err := s.save(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut deletes the persisted session and notifies watchers.
func (s *DefaultSessionService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, SessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.notify(nil)
	return nil
}

// OnAuthChange registers fn for sign-in/sign-out events.
func (s *DefaultSessionService) OnAuthChange(fn func(*models.Session)) func() {
	s.mu.Lock()
	if s.watchers == nil {
		s.watchers = make(map[int]func(*models.Session))
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (s *DefaultSessionService) notify(session *models.Session) {
	s.mu.Lock()
	fns := make([]func(*models.Session), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(session)
	}
}
