package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/config"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
	"github.com/BruksfildServices01/coach-calendar/internal/validators"
)

const minPasswordLength = 6

// Store persists credentials and the documents created at sign-up.
type Store interface {
	// CreateAccount writes the credential, the account and, for coaches,
	// the coach profile in one transaction.
	CreateAccount(ctx context.Context, cred *models.Credential, user *models.User, coach *models.Coach) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	GetCredential(ctx context.Context, userID string) (*models.Credential, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type SignUpInput struct {
	FirstName   string
	LastName    string
	Username    string
	Email       string
	Password    string
	Role        string
	CompanyName string
}

// Session is the result of any successful password check.
type Session struct {
	Token     string
	Claims    *Claims
	User      *models.User
	ExpiresAt time.Time
}

// Redirect is the dashboard for the session's stored role.
func (s *Session) Redirect() string {
	return s.User.DashboardPath()
}

type Service struct {
	store  Store
	broker realtime.Broker

	secret      []byte
	ttl         time.Duration
	checkDomain bool
	now         func() time.Time
}

func NewService(store Store, broker realtime.Broker, cfg *config.Config) *Service {
	return &Service{
		store:       store,
		broker:      broker,
		secret:      []byte(cfg.JWTSecret),
		ttl:         cfg.TokenTTL,
		checkDomain: cfg.CheckEmailDomain,
		now:         time.Now,
	}
}

// ======================================================
// SIGN UP
// ======================================================

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	email, ok := validators.NormalizeEmail(in.Email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	if s.checkDomain && !validators.IsEmailDomainValid(email) {
		return nil, ErrInvalidEmail
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != models.RoleCoach && role != models.RoleClient {
		return nil, ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uid := uuid.NewString()

	cred := &models.Credential{
		UserID:       uid,
		Email:        email,
		PasswordHash: string(hashed),
	}

	user := &models.User{
		ID:          uid,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Username:    strings.TrimSpace(in.Username),
		Email:       email,
		Role:        role,
		CompanyName: strings.TrimSpace(in.CompanyName),
	}

	var coach *models.Coach
	if role == models.RoleCoach {
		coach = &models.Coach{
			ID:          uid,
			Name:        strings.TrimSpace(user.FirstName + " " + user.LastName),
			CompanyName: user.CompanyName,
			Email:       email,
			Followers:   []string{},
		}
	}

	if _, err := s.store.GetCredentialByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.store.CreateAccount(ctx, cred, user, coach); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyInUse
		}
		return nil, err
	}

	if coach != nil {
		realtime.PublishChange(ctx, s.broker, realtime.Change{Kind: realtime.ChangeCreated, ID: coach.ID}, realtime.CoachesTopic)
	}

	return s.issue(user, uuid.NewString())
}

// ======================================================
// SIGN IN
// ======================================================

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	normalized, ok := validators.NormalizeEmail(email)
	if !ok {
		return nil, ErrInvalidEmail
	}

	cred, err := s.store.GetCredentialByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	user, err := s.store.GetUser(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issue(user, uuid.NewString())
}

// Reauthenticate checks the password again and returns a token for the same
// session with a fresh auth time.
func (s *Service) Reauthenticate(ctx context.Context, claims *Claims, password string) (*Session, error) {
	if err := s.VerifyPassword(ctx, claims.UserID(), password); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issue(user, claims.SID)
}

func (s *Service) VerifyPassword(ctx context.Context, userID, password string) error {
	cred, err := s.store.GetCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// SignOut ends the session's open streams.
func (s *Service) SignOut(ctx context.Context, claims *Claims) {
	realtime.PublishSession(ctx, s.broker, claims.UserID(), realtime.SessionChange{
		Kind:      realtime.SessionSignedOut,
		SessionID: claims.SID,
	})
}

func (s *Service) ParseToken(raw string) (*Claims, error) {
	return parseToken(s.secret, raw)
}

func (s *Service) issue(user *models.User, sid string) (*Session, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := &Claims{
		Email:    user.Email,
		Role:     user.Role,
		SID:      sid,
		AuthTime: now.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := signToken(s.secret, claims)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		Token:     token,
		Claims:    claims,
		User:      user,
		ExpiresAt: expires,
	}, nil
}
