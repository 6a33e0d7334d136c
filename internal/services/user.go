package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"convomanage/internal/domain"
)

const (
	minPasswordLen = 8
	defaultRole    = domain.RoleAttendee
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo     domain.UserRepository
	speakerRepo  domain.SpeakerRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenRevoker domain.TokenRevoker
	tokenExpiry  time.Duration
}

// NewUserService creates a UserService with the given repositories and auth ports.
// tokenRevoker may be nil, in which case Logout is a no-op.
func NewUserService(userRepo domain.UserRepository, speakerRepo domain.SpeakerRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenRevoker domain.TokenRevoker, tokenExpiry time.Duration) domain.UserService {
	return &userService{
		userRepo:     userRepo,
		speakerRepo:  speakerRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenRevoker: tokenRevoker,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *userService) SignUp(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if !role.Valid() {
		role = defaultRole
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(fullName), role, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Speakers get an empty profile row to fill in later.
	if role == domain.RoleSpeaker && s.speakerRepo != nil {
		sp := &domain.Speaker{UserID: user.ID, Expertise: []string{}}
		if err := s.speakerRepo.Create(ctx, sp); err != nil {
			return nil, fmt.Errorf("failed to create speaker profile: %w", err)
		}
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if s.tokenRevoker == nil {
		return nil
	}
	// The token may be freshly issued; the expiry window is its upper bound.
	if err := s.tokenRevoker.Revoke(ctx, token, s.tokenExpiry); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
