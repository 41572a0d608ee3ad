package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"github.com/rutasloja/rutas-backend/pkg/redis"
	"github.com/rutasloja/rutas-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

type AuthService interface {
	Register(in RegisterInput) (*model.User, *util.TokenPair, error)
	Login(identifier, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, accessToken string, expiresAt time.Time) error
	GetUserByID(id uint) (*model.User, error)
	GetUserStats(id uint) (*model.UserStats, error)
	SetRole(login string, role model.UserRole) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	blacklist     redis.TokenBlacklist
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	blacklist redis.TokenBlacklist,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	if blacklist == nil {
		blacklist = redis.NewTokenBlacklist(nil)
	}
	return &authService{
		userRepo:      userRepo,
		blacklist:     blacklist,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(in RegisterInput) (*model.User, *util.TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	logger.Info("Attempting user registration", map[string]interface{}{
		"username": in.Username,
		"email":    in.Email,
	})

	if err := util.ValidatePassword(in.Password); err != nil {
		logger.Warn("Registration failed: invalid password", map[string]interface{}{
			"username": in.Username,
			"error":    err.Error(),
		})
		return nil, nil, ErrInvalidPassword
	}

	if existing, err := s.userRepo.FindByEmail(in.Email); err == nil && existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": in.Email,
		})
		return nil, nil, ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if existing, err := s.userRepo.FindByLogin(in.Username); err == nil && existing != nil {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": in.Username,
		})
		return nil, nil, ErrUsernameAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashedPassword, err := util.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": in.Username,
		})
		return nil, nil, err
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, nil, ErrUsernameAlreadyExists
		}
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Username, string(user.Role), s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

// Login accepts either the username or the email as identifier.
func (s *authService) Login(identifier, password string) (*model.User, *util.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	logger.Info("Login attempt", map[string]interface{}{
		"identifier": identifier,
	})

	user, err := s.userRepo.FindByLogin(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"identifier": identifier,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}
	s.rehashIfNeeded(user, password)

	tokens, err := util.GenerateTokenPair(user.ID, user.Username, string(user.Role), s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

// rehashIfNeeded upgrades hashes made at an older bcrypt cost. Failures only
// log; the login itself already succeeded.
func (s *authService) rehashIfNeeded(user *model.User, password string) {
	if !util.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := util.HashPassword(password)
	if err == nil {
		err = s.userRepo.UpdatePasswordHash(user.ID, hash)
	}
	if err != nil {
		logger.Warn("Failed to upgrade password hash", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return
	}
	user.PasswordHash = hash
	logger.Debug("Password hash upgraded", map[string]interface{}{
		"user_id": user.ID,
	})
}

// Logout revokes the access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, accessToken string, expiresAt time.Time) error {
	return s.blacklist.Revoke(ctx, accessToken, time.Until(expiresAt))
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) GetUserStats(id uint) (*model.UserStats, error) {
	if _, err := s.GetUserByID(id); err != nil {
		return nil, err
	}
	return s.userRepo.Stats(id)
}

// SetRole takes effect on the next login; tokens already issued keep their role.
func (s *authService) SetRole(login string, role model.UserRole) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}
	user, err := s.userRepo.FindByLogin(strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.userRepo.UpdateRole(user.ID, role); err != nil {
		return nil, err
	}
	user.Role = role

	logger.Info("User role changed", map[string]interface{}{
		"user_id": user.ID,
		"role":    role,
	})
	return user, nil
}
