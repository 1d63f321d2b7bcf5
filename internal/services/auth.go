// Файл: internal/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error) {
	email := utils.NormalizeEmail(payload.Email)
	name := strings.TrimSpace(payload.Name)
	if name == "" || email == "" || payload.Password == "" {
		return nil, apperrors.NewValidationError("Name, email, and password are required")
	}
	if len(payload.Password) < constants.MinPasswordLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflictError("Email already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := utils.Coalesce(payload.Role, constants.RoleEmployee)
	if role == "" {
		role = constants.RoleEmployee
	}

	user, err := s.userRepo.CreateUser(ctx, &entities.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Phone:    payload.Phone,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Зарегистрирован пользователь", zap.Uint64("userID", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login не различает "нет такого email" и "неверный пароль".
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	email := utils.NormalizeEmail(payload.Email)
	if email == "" || payload.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	if err := s.checkLockout(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.resetLoginAttempts(ctx, email)
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("GetUserByID: пользователь не найден", zap.Uint64("userID", userID))
			return nil, apperrors.NewNotFoundError(msgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// checkLockout при недоступном Redis пропускает вход: блокировка - не единственная защита.
func (s *AuthService) checkLockout(ctx context.Context, email string) error {
	locked, err := s.cacheRepo.Exists(ctx, fmt.Sprintf(constants.CacheKeyLockout, email))
	if err != nil {
		s.logger.Warn("checkLockout: кэш недоступен", zap.Error(err))
		return nil
	}
	if locked {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, email string) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, email)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("handleFailedLoginAttempt: кэш недоступен", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyLockout, email), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("Вход заблокирован после серии неудачных попыток", zap.Int64("attempts", attempts))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, email string) {
	_ = s.cacheRepo.Del(ctx,
		fmt.Sprintf(constants.CacheKeyLoginAttempts, email),
		fmt.Sprintf(constants.CacheKeyLockout, email))
}
