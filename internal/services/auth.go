package services

import (
	"context"
	"fmt"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/service"

	"go.uber.org/zap"
)

type UserDirectoryInterface interface {
	FindByID(id string) (entities.User, bool)
	List() []entities.User
}

// StaticUserDirectory serves a fixed staff list.
type StaticUserDirectory struct {
	users []entities.User
}

func NewStaticUserDirectory(users []entities.User) *StaticUserDirectory {
	return &StaticUserDirectory{users: append([]entities.User(nil), users...)}
}

func (d *StaticUserDirectory) FindByID(id string) (entities.User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return entities.User{}, false
}

func (d *StaticUserDirectory) List() []entities.User {
	return append([]entities.User(nil), d.users...)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	ListUsers(ctx context.Context) []entities.User
	Me(ctx context.Context) (*entities.User, error)
}

type AuthService struct {
	users      UserDirectoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(users UserDirectoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{users: users, jwtService: jwtService, logger: logger}
}

// Login issues an access token for a user picked from the directory. There are no passwords.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, ok := s.users.FindByID(payload.UserID)
	if !ok {
		s.logger.Warn("login for unknown user", zap.String("userID", payload.UserID))
		return nil, fmt.Errorf("user %s: %w", payload.UserID, apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return &dto.LoginResponseDTO{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:        user,
	}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) []entities.User {
	return s.users.List()
}

func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := s.users.FindByID(actor.ID)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}
