package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	jwtsvc "carencia/internal/pkg/jwt"
	"carencia/internal/repository"
)

// Service authenticates admin-panel operators.
type Service struct {
	users *repository.UserRepository
	jwt   *jwtsvc.Service
}

func NewService(users *repository.UserRepository, jwt *jwtsvc.Service) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user}, nil
}
