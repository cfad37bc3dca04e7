package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"carencia/internal/database"
	"carencia/internal/domain"
	jwtsvc "carencia/internal/pkg/jwt"
	"carencia/internal/repository"
)

func setupAuthEnv(t *testing.T) (*Service, *jwtsvc.Service) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Email:        "admin@carencia.com.br",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         domain.RoleAdmin,
	}))

	j := jwtsvc.New("test-secret", time.Hour)
	return NewService(users, j), j
}

func TestLogin(t *testing.T) {
	svc, j := setupAuthEnv(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &LoginRequest{
			Email:    "Admin@Carencia.com.br ",
			Password: "admin123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)

		claims, err := j.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleAdmin), claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "admin@carencia.com.br",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "nobody@carencia.com.br",
			Password: "admin123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
