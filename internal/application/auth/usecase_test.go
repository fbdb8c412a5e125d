package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	store := memory.New(&memory.Snapshot{Users: []entity.User{
		{ID: "2", Name: "Ninel", Email: "ninel@company.com", Role: entity.RoleManager, PasswordHash: string(hash)},
	}})
	uc := NewAuthUseCase(store.Users(), JWTConfig{Secret: "s3cret", ExpMinutes: 5, Issuer: "test"})
	ctx := context.Background()

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "Ninel@company.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "2", resp.User.ID)
	userID, role, err := jwt.Parse("s3cret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "2", userID)
	assert.Equal(t, entity.RoleManager, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninel@company.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@company.com", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
