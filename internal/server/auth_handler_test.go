package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay/uni-counsellor/internal/types"
)

func setupAuthHandler(t *testing.T, store *MockUserStore) *AuthHandler {
	t.Helper()
	userService := NewUserService(store, testPasswordConfig(t))
	jwtService := setupTestJWTService(t, 24)
	return NewAuthHandler(userService, jwtService)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success returns user and token", func(t *testing.T) {
		userID := uuid.New()
		store := &MockUserStore{
			CreateUserFunc: func(context.Context, string, string, string, string) (uuid.UUID, error) {
				return userID, nil
			},
			GetUserFunc: func(_ context.Context, id uuid.UUID) (*types.User, error) {
				return &types.User{ID: id, Name: "Asha Rao", Email: "asha@example.com"}, nil
			},
		}
		handler := setupAuthHandler(t, store)

		rec := postJSON(t, handler.Register, types.CreateUserRequest{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler := setupAuthHandler(t, &MockUserStore{})
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		handler := setupAuthHandler(t, &MockUserStore{})
		rec := postJSON(t, handler.Register, types.CreateUserRequest{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		store := &MockUserStore{
			EmailExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
		}
		handler := setupAuthHandler(t, store)
		rec := postJSON(t, handler.Register, types.CreateUserRequest{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: "password123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	cfg := testPasswordConfig(t)
	hash, err := cfg.HashPassword("password123")
	require.NoError(t, err)
	existing := &types.User{ID: uuid.New(), Email: "asha@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		store := &MockUserStore{
			GetUserByEmailFunc: func(context.Context, string) (*types.User, error) { return existing, nil },
		}
		handler := setupAuthHandler(t, store)
		rec := postJSON(t, handler.Login, types.LoginRequest{
			Email:    "asha@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, existing.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := &MockUserStore{
			GetUserByEmailFunc: func(context.Context, string) (*types.User, error) { return existing, nil },
		}
		handler := setupAuthHandler(t, store)
		rec := postJSON(t, handler.Login, types.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		handler := setupAuthHandler(t, &MockUserStore{})
		rec := postJSON(t, handler.Login, types.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	cfg := testPasswordConfig(t)
	hash, err := cfg.HashPassword("old-password")
	require.NoError(t, err)
	userID := uuid.New()
	existing := &types.User{ID: userID, Email: "asha@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		store := &MockUserStore{
			GetUserFunc: func(context.Context, uuid.UUID) (*types.User, error) { return existing, nil },
		}
		handler := setupAuthHandler(t, store)

		body, _ := json.Marshal(types.UpdatePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password-1",
		})
		req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.UpdatePasswordWithUserID(rec, req, userID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong current password", func(t *testing.T) {
		store := &MockUserStore{
			GetUserFunc: func(context.Context, uuid.UUID) (*types.User, error) { return existing, nil },
		}
		handler := setupAuthHandler(t, store)

		body, _ := json.Marshal(types.UpdatePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "new-password-1",
		})
		req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.UpdatePasswordWithUserID(rec, req, userID)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
