package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.signUpFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func TestAuthController_SignUp(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubAuthService{
			signUpFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
				require.Equal(t, "Ada", name)
				require.Equal(t, "ada@example.com", email)
				return &domain.User{ID: "user-1", Name: name, Email: email}, nil
			},
		}
		controller := NewAuthController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"secret-password"}`))
		rec := httptest.NewRecorder()
		controller.SignUp(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		require.Nil(t, resp.Error)
		// The hash and salt carry json:"-" and must never leak.
		require.NotContains(t, rec.Body.String(), "password")
		require.NotContains(t, rec.Body.String(), "salt")
	})

	t.Run("validation failure", func(t *testing.T) {
		controller := NewAuthController(testLogger(), &stubAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			strings.NewReader(`{"name":"A","email":"bad","password":"x"}`))
		rec := httptest.NewRecorder()
		controller.SignUp(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &stubAuthService{
			signUpFn: func(context.Context, string, string, string) (*domain.User, error) {
				return nil, domain.ErrDuplicateEmail
			},
		}
		controller := NewAuthController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"secret-password"}`))
		rec := httptest.NewRecorder()
		controller.SignUp(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, h.ErrCodeConflict, decodeResponse(t, rec).Error.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("returns bearer token", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
				return "jwt-token", &domain.User{ID: "user-1", Email: email}, nil
			},
		}
		controller := NewAuthController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"ada@example.com","password":"secret-password"}`))
		rec := httptest.NewRecorder()
		controller.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token":"jwt-token"`)
		require.Contains(t, rec.Body.String(), `"token_type":"Bearer"`)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(context.Context, string, string) (string, *domain.User, error) {
				return "", nil, domain.ErrInvalidInput
			},
		}
		controller := NewAuthController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		controller.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, h.ErrCodeUnauthorized, decodeResponse(t, rec).Error.Code)
	})
}
