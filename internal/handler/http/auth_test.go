package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kita-hr/leave-backend-go/internal/domain/auth"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/jwt"
	authService "github.com/kita-hr/leave-backend-go/internal/service/auth"
)

type authStubUserRepo struct {
	users map[string]user.User
}

func (s *authStubUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}
func (s *authStubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (s *authStubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (s *authStubUserRepo) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	return nil, nil
}
func (s *authStubUserRepo) ListManagers(ctx context.Context) ([]user.User, error) { return nil, nil }
func (s *authStubUserRepo) Update(ctx context.Context, u user.User) error         { return nil }
func (s *authStubUserRepo) Deactivate(ctx context.Context, id string) error       { return nil }
func (s *authStubUserRepo) Delete(ctx context.Context, id string) error           { return nil }
func (s *authStubUserRepo) HasOwnedRecords(ctx context.Context, id string) (bool, error) {
	return false, nil
}
func (s *authStubUserRepo) ReassignReports(ctx context.Context, oldManagerID string, newManagerID *string) (int64, error) {
	return 0, nil
}
func (s *authStubUserRepo) DeductSickBalance(ctx context.Context, id string, days int) error {
	return nil
}

func newAuthHandler(t *testing.T) AuthHandler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &authStubUserRepo{users: map[string]user.User{
		"u-1": {
			ID:           "u-1",
			Email:        "employee@example.com",
			Name:         "Employee",
			Role:         user.RoleEmployee,
			PasswordHash: string(hash),
			IsActive:     true,
		},
	}}

	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewAuthHandler(authService.NewService(repo, jwtSvc), jwtSvc)
}

func doLogin(t *testing.T, handler AuthHandler) *http.Response {
	t.Helper()

	body, err := json.Marshal(auth.LoginRequest{
		Email:    "employee@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	return res
}

func refreshCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestAuthHandler_Login_SetsRefreshCookie(t *testing.T) {
	handler := newAuthHandler(t)

	res := doLogin(t, handler)
	cookie := refreshCookie(t, res)

	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	handler := newAuthHandler(t)
	cookie := refreshCookie(t, doLogin(t, handler))

	// No body at all; the cookie carries the token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.RefreshToken(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestAuthHandler_Logout_ClearsCookieAndRevokes(t *testing.T) {
	handler := newAuthHandler(t)
	cookie := refreshCookie(t, doLogin(t, handler))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := refreshCookie(t, rec.Result())
	assert.Empty(t, cleared.Value)

	// The revoked token no longer refreshes.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.RefreshToken(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
