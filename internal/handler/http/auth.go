package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kita-hr/leave-backend-go/internal/domain/auth"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
	"github.com/kita-hr/leave-backend-go/internal/pkg/jwt"
	authService "github.com/kita-hr/leave-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService authService.Service
	jwtService  jwt.Service
}

func NewAuthHandler(svc authService.Service, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{authService: svc, jwtService: jwtService}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	response.Success(w, resp)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshReq auth.RefreshRequest

	// Cookie first, JSON body as the fallback for non-browser clients.
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		refreshReq.RefreshToken = cookie.Value
	} else {
		if err := json.NewDecoder(r.Body).Decode(&refreshReq); err != nil {
			slog.Error("RefreshToken decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := refreshReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := a.authService.Refresh(r.Context(), refreshReq.RefreshToken)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshReq auth.RefreshRequest

	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		refreshReq.RefreshToken = cookie.Value
	} else {
		// Body is optional on logout; a missing token is a no-op.
		_ = json.NewDecoder(r.Body).Decode(&refreshReq)
	}

	a.authService.Logout(r.Context(), refreshReq.RefreshToken)

	// Clear the refresh token cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	})
	response.SuccessWithMessage(w, "Logged out", nil)
}
