package handler_test

import (
	"booking-web-server/config"
	"booking-web-server/internal/handler"
	"booking-web-server/internal/model"
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

type MockAuthenticationService struct {
	mock.Mock
}

func (m *MockAuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, *model.User, error) {
	args := m.Called(ctx, email, password)

	var tokens *model.TokensPair
	if t := args.Get(0); t != nil {
		tokens = t.(*model.TokensPair)
	}

	var user *model.User
	if u := args.Get(1); u != nil {
		user = u.(*model.User)
	}

	return tokens, user, args.Error(2)
}

func (m *MockAuthenticationService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestAuthHandler(t *testing.T) (*handler.AuthenticationHandler, *MockAuthenticationService) {
	mockService := new(MockAuthenticationService)

	h, err := handler.NewAuthenticationHandler(mockService, &config.JWTConfig{
		AccessTokenTTL:  "40m",
		RefreshTokenTTL: "168h",
	})
	require.NoError(t, err)

	return h, mockService
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q не найдена в ответе", name)
	return nil
}

// ===== LOGIN =====

func TestLoginHandler_Success(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}
	user := &model.User{UUID: "u1", Username: "user1", Email: "test@example.com"}

	mockService.On("Login", mock.Anything, "test@example.com", "goodpass").
		Return(tokens, user, nil)

	body := `{"email":"test@example.com","password":"goodpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp requestresponse.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "u1", resp.User.UUID)

	// refresh токен уходит только в httpOnly cookie
	assert.NotContains(t, rec.Body.String(), "ref")

	cookie := findCookie(t, rec, "jwt")
	assert.Equal(t, "ref", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 168*3600, cookie.MaxAge)

	mockService.AssertExpectations(t)
}

func TestLoginHandler_BadJSON(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader("{не json"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_EmptyFields(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"email":"","password":""}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Login", mock.Anything, "test@example.com", "badpass").
		Return(nil, nil, service.ErrInvalidCredentials)

	body := `{"email":"test@example.com","password":"badpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandler_ServiceError(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Login", mock.Anything, "test@example.com", "goodpass").
		Return(nil, nil, errors.New("db down"))

	body := `{"email":"test@example.com","password":"goodpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ===== REFRESH =====

func TestRefreshHandler_NoCookie(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	rec := httptest.NewRecorder()

	h.RefreshToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestRefreshHandler_Forbidden(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Refresh", mock.Anything, "ref").Return("", service.ErrForbidden)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "ref"})
	rec := httptest.NewRecorder()

	h.RefreshToken(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRefreshHandler_Success(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Refresh", mock.Anything, "ref").Return("new-access", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "ref"})
	rec := httptest.NewRecorder()

	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp requestresponse.RefreshTokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "new-access", resp.AccessToken)

	// cookie не перевыставляется: refresh токен остаётся прежним
	assert.Empty(t, rec.Result().Cookies())
}

// ===== LOGOUT =====

// Без cookie завершать нечего
func TestLogoutHandler_NoCookie(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogoutHandler_Success(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Logout", mock.Anything, "ref").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "ref"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(t, rec, "jwt")
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	mockService.AssertExpectations(t)
}

func TestLogoutHandler_ServiceError(t *testing.T) {
	h, mockService := newTestAuthHandler(t)

	mockService.On("Logout", mock.Anything, "ref").Return(errors.New("db down"))

	req := httptest.NewRequest(http.MethodDelete, "/api/auth", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "ref"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
