package service_test

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"booking-web-server/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, exec sqlx.ExtContext, username string) (*model.User, error) {
	args := m.Called(ctx, exec, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockJWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(userUUID)

	var tokens *model.TokensPair
	if t := args.Get(0); t != nil {
		tokens = t.(*model.TokensPair)
	}

	var refresh *model.RefreshToken
	if r := args.Get(1); r != nil {
		refresh = r.(*model.RefreshToken)
	}

	return tokens, refresh, args.Error(2)
}

func (m *MockJWTService) IssueToken(kind security.TokenKind, userUUID string) (string, error) {
	args := m.Called(kind, userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) VerifyToken(kind security.TokenKind, tokenStr string) (*security.Claims, error) {
	args := m.Called(kind, tokenStr)
	if claims, ok := args.Get(0).(*security.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRefreshTokenRepo
type MockRefreshTokenRepo struct {
	mock.Mock
}

func (m *MockRefreshTokenRepo) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	if t, ok := args.Get(0).(*model.RefreshToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepo) DeleteByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

// ===== HELPERS =====

func newTestAuthService() (*service.AuthenticationService, *MockUserRepository, *MockJWTService, *MockRefreshTokenRepo) {
	mockUserRepo := new(MockUserRepository)
	mockJWTService := new(MockJWTService)
	mockRefreshRepo := new(MockRefreshTokenRepo)

	svc := service.NewAuthenticationService(
		mockRefreshRepo,
		&config.AppConfig{},
		mockJWTService,
		mockUserRepo,
	)

	return svc, mockUserRepo, mockJWTService, mockRefreshRepo
}

// ===== LOGIN =====

// 1. Нет БД в контексте
func TestLogin_NoDBInContext(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _, err := svc.Login(context.Background(), "test@example.com", "pass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database connection не найден")
}

// 2. Пользователь не найден: наружу уходит та же ошибка, что при неверном пароле
func TestLogin_UserNotFound(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, _, err := svc.Login(ctx, "test@example.com", "pass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 3. Неверный пароль
func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", PasswordHash: hash}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)

	_, _, err := svc.Login(ctx, "test@example.com", "badpass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 4. Ошибка сохранения записи о refresh токене
func TestLogin_SaveRefreshTokenError(t *testing.T) {
	svc, mockUserRepo, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", PasswordHash: hash}
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}
	refresh := &model.RefreshToken{Token: "ref", UserUUID: "u1", CreatedAt: time.Now().UTC()}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateAccessRefreshTokens", "u1").
		Return(tokens, refresh, nil)
	mockRefreshRepo.On("SaveRefreshToken", ctx, refresh).
		Return(errors.New("db error"))

	_, _, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка сохранения refresh токена")
	mockRefreshRepo.AssertExpectations(t)
}

// 5. Успешный логин: пара токенов выпущена, запись сохранена
func TestLogin_Success(t *testing.T) {
	svc, mockUserRepo, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Username: "user1", Email: "test@example.com", PasswordHash: hash}
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}
	refresh := &model.RefreshToken{Token: "ref", UserUUID: "u1", CreatedAt: time.Now().UTC()}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateAccessRefreshTokens", "u1").
		Return(tokens, refresh, nil)
	mockRefreshRepo.On("SaveRefreshToken", ctx, refresh).
		Return(nil)

	gotTokens, gotUser, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.NoError(t, err)
	assert.Equal(t, tokens, gotTokens)
	assert.Equal(t, user, gotUser)

	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockRefreshRepo.AssertExpectations(t)
}

// ===== REFRESH =====

// Записи нет: токен либо не выдавался, либо сессия завершена логаутом.
// До криптографической проверки дело не доходит
func TestRefresh_RecordNotFound(t *testing.T) {
	svc, _, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	mockRefreshRepo.On("FindByToken", ctx, "token").
		Return(nil, repository.ErrTokenNotFound)

	accessToken, err := svc.Refresh(ctx, "token")

	assert.Empty(t, accessToken)
	assert.ErrorIs(t, err, service.ErrForbidden)
	mockJWTService.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	mockRefreshRepo.AssertExpectations(t)
}

// Ошибка самого хранилища не маскируется под отказ в доступе
func TestRefresh_StoreError(t *testing.T) {
	svc, _, _, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	mockRefreshRepo.On("FindByToken", ctx, "token").
		Return(nil, errors.New("connection refused"))

	_, err := svc.Refresh(ctx, "token")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrForbidden)
}

// Запись есть, но подпись или срок токена невалидны
func TestRefresh_VerifyFailed(t *testing.T) {
	svc, _, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	stored := &model.RefreshToken{Token: "token", UserUUID: "u1"}

	mockRefreshRepo.On("FindByToken", ctx, "token").Return(stored, nil)
	mockJWTService.On("VerifyToken", security.TokenKindRefresh, "token").
		Return(nil, security.ErrTokenExpired)

	_, err := svc.Refresh(ctx, "token")

	assert.ErrorIs(t, err, service.ErrForbidden)
	mockJWTService.AssertExpectations(t)
}

// Subject из токена не совпадает с записью в БД
func TestRefresh_SubjectMismatch(t *testing.T) {
	svc, _, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	stored := &model.RefreshToken{Token: "token", UserUUID: "u1"}
	claims := &security.Claims{UserUUID: "другой-пользователь"}

	mockRefreshRepo.On("FindByToken", ctx, "token").Return(stored, nil)
	mockJWTService.On("VerifyToken", security.TokenKindRefresh, "token").
		Return(claims, nil)

	_, err := svc.Refresh(ctx, "token")

	assert.ErrorIs(t, err, service.ErrForbidden)
	mockJWTService.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
}

// Успешный refresh: новый access токен, refresh токен и его запись не трогаются
func TestRefresh_Success(t *testing.T) {
	svc, _, mockJWTService, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	stored := &model.RefreshToken{Token: "token", UserUUID: "u1"}
	claims := &security.Claims{UserUUID: "u1"}

	mockRefreshRepo.On("FindByToken", ctx, "token").Return(stored, nil)
	mockJWTService.On("VerifyToken", security.TokenKindRefresh, "token").
		Return(claims, nil)
	mockJWTService.On("IssueToken", security.TokenKindAccess, "u1").
		Return("new-access-token", nil)

	accessToken, err := svc.Refresh(ctx, "token")

	assert.NoError(t, err)
	assert.Equal(t, "new-access-token", accessToken)

	// ни ротации, ни удаления записи
	mockRefreshRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything)
	mockRefreshRepo.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
	mockJWTService.AssertExpectations(t)
}

// ===== LOGOUT =====

func TestLogout_Success(t *testing.T) {
	svc, _, _, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	mockRefreshRepo.On("DeleteByToken", ctx, "token").Return(int64(1), nil)

	err := svc.Logout(ctx, "token")

	assert.NoError(t, err)
	mockRefreshRepo.AssertExpectations(t)
}

// Повторный logout с тем же токеном успешен, хотя запись уже удалена
func TestLogout_Idempotent(t *testing.T) {
	svc, _, _, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	mockRefreshRepo.On("DeleteByToken", ctx, "token").Return(int64(0), nil)

	err := svc.Logout(ctx, "token")

	assert.NoError(t, err)
	mockRefreshRepo.AssertExpectations(t)
}

func TestLogout_StoreError(t *testing.T) {
	svc, _, _, mockRefreshRepo := newTestAuthService()
	ctx := context.Background()

	mockRefreshRepo.On("DeleteByToken", ctx, "token").
		Return(int64(0), errors.New("connection refused"))

	err := svc.Logout(ctx, "token")

	assert.Error(t, err)
}
