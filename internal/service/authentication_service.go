package service

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"booking-web-server/internal/util"
	"context"
	"errors"
	"fmt"
	"log"
)

// Типизированные ошибки сервиса. Хэндлеры переводят их в HTTP-статусы,
// любая другая ошибка уходит наружу как 500 без деталей.
var (
	// ErrInvalidCredentials : неверный email или пароль (намеренно неразличимы)
	ErrInvalidCredentials = errors.New("неверный email или пароль")

	// ErrForbidden : refresh запрещён. Покрывает сразу несколько случаев —
	// токен не выдавался, сессия уже завершена, подпись/срок невалидны,
	// subject токена не совпал с записью. Клиент их различать не должен
	ErrForbidden = errors.New("доступ запрещён")
)

type AuthenticationService struct {
	refreshTokenRepo ports.RefreshTokenRepositoryInterface
	*config.AppConfig
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
}

func NewAuthenticationService(
	repo ports.RefreshTokenRepositoryInterface,
	cfg *config.AppConfig,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		repo,
		cfg,
		service,
		userInterface,
	}
}

// Login проверяет учётные данные, выпускает пару токенов и сохраняет запись
// о refresh токене. Существующие сессии пользователя не проверяются:
// повторный логин создаёт независимую сессию со своей записью
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, *model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, nil, fmt.Errorf("database connection не найден в context")
	}

	user, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if err := s.refreshTokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("ошибка сохранения refresh токена: %w", err)
	}

	return tokens, user, nil
}

// Refresh выпускает новый access токен по refresh токену.
// Порядок проверок:
//  1. Запись в БД по точному значению токена. Её отсутствие означает, что токен
//     либо не выдавался, либо сессия завершена логаутом — оба случая отдают
//     одинаковый ErrForbidden.
//  2. Криптографическая проверка подписи и срока действия refresh токена.
//  3. Сверка subject из токена с subject из записи (защита от рассинхронизации
//     хранилища и токена).
//
// Сам refresh токен и его запись не трогаются: ни ротации, ни одноразовости.
// Возвращает новый access токен или ErrForbidden
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	storedToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			log.Printf("[Refresh] токен в БД не найден, отказ")
			return "", ErrForbidden
		}
		return "", fmt.Errorf("ошибка поиска refresh токена: %w", err)
	}

	claims, err := s.jwtServiceInterface.VerifyToken(security.TokenKindRefresh, refreshToken)
	if err != nil {
		log.Printf("[Refresh] refresh токен не прошёл верификацию: %v", err)
		return "", ErrForbidden
	}

	if claims.UserUUID != storedToken.UserUUID {
		log.Printf("[Refresh] subject токена не совпадает с записью в БД")
		return "", ErrForbidden
	}

	newAccessToken, err := s.jwtServiceInterface.IssueToken(security.TokenKindAccess, claims.UserUUID)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	return newAccessToken, nil
}

// Logout удаляет запись о refresh токене и тем самым навсегда завершает сессию.
// Отсутствие записи ошибкой не считается: операция идемпотентна
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	deletedCount, err := s.refreshTokenRepo.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return util.LogError("не удалось удалить refresh токен", err)
	}

	if deletedCount == 0 {
		log.Printf("[Logout] refresh токен в БД не найден, удалять нечего")
	}

	return nil
}
