package security

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/util"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// TokenKind различает два вида токенов. У каждого вида свой секрет и свой TTL.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Типизированные ошибки верификации. Сервисы и middleware транслируют их
// в HTTP-ответы, наружу сами ошибки не уходят.
var (
	ErrTokenExpired   = errors.New("токен просрочен")
	ErrTokenMalformed = errors.New("токен не удалось разобрать")
	ErrTokenInvalid   = errors.New("невалидная подпись токена")
)

type Claims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessRefreshTokens выпускает пару токенов для пользователя и
// готовит запись model.RefreshToken для сохранения в БД.
// Запись ключуется точным значением refresh токена.
func (service *JWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	accessToken, err := service.IssueToken(TokenKindAccess, userUUID)
	if err != nil {
		return nil, nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshToken, err := service.IssueToken(TokenKindRefresh, userUUID)
	if err != nil {
		return nil, nil, util.LogError("ошибка генерации refresh токена", err)
	}

	record := &model.RefreshToken{
		Token:     refreshToken,
		UserUUID:  userUUID,
		CreatedAt: time.Now().UTC(),
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, record, nil
}

// IssueToken подписывает self-contained токен, связывающий пользователя
// и абсолютный срок действия, секретом соответствующего вида
func (service *JWTService) IssueToken(kind TokenKind, userUUID string) (string, error) {
	secret, err := service.secretFor(kind)
	if err != nil {
		return "", err
	}

	ttl, err := service.ttlFor(kind)
	if err != nil {
		return "", util.LogError("ошибка парсинга TTL", err)
	}

	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "booking-web-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secret)
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return signed, nil
}

// VerifyToken проверяет подпись и срок действия токена заданного вида.
// Проверка чистая: никаких обращений к БД и побочных эффектов.
//
// Возвращает:
//   - Claims с UUID пользователя
//   - ErrTokenExpired / ErrTokenMalformed / ErrTokenInvalid
func (service *JWTService) VerifyToken(kind TokenKind, jwtTokenStr string) (*Claims, error) {
	secret, err := service.secretFor(kind)
	if err != nil {
		return nil, err
	}

	var claims = &Claims{}
	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if jwtToken.Valid == false {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (service *JWTService) secretFor(kind TokenKind) ([]byte, error) {
	switch kind {
	case TokenKindAccess:
		return []byte(service.AccessSecret), nil
	case TokenKindRefresh:
		return []byte(service.RefreshSecret), nil
	default:
		return nil, fmt.Errorf("неизвестный вид токена: %s", kind)
	}
}

func (service *JWTService) ttlFor(kind TokenKind) (time.Duration, error) {
	switch kind {
	case TokenKindAccess:
		return time.ParseDuration(service.AccessTokenTTL)
	case TokenKindRefresh:
		return time.ParseDuration(service.RefreshTokenTTL)
	default:
		return 0, fmt.Errorf("неизвестный вид токена: %s", kind)
	}
}

// JWTMiddleware закрывает группу маршрутов: достаёт Bearer токен,
// верифицирует его как access токен и кладёт claims в контекст запроса.
// Привязка живёт только в рамках запроса, нигде не кэшируется.
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, next))
	}
}

func handleAuthentication(jwtService *JWTService, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			util.HandleError(writer, "токен отсутствует или заголовок некорректен", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		claims, err := jwtService.VerifyToken(TokenKindAccess, token)
		if err != nil {
			util.HandleError(writer, "невалидный или просроченный токен", http.StatusForbidden)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
