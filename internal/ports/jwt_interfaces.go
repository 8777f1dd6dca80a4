package ports

import (
	"booking-web-server/internal/model"
	"booking-web-server/internal/security"
	"context"
)

// RefreshTokenRepositoryInterface : хранилище записей о выданных refresh токенах
type RefreshTokenRepositoryInterface interface {
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
}

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error)
	IssueToken(kind security.TokenKind, userUUID string) (string, error)
	VerifyToken(kind security.TokenKind, tokenStr string) (*security.Claims, error)
}
