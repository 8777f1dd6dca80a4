package ports

import (
	"booking-web-server/internal/model"
	"context"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.TokensPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}
