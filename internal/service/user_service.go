package service

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrUsernameTaken : username уже занят другим пользователем
	ErrUsernameTaken = errors.New("username уже используется")

	// ErrEmailTaken : email уже занят другим пользователем
	ErrEmailTaken = errors.New("email уже используется")
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// Register создаёт нового пользователя, предварительно проверив
// уникальность username и email
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	if _, err := s.userRepository.FindByUsername(ctx, db, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("[UserService] ошибка проверки username: %w", err)
	}

	if _, err := s.userRepository.FindByEmail(ctx, db, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("[UserService] ошибка проверки email: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := s.userRepository.CreateUser(ctx, db, user); err != nil {
		return fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return nil
}
