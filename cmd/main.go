package main

import (
	"booking-web-server/config"
	_ "booking-web-server/docs"
	"booking-web-server/internal/handler"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"booking-web-server/internal/service"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Booking-web-server
// @version 1.0
// @description REST API для бронирования спортивных полей и отзывов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.S3AndRedis)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(refreshTokenRepo, cfg, jwtService, userRepo)
	userService := service.NewUserService(userRepo)
	fieldService := service.NewFieldService(fieldRepo, bookingRepo, cacheRepo, s3Service, time.Duration(cfg.TTL.S3AndRedis)*time.Second)
	reviewService := service.NewReviewService(reviewRepo)

	authHandler, err := handler.NewAuthenticationHandler(authService, &cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания authentication handler: %v", err)
	}
	userHandler := handler.NewUserHandler(userService)
	fieldHandler := handler.NewFieldHandler(fieldService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService)
	setupUserRoutes(router, userHandler)
	setupFieldRoutes(router, fieldHandler, jwtService)
	setupReviewRoutes(router, reviewHandler, jwtService)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Get("/me", h.GetCurrentUsersUUID)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			// refresh и logout работают по cookie, access токен им не нужен
			r.Post("/refresh", h.RefreshToken)
			r.Delete("/", h.Logout)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler) {
	r.Post("/api/register", h.RegisterUser)
}

func setupFieldRoutes(r chi.Router, h *handler.FieldHandler, jwtService *security.JWTService) {
	r.Route("/api/fields", func(r chi.Router) {
		r.Get("/", h.ListFields)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/{field_uuid}/bookings", h.CreateBooking)
		})
	})
}

func setupReviewRoutes(r chi.Router, h *handler.ReviewHandler, jwtService *security.JWTService) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/", h.CreateReview)
			r.Delete("/{review_uuid}", h.DeleteReview)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
