package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"alcyxob/gym-management/internal/api" // Import API package
	"alcyxob/gym-management/internal/config"
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/logger"
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/memory"
	"alcyxob/gym-management/internal/repository/mongo"
	"alcyxob/gym-management/internal/service"
)

// @title Gym Management API
// @version 1.0
// @description API for managing gym members, subscriptions, trainers and the exercise library.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("set up logger: %w", err)
	}
	log.Info("configuration loaded", "storage", cfg.Storage.Driver, "address", cfg.Server.Address)

	domain.PasswordCost = cfg.Security.BcryptCost

	// --- Initialize Repositories ---
	repos, closeRepos, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	// --- Initialize Services ---
	services := api.Services{
		Auth:         service.NewAuthService(repos.users, repos.members, cfg.JWT.Secret, cfg.JWT.Expiration),
		Member:       service.NewMemberService(repos.members, repos.subscriptions, repos.users),
		Subscription: service.NewSubscriptionService(repos.subscriptions, repos.plans, repos.members, repos.users),
		Trainer:      service.NewTrainerService(repos.users, repos.members, cfg.Gym.MaxMembersPerTrainer),
		Exercise:     service.NewExerciseService(repos.exercises),
	}

	if err := bootstrapAdmin(context.Background(), log, cfg.Bootstrap, repos.users, services.Auth); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), api.MetricsMiddleware(recorder))
	api.SetupRoutes(router, cfg.JWT.Secret, services, recorder, metrics.Handler(registry))

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exiting")
	return nil
}

type repositories struct {
	users         repository.UserRepository
	members       repository.MemberRepository
	subscriptions repository.SubscriptionRepository
	plans         repository.PlanRepository
	exercises     repository.ExerciseRepository
}

// openRepositories builds the configured store. The returned func releases it.
func openRepositories(cfg config.Config) (repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return repositories{}, nil, err
		}
		db := client.Database(cfg.Database.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			if derr := mongo.DisconnectDB(client); derr != nil {
				slog.Error("disconnect mongodb", "error", derr)
			}
			return repositories{}, nil, err
		}

		closeFn := func() {
			if err := mongo.DisconnectDB(client); err != nil {
				slog.Error("disconnect mongodb", "error", err)
			}
		}
		return repositories{
			users:         mongo.NewMongoUserRepository(db),
			members:       mongo.NewMongoMemberRepository(db),
			subscriptions: mongo.NewMongoSubscriptionRepository(db),
			plans:         mongo.NewMongoPlanRepository(db),
			exercises:     mongo.NewMongoExerciseRepository(db),
		}, closeFn, nil
	default:
		return repositories{
			users:         memory.NewUserRepository(),
			members:       memory.NewMemberRepository(),
			subscriptions: memory.NewSubscriptionRepository(),
			plans:         memory.NewPlanRepository(),
			exercises:     memory.NewExerciseRepository(),
		}, func() {}, nil
	}
}

// bootstrapAdmin creates the configured administrator unless that username
// already exists.
func bootstrapAdmin(ctx context.Context, log *slog.Logger, cfg config.BootstrapConfig, users repository.UserRepository, auth service.AuthService) error {
	if cfg.AdminUsername == "" {
		return nil
	}
	exists, err := users.ExistsByUsername(ctx, cfg.AdminUsername)
	if err != nil || exists {
		return err
	}
	admin, err := auth.RegisterAdmin(ctx, domain.AccountInfo{
		UserID:   "ADM-" + uuid.NewString(),
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
		Phone:    cfg.AdminPhone,
	}, "SUPER", domain.FullPermissions())
	if err != nil {
		return err
	}
	log.Info("bootstrap admin created", "user_id", admin.UserID(), "username", admin.Username())
	return nil
}
