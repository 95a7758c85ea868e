package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/foodiez/directory/internal/api/http"
	"github.com/foodiez/directory/internal/api/http/handlers"
	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/events"
	"github.com/foodiez/directory/internal/observability"
	"github.com/foodiez/directory/internal/persistence"
	"github.com/foodiez/directory/internal/repository"
	"github.com/foodiez/directory/internal/repository/memory"
	"github.com/foodiez/directory/internal/service"
	"github.com/foodiez/directory/internal/worker"
)

type repositories struct {
	users       repository.UserRepository
	admins      repository.AdminRepository
	restaurants repository.RestaurantRepository
	reviews     repository.ReviewRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg, logger)

	var profileCache service.ProfileCache
	if redis.Enabled() {
		profileCache = persistence.NewJSONCache(redis, cfg.App.Name+":profile:", cfg.Redis.ProfileCacheTTL)
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	vault := auth.NewVault(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	identities := service.NewIdentityStore(cfg.Identity, service.IdentityDependencies{
		UserRepo:       repos.users,
		AdminRepo:      repos.admins,
		RestaurantRepo: repos.restaurants,
		Logger:         logger,
	})
	registration := service.NewRegistrationService(cfg.Auth.AdminRegistrationCode, service.RegistrationDependencies{
		Identities: identities,
		Vault:      vault,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authn, err := service.NewAuthenticationService(service.AuthenticationDependencies{
		Identities: identities,
		Vault:      vault,
		Tokens:     tokens,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to init authentication", zap.Error(err))
	}
	restaurants := service.NewRestaurantService(cfg.Search, service.RestaurantDependencies{
		Identities:     identities,
		RestaurantRepo: repos.restaurants,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	reviews := service.NewReviewService(repos.reviews, dispatcher, logger)
	profiles := service.NewProfileService(identities, profileCache, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(registration, authn, profiles),
		Admins:         handlers.NewAdminsHandler(registration, authn),
		Restaurants:    handlers.NewRestaurantsHandler(restaurants),
		Reviews:        handlers.NewReviewsHandler(reviews),
		AuthMiddleware: auth.NewAuthMiddleware(authn.TokenManager(), identities),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newRepositories uses Postgres when a pool is configured and falls back to
// the in-memory store otherwise.
func newRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if pool := pg.PoolHandle(); pool != nil {
		return repositories{
			users:       repository.NewUserRepository(pool),
			admins:      repository.NewAdminRepository(pool),
			restaurants: repository.NewRestaurantRepository(pool),
			reviews:     repository.NewReviewRepository(pool),
		}
	}
	logger.Warn("using in-memory store; data is lost on restart")
	store := memory.NewStore()
	return repositories{
		users:       store.Users(),
		admins:      store.Admins(),
		restaurants: store.Restaurants(),
		reviews:     store.Reviews(),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
