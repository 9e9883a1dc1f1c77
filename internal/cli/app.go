package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/config"
	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/ratelimit"
	"github.com/quizhub/quiz-service/internal/repositories/postgres"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
	"github.com/quizhub/quiz-service/internal/validator"
	"github.com/quizhub/quiz-service/pkg"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// application bundles the process wide dependencies shared by the commands
type application struct {
	cfg       *config.Config
	logger    utils.Logger
	db        *gorm.DB
	redis     *redis.Client
	publisher events.EventPublisher
	services  services.ServiceManager
}

func loadConfig(path string) (*config.Config, utils.Logger, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, utils.NewLoggerForEnvironment(cfg.Environment), nil
}

func openDatabase(cfg *config.Config, migrate bool) (*gorm.DB, error) {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := pkg.Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func newApplication(ctx context.Context, configPath string, migrate bool) (*application, error) {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slogger := utils.ToSlogLogger(logger)

	app := &application{cfg: cfg, logger: logger}

	if app.db, err = openDatabase(cfg, migrate); err != nil {
		return nil, err
	}

	var limiter ratelimit.LoginLimiter
	if app.redis, err = pkg.NewRedisClient(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if app.redis != nil {
		limiter = ratelimit.NewRedisLoginLimiter(app.redis, cfg.LoginMaxFailures, cfg.LoginWindow)
	} else {
		logger.Warn("REDIS_URL not set, login throttling disabled")
		limiter = ratelimit.NewNoopLoginLimiter()
	}

	if app.publisher, err = cfg.Events.CreateEventPublisher(slogger); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	app.services = services.NewServiceManager(services.ServiceDeps{
		Repo:      postgres.NewRepository(app.db),
		Tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:    auth.NewPasswordHasher(cfg.BcryptCost),
		Limiter:   limiter,
		Publisher: app.publisher,
		Logger:    slogger,
		Validator: validator.New(),
	})
	return app, nil
}

func (a *application) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
