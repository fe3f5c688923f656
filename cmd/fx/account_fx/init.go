package account_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"coursehub/internal/config"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
	"coursehub/pkg/middleware"
)

var Module = fx.Provide(
	provideUserRepo, provideUserFinder, provideAccountService, provideUserService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideUserFinder(userRepo repositories.UserRepository) middleware.UserFinder {
	return userRepo
}

func provideAccountService(userRepo repositories.UserRepository, cfg *config.Config, logger zerolog.Logger) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, services.AuthConfigFrom(cfg), logger)
}

func provideUserService(userRepo repositories.UserRepository, paymentRepo repositories.PaymentRepository, logger zerolog.Logger) services.UserServiceInterface {
	return services.NewUserService(userRepo, paymentRepo, logger)
}
