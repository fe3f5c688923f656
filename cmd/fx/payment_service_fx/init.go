package payment_service_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"coursehub/internal/gateway"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
)

var Module = fx.Provide(
	providePaymentRepo, gateway.NewStripeGatewayFromConfig, services.NewPaymentService,
)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}
