package mail_fx

import (
	"go.uber.org/fx"

	"coursehub/internal/services"
)

var Module = fx.Provide(services.NewMailService)
