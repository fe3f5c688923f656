package db_fx

import (
	"go.uber.org/fx"

	"coursehub/internal/infra"
)

var Module = fx.Options(
	fx.Provide(infra.InitPostgresql),
	fx.Invoke(infra.RegisterPostgresLifecycle),
)
