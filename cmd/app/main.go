package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"coursehub/cmd/fx/account_fx"
	"coursehub/cmd/fx/config_fx"
	"coursehub/cmd/fx/controllers_fx"
	"coursehub/cmd/fx/course_fx"
	"coursehub/cmd/fx/db_fx"
	"coursehub/cmd/fx/mail_fx"
	"coursehub/cmd/fx/metrics_fx"
	"coursehub/cmd/fx/payment_service_fx"
	"coursehub/cmd/fx/queue_fx"
	"coursehub/cmd/fx/redis_fx"
	"coursehub/internal/config"
)

// @title CourseHub API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	gin.SetMode(gin.ReleaseMode)
	fx.New(CreateApp()).Run()
}

func CreateApp() fx.Option {
	return fx.Options(
		config_fx.Module,
		db_fx.Module,
		metrics_fx.Module,
		redis_fx.Module,
		mail_fx.Module,
		queue_fx.Module,

		account_fx.Module,
		course_fx.Module,
		payment_service_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
	)
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
