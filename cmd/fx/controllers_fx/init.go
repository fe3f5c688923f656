package controllers_fx

import (
	"go.uber.org/fx"

	"coursehub/internal/api"
	"coursehub/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewCourseController),
	fx.Provide(controllers.NewLessonController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewHealthController),
	fx.Provide(api.NewRouter),
)
