package course_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"coursehub/internal/repositories"
	"coursehub/internal/services"
)

var Module = fx.Provide(
	provideCourseRepo,
	provideLessonRepo,
	provideSubscriptionRepo,
	services.NewCourseService,
	services.NewLessonService,
	services.NewSubscriptionService,
	services.NewSubscriptionNotifier,
)

func provideCourseRepo(db *gorm.DB) repositories.CourseRepository {
	return repositories.NewCourseRepository(db)
}

func provideLessonRepo(db *gorm.DB) repositories.LessonRepository {
	return repositories.NewLessonRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}
