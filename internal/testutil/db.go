// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"coursehub/internal/infra"
	"coursehub/internal/models/db_models"
)

// NewDB opens an isolated in-memory SQLite database with the schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infra.Migrate(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role db_models.UserRole) *db_models.User {
	t.Helper()

	id := uuid.New()
	user := &db_models.User{
		Email:        id.String() + "@example.com",
		PasswordHash: "x",
		DisplayName:  "user-" + id.String()[:8],
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCourse(t testing.TB, db *gorm.DB, owner *db_models.User, price int64) *db_models.Course {
	t.Helper()

	course := &db_models.Course{Name: "course", Price: price}
	if owner != nil {
		course.OwnerID = &owner.ID
	}
	require.NoError(t, db.Omit("Owner", "Lessons").Create(course).Error)
	return course
}

func CreateLesson(t testing.TB, db *gorm.DB, course *db_models.Course, owner *db_models.User, price int64) *db_models.Lesson {
	t.Helper()

	lesson := &db_models.Lesson{CourseID: course.ID, Name: "lesson", Price: price}
	if owner != nil {
		lesson.OwnerID = &owner.ID
	}
	require.NoError(t, db.Omit("Course", "Owner").Create(lesson).Error)
	return lesson
}

func CreatePayment(t testing.TB, db *gorm.DB, owner *db_models.User, course *db_models.Course, lesson *db_models.Lesson, paidAt int64) *db_models.Payment {
	t.Helper()

	payment := &db_models.Payment{PaidAt: paidAt, Method: db_models.PaymentMethodTransfer}
	if owner != nil {
		payment.OwnerID = &owner.ID
	}
	if course != nil {
		payment.CourseID = &course.ID
		payment.Amount = course.Price
	}
	if lesson != nil {
		payment.LessonID = &lesson.ID
		payment.Amount = lesson.Price
	}
	require.NoError(t, db.Omit("Course", "Lesson", "Owner").Create(payment).Error)
	return payment
}
