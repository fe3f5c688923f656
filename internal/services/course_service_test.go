package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/testutil"
	"coursehub/pkg/utils"
)

func TestCourseService_CreateForcesOwner(t *testing.T) {
	f := newFixture(t)
	svc := f.courseService()
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	bob, _ := f.user(t, db_models.RoleMember)

	resp, err := svc.Create(ctx, aliceActor, request_models.CourseRequest{
		Name:  "Go",
		Price: int64Ptr(100),
		Owner: &bob.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, alice.ID, *resp.OwnerID)
	assert.EqualValues(t, 100, resp.Price)
}

func TestCourseService_CreateRejectsModeratorsAndAnonymous(t *testing.T) {
	f := newFixture(t)
	svc := f.courseService()
	_, mod := f.user(t, db_models.RoleModerator)

	_, err := svc.Create(context.Background(), mod, request_models.CourseRequest{Name: "x", Price: int64Ptr(1)})
	require.ErrorIs(t, err, utils.ErrPermissionDenied)

	_, err = svc.Create(context.Background(), access.Anonymous(), request_models.CourseRequest{Name: "x", Price: int64Ptr(1)})
	require.ErrorIs(t, err, utils.ErrUnauthenticated)

	var count int64
	require.NoError(t, f.db.Model(&db_models.Course{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCourseService_Visibility(t *testing.T) {
	f := newFixture(t)
	svc := f.courseService()
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	_, bobActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)

	course := testutil.CreateCourse(t, f.db, alice, 50)
	testutil.CreateLesson(t, f.db, course, alice, 5)

	_, err := svc.Get(ctx, bobActor, course.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	page, err := svc.List(ctx, bobActor, firstPage)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = svc.List(ctx, access.Anonymous(), firstPage)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)

	page, err = svc.List(ctx, mod, firstPage)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Items[0].LessonsCount)

	got, err := svc.Get(ctx, aliceActor, course.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lessons, 1)
	assert.False(t, got.IsSubscribed)

	_, err = f.subs.Upsert(ctx, alice.ID, course.ID)
	require.NoError(t, err)
	got, err = svc.Get(ctx, aliceActor, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)
}

func TestCourseService_Update(t *testing.T) {
	f := newFixture(t)
	svc := f.courseService()
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	_, bobActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)
	course := testutil.CreateCourse(t, f.db, alice, 50)

	name := "Renamed"
	resp, err := svc.Update(ctx, aliceActor, course.ID, request_models.PatchCourseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.EqualValues(t, 50, resp.Price)

	_, err = svc.Update(ctx, bobActor, course.ID, request_models.PatchCourseRequest{Name: &name})
	require.ErrorIs(t, err, utils.ErrNotFound)

	resp, err = svc.Update(ctx, mod, course.ID, request_models.PatchCourseRequest{Price: int64Ptr(10)})
	require.NoError(t, err)
	assert.EqualValues(t, 10, resp.Price)
	assert.Equal(t, alice.ID, *resp.OwnerID)

	_, err = svc.Update(ctx, access.Anonymous(), course.ID, request_models.PatchCourseRequest{Name: &name})
	require.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Update(ctx, aliceActor, course.ID, request_models.PatchCourseRequest{Price: int64Ptr(-1)})
	require.ErrorIs(t, err, utils.ErrInvalidPrice)
}

func TestCourseService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := f.courseService()
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	_, bobActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)
	course := testutil.CreateCourse(t, f.db, alice, 50)

	require.ErrorIs(t, svc.Delete(ctx, mod, course.ID), utils.ErrPermissionDenied)
	require.ErrorIs(t, svc.Delete(ctx, mod, uuid.New()), utils.ErrPermissionDenied)
	require.ErrorIs(t, svc.Delete(ctx, bobActor, course.ID), utils.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, access.Anonymous(), course.ID), utils.ErrUnauthenticated)

	still, err := f.courses.FindById(ctx, course.ID)
	require.NoError(t, err)
	require.NotNil(t, still)

	require.NoError(t, svc.Delete(ctx, aliceActor, course.ID))
	require.ErrorIs(t, svc.Delete(ctx, aliceActor, course.ID), utils.ErrNotFound)
}
