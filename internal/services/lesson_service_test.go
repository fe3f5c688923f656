package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/queue"
	"coursehub/internal/repositories"
	"coursehub/internal/testutil"
	"coursehub/pkg/utils"
)

func TestLessonService_CreateEnqueuesNotification(t *testing.T) {
	f := newFixture(t)
	svc := f.lessonService()
	ctx := context.Background()

	owner, ownerActor := f.user(t, db_models.RoleMember)
	other, _ := f.user(t, db_models.RoleMember)
	course := testutil.CreateCourse(t, f.db, owner, 100)

	resp, err := svc.Create(ctx, ownerActor, request_models.LessonRequest{
		CourseID: course.ID,
		Name:     "Intro",
		Price:    int64Ptr(10),
		Owner:    &other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, *resp.OwnerID)

	require.Len(t, f.publisher.jobs, 1)
	assert.Equal(t, queue.JobNotifySubscribers, f.publisher.jobs[0].Name)
	assert.Equal(t, course.ID, f.publisher.jobs[0].CourseID)
}

func TestLessonService_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("queue down")
	svc := f.lessonService()

	owner, ownerActor := f.user(t, db_models.RoleMember)
	course := testutil.CreateCourse(t, f.db, owner, 100)

	_, err := svc.Create(context.Background(), ownerActor, request_models.LessonRequest{
		CourseID: course.ID, Name: "Intro", Price: int64Ptr(10),
	})
	require.NoError(t, err)
}

func TestLessonService_CreateRules(t *testing.T) {
	f := newFixture(t)
	svc := f.lessonService()
	ctx := context.Background()

	owner, ownerActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)
	course := testutil.CreateCourse(t, f.db, owner, 100)

	_, err := svc.Create(ctx, mod, request_models.LessonRequest{CourseID: course.ID, Name: "x", Price: int64Ptr(1)})
	require.ErrorIs(t, err, utils.ErrPermissionDenied)

	_, err = svc.Create(ctx, access.Anonymous(), request_models.LessonRequest{CourseID: course.ID, Name: "x", Price: int64Ptr(1)})
	require.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Create(ctx, ownerActor, request_models.LessonRequest{CourseID: uuid.New(), Name: "x", Price: int64Ptr(1)})
	require.ErrorIs(t, err, utils.ErrCourseRequired)

	assert.Empty(t, f.publisher.jobs)
}

func TestLessonService_CourseOwnerCanModify(t *testing.T) {
	f := newFixture(t)
	svc := f.lessonService()
	ctx := context.Background()

	courseOwner, courseOwnerActor := f.user(t, db_models.RoleMember)
	author, authorActor := f.user(t, db_models.RoleMember)
	_, strangerActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)

	course := testutil.CreateCourse(t, f.db, courseOwner, 100)
	lesson := testutil.CreateLesson(t, f.db, course, author, 10)

	name := "by course owner"
	resp, err := svc.Update(ctx, courseOwnerActor, lesson.ID, request_models.PatchLessonRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)
	assert.Equal(t, author.ID, *resp.OwnerID)

	name = "by author"
	_, err = svc.Update(ctx, authorActor, lesson.ID, request_models.PatchLessonRequest{Name: &name})
	require.NoError(t, err)

	name = "by moderator"
	_, err = svc.Update(ctx, mod, lesson.ID, request_models.PatchLessonRequest{Name: &name})
	require.NoError(t, err)

	_, err = svc.Update(ctx, strangerActor, lesson.ID, request_models.PatchLessonRequest{Name: &name})
	require.ErrorIs(t, err, utils.ErrNotFound)

	assert.Len(t, f.publisher.jobs, 3)

	require.ErrorIs(t, svc.Delete(ctx, mod, lesson.ID), utils.ErrPermissionDenied)
	require.ErrorIs(t, svc.Delete(ctx, strangerActor, lesson.ID), utils.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, courseOwnerActor, lesson.ID))

	_, err = svc.Get(ctx, authorActor, lesson.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLessonService_MoveToMissingCourse(t *testing.T) {
	f := newFixture(t)
	svc := f.lessonService()

	owner, ownerActor := f.user(t, db_models.RoleMember)
	course := testutil.CreateCourse(t, f.db, owner, 100)
	lesson := testutil.CreateLesson(t, f.db, course, owner, 10)

	missing := uuid.New()
	_, err := svc.Update(context.Background(), ownerActor, lesson.ID, request_models.PatchLessonRequest{CourseID: &missing})
	require.ErrorIs(t, err, utils.ErrCourseRequired)
}

func TestLessonService_ListVisibility(t *testing.T) {
	f := newFixture(t)
	svc := f.lessonService()
	ctx := context.Background()

	owner, ownerActor := f.user(t, db_models.RoleMember)
	_, strangerActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)
	course := testutil.CreateCourse(t, f.db, owner, 100)
	testutil.CreateLesson(t, f.db, course, owner, 10)
	testutil.CreateLesson(t, f.db, course, nil, 10)

	for actor, want := range map[access.Actor]int{
		ownerActor:         2,
		strangerActor:      0,
		mod:                2,
		access.Anonymous(): 0,
	} {
		page, err := svc.List(ctx, actor, repositories.LessonFilter{}, firstPage)
		require.NoError(t, err)
		assert.Len(t, page.Items, want, actor.String())
	}
}
