package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/repositories"
	"coursehub/internal/testutil"
	"coursehub/pkg/utils"
)

func TestPaymentRepository_ListVisibleWithFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPaymentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, db_models.RoleMember)
	alice := testutil.CreateUser(t, db, db_models.RoleMember)
	bob := testutil.CreateUser(t, db, db_models.RoleMember)
	mod := testutil.CreateUser(t, db, db_models.RoleModerator)

	course := testutil.CreateCourse(t, db, owner, 100)
	lesson := testutil.CreateLesson(t, db, course, owner, 10)

	first := testutil.CreatePayment(t, db, alice, course, nil, 100)
	second := testutil.CreatePayment(t, db, alice, nil, lesson, 200)
	testutil.CreatePayment(t, db, bob, course, nil, 300)

	payments, total, err := repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(alice)), repositories.PaymentFilter{}, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, payments, 2)
	assert.Equal(t, second.ID, payments[0].ID, "default ordering is newest first")

	payments, _, err = repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(alice)),
		repositories.PaymentFilter{Ordering: repositories.OrderPaidAtAsc}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, first.ID, payments[0].ID)

	payments, total, err = repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(alice)),
		repositories.PaymentFilter{OwnerID: &bob.ID}, firstPage)
	require.NoError(t, err)
	assert.Zero(t, total, "owner filter never widens visibility")
	assert.Empty(t, payments)

	_, total, err = repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(mod)),
		repositories.PaymentFilter{CourseID: &course.ID}, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	cash := db_models.PaymentMethodCash
	_, total, err = repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(mod)),
		repositories.PaymentFilter{Method: &cash}, firstPage)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = repo.ListVisible(ctx, access.VisibilityFor(access.ForUser(mod)),
		repositories.PaymentFilter{LessonID: &lesson.ID}, utils.Pagination{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestPaymentRepository_FindVisible(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPaymentRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, db_models.RoleMember)
	bob := testutil.CreateUser(t, db, db_models.RoleMember)
	course := testutil.CreateCourse(t, db, bob, 10)
	payment := testutil.CreatePayment(t, db, alice, course, nil, 1)

	found, err := repo.FindVisible(ctx, access.VisibilityFor(access.ForUser(alice)), payment.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	found, err = repo.FindVisible(ctx, access.VisibilityFor(access.ForUser(bob)), payment.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	history, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	require.NoError(t, repo.Delete(ctx, payment.ID))
	assert.Error(t, repo.Delete(ctx, payment.ID))
}
