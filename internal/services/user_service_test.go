package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/models/response_models"
	"coursehub/internal/testutil"
	"coursehub/pkg/utils"
)

func TestUserService_GetShapes(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users, f.payments, zerolog.Nop())
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	bob, bobActor := f.user(t, db_models.RoleMember)
	course := testutil.CreateCourse(t, f.db, bob, 20)
	testutil.CreatePayment(t, f.db, alice, course, nil, 10)

	own, err := svc.Get(ctx, aliceActor, alice.ID)
	require.NoError(t, err)
	private, ok := own.(response_models.UserPrivateResponse)
	require.True(t, ok)
	assert.Equal(t, alice.Email, private.Email)
	assert.Len(t, private.Payments, 1)

	other, err := svc.Get(ctx, bobActor, alice.ID)
	require.NoError(t, err)
	_, ok = other.(response_models.UserPublicResponse)
	assert.True(t, ok)

	_, err = svc.Get(ctx, access.Anonymous(), alice.ID)
	require.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Get(ctx, aliceActor, uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)

	page, err := svc.List(ctx, aliceActor, firstPage)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		switch v := item.(type) {
		case response_models.UserPrivateResponse:
			assert.Equal(t, alice.ID, v.ID)
		case response_models.UserPublicResponse:
			assert.Equal(t, bob.ID, v.ID)
		default:
			t.Fatalf("unexpected item %T", item)
		}
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users, f.payments, zerolog.Nop())
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)

	name := "Alice L."
	country := "NL"
	resp, err := svc.UpdateProfile(ctx, aliceActor, alice.ID, request_models.UpdateProfileRequest{DisplayName: &name, Country: &country})
	require.NoError(t, err)
	assert.Equal(t, name, resp.DisplayName)
	assert.Equal(t, "NL", *resp.Country)

	_, err = svc.UpdateProfile(ctx, mod, alice.ID, request_models.UpdateProfileRequest{DisplayName: &name})
	require.ErrorIs(t, err, utils.ErrPermissionDenied)
}

func TestUserService_AssignRole(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users, f.payments, zerolog.Nop())
	ctx := context.Background()

	alice, aliceActor := f.user(t, db_models.RoleMember)
	_, mod := f.user(t, db_models.RoleModerator)

	_, err := svc.AssignRole(ctx, aliceActor, alice.ID, db_models.RoleModerator)
	require.ErrorIs(t, err, utils.ErrPermissionDenied)

	_, err = svc.AssignRole(ctx, mod, alice.ID, db_models.UserRole("admin"))
	require.ErrorIs(t, err, utils.ErrInvalidRole)

	_, err = svc.AssignRole(ctx, mod, uuid.New(), db_models.RoleModerator)
	require.ErrorIs(t, err, utils.ErrNotFound)

	resp, err := svc.AssignRole(ctx, mod, alice.ID, db_models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, db_models.RoleModerator, resp.Role)
}
