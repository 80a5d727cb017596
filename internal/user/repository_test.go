package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/chirp/internal/database/dbtest"
)

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateUserRequest{Name: "Amy", Email: "amy@example.com", Password: "stored-credential"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, DefaultImageName, created.ImageName)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	full, err := repo.GetByEmailWithPassword(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "stored-credential", full.Password)

	email := "amy.pond@example.com"
	updated, err := repo.UpdateProfile(ctx, created.ID, &UpdateProfileRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "Amy", updated.Name)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	gone, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepositoryAbsentAndMissing(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, u)

	name := "Ghost"
	_, err = repo.UpdateProfile(ctx, 999, &UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.Delete(ctx, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &CreateUserRequest{Name: "Amy", Email: "amy@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &CreateUserRequest{Name: "Amy", Email: "amy@example.com", Password: "y"})

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "users_email_key", pqErr.Constraint)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := repo.Create(ctx, &CreateUserRequest{Name: email, Email: email, Password: "x"})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[0].Email)
}
