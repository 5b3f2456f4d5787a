package user_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()
		u, err := user.NewUser(id, "Alice", "alice@example.com", user.Sender)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, "alice@example.com", u.Email())
		assert.Equal(t, user.Sender, u.Role())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "Alice", "alice@example.com", user.Sender)
		require.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", "alice@example.com", user.Sender)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", "not-an-email", user.Sender)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", "alice@example.com", user.UnknownRole)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUserValidate(t *testing.T) {
	var u *user.User
	assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)

	zero := &user.User{}
	assert.ErrorIs(t, zero.Validate(), user.ErrUserIsNotConstructed)
}

func TestUserAsActor(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "Bob", "bob@example.com", user.DeliveryMan)
	require.NoError(t, err)

	actor := u.AsActor()
	require.NoError(t, actor.Validate())
	assert.True(t, actor.ID.IsEqual(u.ID()))
	assert.Equal(t, user.DeliveryMan, actor.Role)
}

func TestActorValidate(t *testing.T) {
	t.Run("zero id", func(t *testing.T) {
		actor := user.Actor{Role: user.Sender}
		require.Error(t, actor.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		actor := user.Actor{ID: kernel.NewUUID(), Role: user.UnknownRole}
		require.Error(t, actor.Validate())
	})
}
