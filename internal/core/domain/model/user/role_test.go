package user_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		cases := map[string]user.Role{
			"SUPER_ADMIN":  user.SuperAdmin,
			"ADMIN":        user.Admin,
			"SENDER":       user.Sender,
			"DELIVERY_MAN": user.DeliveryMan,
			"RECEIVER":     user.Receiver,
		}

		for name, want := range cases {
			got, err := user.RoleFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := user.RoleFromString("COURIER")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("lowercase is rejected", func(t *testing.T) {
		_, err := user.RoleFromString("sender")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoleValidate(t *testing.T) {
	assert.NoError(t, user.Sender.Validate())
	assert.Error(t, user.UnknownRole.Validate())
	assert.Error(t, user.Role(42).Validate())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "DELIVERY_MAN", user.DeliveryMan.String())
	assert.Equal(t, "UNKNOWN", user.Role(42).String())
}

func TestRoleIsAdministrative(t *testing.T) {
	assert.True(t, user.Admin.IsAdministrative())
	assert.True(t, user.SuperAdmin.IsAdministrative())
	assert.False(t, user.Sender.IsAdministrative())
	assert.False(t, user.DeliveryMan.IsAdministrative())
	assert.False(t, user.Receiver.IsAdministrative())
}

func TestRoleMayCreateParcels(t *testing.T) {
	assert.True(t, user.Sender.MayCreateParcels())
	assert.True(t, user.Admin.MayCreateParcels())
	assert.True(t, user.SuperAdmin.MayCreateParcels())
	assert.False(t, user.DeliveryMan.MayCreateParcels())
	assert.False(t, user.Receiver.MayCreateParcels())
}
