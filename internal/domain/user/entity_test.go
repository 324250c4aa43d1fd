//go:build unit

package user_test

import (
	"testing"
	"time"

	"travel-kernel/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	email, err := user.NewEmail("Traveller@Example.com")
	require.NoError(t, err)

	t.Run("基本成功ケース", func(t *testing.T) {
		u, err := user.NewUser("u-1", email, user.RoleUser, now)
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID())
		assert.Equal(t, "traveller@example.com", u.Email().Value())
		assert.Equal(t, user.RoleUser, u.Role())
	})

	cases := []struct {
		name  string
		id    string
		role  user.Role
		errIs error
	}{
		{name: "空のユーザーIDNG", id: "  ", role: user.RoleUser, errIs: user.ErrInvalidUserID},
		{name: "無効なロールNG", id: "u-1", role: user.Role("viewer"), errIs: user.ErrInvalidRole},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, err := user.NewUser(c.id, email, c.role, now)
			require.Nil(t, u)
			require.ErrorIs(t, err, c.errIs)
		})
	}

	t.Run("メールアドレス検証", func(t *testing.T) {
		for _, bad := range []string{"", "invalid-email", "invalidemail.com"} {
			_, err := user.NewEmail(bad)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, bad)
		}
	})
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, user.RoleAdmin.AtLeast(user.RoleProvider))
	assert.True(t, user.RoleProvider.AtLeast(user.RoleUser))
	assert.True(t, user.RoleUser.AtLeast(user.RoleUser))
	assert.False(t, user.RoleUser.AtLeast(user.RoleAdmin))
	assert.False(t, user.Role("ghost").AtLeast(user.RoleUser))

	_, err := user.NewRole("operator")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestActor(t *testing.T) {
	owner := user.Actor{UserID: "u-1", Role: user.RoleUser}
	stranger := user.Actor{UserID: "u-2", Role: user.RoleUser}
	admin := user.Actor{UserID: "root", Role: user.RoleAdmin}

	assert.True(t, owner.CanActFor("u-1"))
	assert.False(t, stranger.CanActFor("u-1"))
	assert.True(t, admin.CanActFor("u-1"))
	assert.False(t, user.Actor{}.CanActFor(""))
}
