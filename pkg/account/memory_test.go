package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhelper/bookingkit/pkg/account"
)

func TestMemoryResolver(t *testing.T) {
	t.Parallel()

	t.Run("resolves registered account", func(t *testing.T) {
		t.Parallel()

		resolver := account.NewMemoryResolver()
		resolver.Add(account.Account{
			ID:          "acc-1",
			Role:        account.RoleRequester,
			DisplayName: "Alice",
		})

		acc, err := resolver.Resolve(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", acc.ID)
		assert.Equal(t, account.RoleRequester, acc.Role)
		assert.Equal(t, "Alice", acc.DisplayName)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		t.Parallel()

		resolver := account.NewMemoryResolver()

		_, err := resolver.Resolve(context.Background(), "missing")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("add replaces existing entry", func(t *testing.T) {
		t.Parallel()

		resolver := account.NewMemoryResolver()
		resolver.Add(account.Account{ID: "acc-1", Role: account.RoleProvider, DisplayName: "Old"})
		resolver.Add(account.Account{ID: "acc-1", Role: account.RoleProvider, DisplayName: "New"})

		acc, err := resolver.Resolve(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "New", acc.DisplayName)
	})

	t.Run("returned account is a copy", func(t *testing.T) {
		t.Parallel()

		resolver := account.NewMemoryResolver()
		resolver.Add(account.Account{ID: "acc-1", Role: account.RoleProvider, DisplayName: "Bob"})

		acc, err := resolver.Resolve(context.Background(), "acc-1")
		require.NoError(t, err)
		acc.DisplayName = "mutated"

		again, err := resolver.Resolve(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "Bob", again.DisplayName)
	})
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, account.RoleRequester.Valid())
	assert.True(t, account.RoleProvider.Valid())
	assert.False(t, account.Role("ADMIN").Valid())
	assert.False(t, account.Role("").Valid())
}
