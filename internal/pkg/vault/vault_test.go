//go:build unit

package vault_test

import (
	"strings"
	"testing"

	"travel-kernel/internal/pkg/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher(t *testing.T) {
	c, err := vault.New("process-wide-secret")
	require.NoError(t, err)

	t.Run("seal then open returns the original PAN", func(t *testing.T) {
		for _, pan := range []string{"4242424242424242", "378282246310005", "6011111111111117"} {
			sealed, err := c.Seal(pan)
			require.NoError(t, err)
			assert.True(t, vault.IsSealed(sealed))
			assert.NotContains(t, sealed, pan)

			parts := strings.Split(sealed, ":")
			require.Len(t, parts, 4)
			assert.Len(t, parts[0], 128, "64-byte salt")
			assert.Len(t, parts[1], 32, "16-byte iv")
			assert.Len(t, parts[2], 32, "16-byte tag")

			opened, err := c.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, pan, opened)
		}
	})

	t.Run("same PAN seals differently each time", func(t *testing.T) {
		a, err := c.Seal("4242424242424242")
		require.NoError(t, err)
		b, err := c.Seal("4242424242424242")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("reveal passes legacy plaintext through", func(t *testing.T) {
		got, err := c.Reveal("4111111111111111")
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", got)
	})

	t.Run("tampered ciphertext fails without leaking details", func(t *testing.T) {
		sealed, err := c.Seal("4242424242424242")
		require.NoError(t, err)
		tampered := sealed[:len(sealed)-2] + "00"
		if tampered == sealed {
			tampered = sealed[:len(sealed)-2] + "11"
		}
		_, err = c.Open(tampered)
		assert.ErrorIs(t, err, vault.ErrDecrypt)
	})

	t.Run("different secret cannot open", func(t *testing.T) {
		sealed, err := c.Seal("4242424242424242")
		require.NoError(t, err)
		other, err := vault.New("another-secret")
		require.NoError(t, err)
		_, err = other.Open(sealed)
		assert.ErrorIs(t, err, vault.ErrDecrypt)
	})

	t.Run("malformed stored value", func(t *testing.T) {
		_, err := c.Open("zz:zz")
		assert.ErrorIs(t, err, vault.ErrDecrypt)
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := vault.New("")
		assert.ErrorIs(t, err, vault.ErrEmptySecret)
	})
}
