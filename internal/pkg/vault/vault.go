package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"strings"

	"travel-kernel/internal/pkg/errs"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 64
	nonceSize  = 16
	tagSize    = 16
	keySize    = 32
	iterations = 100_000
	separator  = ":"
)

var (
	ErrEmptySecret = errs.New("card vault secret must not be empty")
	// ErrDecrypt never carries the underlying crypto failure.
	ErrDecrypt = errs.New("stored card could not be decrypted")
)

// Cipher seals card numbers with AES-256-GCM under a per-record key derived
// from the process-wide secret. Stored form: hex(salt):hex(iv):hex(tag):hex(ct).
type Cipher struct {
	secret []byte
}

func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Cipher{secret: []byte(secret)}, nil
}

// IsSealed reports whether a stored value is in ciphertext form.
// Values without the separator are legacy plaintext and get sealed on next save.
func IsSealed(stored string) bool {
	return strings.Contains(stored, separator)
}

func (c *Cipher) Seal(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errs.Wrap(err, "read salt")
	}
	iv := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", errs.Wrap(err, "read iv")
	}

	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(salt),
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ct),
	}, separator), nil
}

func (c *Cipher) Open(stored string) (string, error) {
	parts := strings.Split(stored, separator)
	if len(parts) != 4 {
		return "", ErrDecrypt
	}
	raw := make([][]byte, len(parts))
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil {
			return "", ErrDecrypt
		}
		raw[i] = b
	}
	salt, iv, tag, ct := raw[0], raw[1], raw[2], raw[3]
	if len(salt) != saltSize || len(iv) != nonceSize || len(tag) != tagSize {
		return "", ErrDecrypt
	}

	aead, err := c.aead(salt)
	if err != nil {
		return "", ErrDecrypt
	}
	plain, err := aead.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

// Reveal returns the plaintext of a stored value in either form.
func (c *Cipher) Reveal(stored string) (string, error) {
	if !IsSealed(stored) {
		return stored, nil
	}
	return c.Open(stored)
}

func (c *Cipher) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.secret, salt, iterations, keySize, sha512.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.Wrap(err, "init block cipher")
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, errs.Wrap(err, "init gcm")
	}
	return aead, nil
}
