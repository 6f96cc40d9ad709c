package opdoc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	herrors "github.com/Azure/harmony/pkg/herrors"
)

// TokenCipher encrypts/decrypts the user identity token stored on an
// OperationDocument, per spec.md §4.1 ("encrypt_token"/"decrypt_token are
// pluggable; tokens are stored encrypted at rest").
type TokenCipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// AESGCMCipher implements TokenCipher with AES-256-GCM. No example repo in
// the retrieval pack ships a token-encryption library; crypto/aes +
// crypto/cipher is the idiomatic stdlib choice the Go ecosystem itself
// recommends over any third-party AEAD wrapper, so this one component is
// deliberately built on the standard library (see DESIGN.md).
type AESGCMCipher struct {
	gcm cipher.AEAD
}

// NewAESGCMCipher builds a cipher from a 32-byte key.
func NewAESGCMCipher(key []byte) (*AESGCMCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, herrors.Internal(err, "invalid token encryption key").Build()
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, herrors.Internal(err, "failed to initialize AEAD").Build()
	}
	return &AESGCMCipher{gcm: gcm}, nil
}

func (c *AESGCMCipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, herrors.Internal(err, "failed to generate nonce").Build()
	}
	return c.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *AESGCMCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	size := c.gcm.NonceSize()
	if len(ciphertext) < size {
		return nil, herrors.Validation("ciphertext shorter than nonce").Build()
	}
	nonce, data := ciphertext[:size], ciphertext[size:]
	plaintext, err := c.gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, herrors.New().Kind(herrors.KindValidation).Message("token decryption failed").Cause(err).Build()
	}
	return plaintext, nil
}

var errNoCipherConfigured = errors.New("opdoc: no token cipher configured")

// NoopCipher is usable in tests where token confidentiality is
// irrelevant; it refuses to operate on non-empty input so a missing
// cipher wiring in production fails loudly instead of silently storing
// plaintext.
type NoopCipher struct{}

func (NoopCipher) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, nil
	}
	return nil, errNoCipherConfigured
}

func (NoopCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	return nil, errNoCipherConfigured
}
