package service

import (
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// minEnvelopeLen is the smallest valid envelope: a nonce plus an
// authentication tag around an empty plaintext.
const minEnvelopeLen = cryptoDomain.NonceSize + cryptoDomain.TagSize

// EnvelopeSealer implements Sealer on top of an AEAD cipher.
//
// Wire format: bytes [0..12) hold the nonce, the remainder is
// ciphertext‖tag as produced by the AEAD primitive. The sealer holds no key
// material itself: the cipher is built once from the key cached by the secret
// store and shared read-only by all goroutines.
type EnvelopeSealer struct {
	cipher AEAD
}

// NewEnvelopeSealer creates a sealer around the given AEAD cipher.
func NewEnvelopeSealer(cipher AEAD) *EnvelopeSealer {
	return &EnvelopeSealer{cipher: cipher}
}

// Seal encrypts plaintext into a self-describing envelope.
// Every call generates a fresh random nonce, so sealing the same plaintext
// twice yields two distinct envelopes.
func (e *EnvelopeSealer) Seal(plaintext []byte) ([]byte, error) {
	ciphertext, nonce, err := e.cipher.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to seal envelope: %w", err)
	}

	envelope := make([]byte, 0, len(nonce)+len(ciphertext))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, ciphertext...)
	return envelope, nil
}

// Open authenticates and decrypts an envelope produced by Seal.
//
// A short envelope, a failed tag and a wrong key all surface as the same
// ErrTamperedOrCorrupt: the caller must not be able to tell them apart.
func (e *EnvelopeSealer) Open(envelope []byte) ([]byte, error) {
	if len(envelope) < minEnvelopeLen {
		return nil, cryptoDomain.ErrTamperedOrCorrupt
	}

	nonce := envelope[:cryptoDomain.NonceSize]
	ciphertext := envelope[cryptoDomain.NonceSize:]

	plaintext, err := e.cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrTamperedOrCorrupt
	}
	return plaintext, nil
}

// SealString seals a UTF-8 string and encodes the envelope with base64 so it
// can live in a field that previously held plaintext.
func (e *EnvelopeSealer) SealString(plaintext string) (string, error) {
	envelope, err := e.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// OpenString decodes and opens a base64 envelope produced by SealString.
func (e *EnvelopeSealer) OpenString(encoded string) (string, error) {
	envelope, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", cryptoDomain.ErrTamperedOrCorrupt
	}

	plaintext, err := e.Open(envelope)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
