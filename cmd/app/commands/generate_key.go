package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/secureshare/internal/crypto/domain"
)

// RunGenerateKey generates a cryptographically secure 32-byte encryption key
// and prints the Vault fields the application expects. Key material is zeroed
// from memory after encoding.
//
// Output is shaped for seeding the KV v2 secret:
//
//	vault kv put secret/secureshare/encryption aes_key=... key_size=256 algorithm=aes-gcm
func RunGenerateKey(w io.Writer, algorithm string) error {
	alg := cryptoDomain.Algorithm(algorithm)
	switch alg {
	case cryptoDomain.AESGCM, cryptoDomain.ChaCha20:
	default:
		return fmt.Errorf(
			"invalid algorithm: %s (valid options: %s, %s)",
			algorithm,
			cryptoDomain.AESGCM,
			cryptoDomain.ChaCha20,
		)
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(key)
	cryptoDomain.Zero(key)

	fmt.Fprintln(w, "# Encryption key material")
	fmt.Fprintln(w, "# Store these fields in Vault at the configured encryption path:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "aes_key=%s\n", encoded)
	fmt.Fprintf(w, "key_size=%d\n", cryptoDomain.KeySize*8)
	fmt.Fprintf(w, "algorithm=%s\n", alg)

	return nil
}
