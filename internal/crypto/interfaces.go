package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects secrets that are persisted on the client, such as the
// refresh token of a stored session.
//
// Blob layout (base64 std encoding): salt ‖ nonce ‖ ciphertext.
// The key is derived per blob from the configured secret and the random salt
// with Argon2id, then used for AES-256-GCM.
type Sealer interface {
	// Seal encrypts plaintext and returns a base64 blob safe to store.
	Seal(plaintext []byte) (string, error)

	// Open reverses Seal. It fails with ErrSealedDataCorrupted when the blob
	// is malformed or was sealed with another secret.
	Open(blob string) ([]byte, error)
}
