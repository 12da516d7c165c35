// Package crypto seals integration API keys before they are written to the
// settings table.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer encrypts short secrets for storage at rest.
//
// Sealed values carry the "enc:v1:" prefix followed by base64(nonce ‖
// ciphertext). Values without the prefix are treated as plaintext written
// before sealing was enabled and are returned unchanged by Open.
type Sealer interface {
	// Seal encrypts plaintext. Empty input stays empty.
	Seal(plaintext string) (string, error)

	// Open reverses Seal.
	Open(sealed string) (string, error)

	// Enabled reports whether a key is configured. A disabled sealer
	// stores values as plaintext.
	Enabled() bool
}
