package ports

// CredentialCodec turns a plaintext secret into a salted one-way hash and
// checks plaintext against a stored hash.
type CredentialCodec interface {
	Hash(secret string) (string, error)
	// Verify never fails; a mismatch or malformed hash yields false.
	Verify(secret, hashed string) bool
}
