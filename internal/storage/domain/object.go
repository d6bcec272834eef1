package domain

// StoredObject describes an encrypted object at rest.
//
// The reference is a randomly generated token, never the caller-supplied name:
// on-disk paths cannot be guessed from logical names and distinct uploads can
// never collide.
type StoredObject struct {
	// OwnerID identifies the owner whose subdirectory holds the object.
	OwnerID int64
	// Reference is the external token used to retrieve the object.
	Reference string
	// Path is the absolute path of the sealed envelope on disk.
	Path string
	// Size is the plaintext size in bytes. The sealed envelope on disk is
	// larger by the nonce and tag overhead.
	Size int64
}
