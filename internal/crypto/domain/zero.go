package domain

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// Buffer wraps a secret-bearing byte slice so that every exit path can wipe it
// with a single deferred Close instead of repeating Zero at each call site.
//
//	buf := domain.NewBuffer(keyBytes)
//	defer buf.Close()
type Buffer struct {
	b []byte
}

// NewBuffer wraps b. The Buffer takes ownership: callers must not retain or
// reuse the slice after Close.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Bytes returns the wrapped slice. The returned slice is invalid after Close.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Close zeroes the wrapped slice. It is safe to call multiple times and
// implements io.Closer so the buffer fits defer-based cleanup.
func (b *Buffer) Close() error {
	Zero(b.b)
	b.b = nil
	return nil
}
