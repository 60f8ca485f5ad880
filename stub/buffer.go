package stub

// Buffer is memory handed to the caller by a fake operation. The caller owns
// it and must release it exactly once with Stub.Free, as with the native
// library. Every call allocates a fresh Buffer, so mutating one never leaks
// into later results.
type Buffer struct {
	data  []byte
	freed bool
}

func newBuffer(content string) *Buffer {
	return &Buffer{data: []byte(content)}
}

// Bytes returns the buffer content, or nil once freed.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.freed {
		return nil
	}
	return b.data
}

// String returns the content as text.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Len returns the declared length of the buffer.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Freed reports whether the buffer has been released.
func (b *Buffer) Freed() bool {
	return b != nil && b.freed
}
