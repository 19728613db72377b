package pool

import (
	"bytes"
	"sync"
)

// BytesBuffer is there to optimize memory allocations. CSVRoll otherwise
// allocates a fresh buffer for every rendered result line.
var BytesBuffer = sync.Pool{
	New: func() interface{} {
		b := bytes.Buffer{}
		// Most rendered lines are well below 4KB.
		b.Grow(4096)
		return &b
	},
}

// RecycleBytesBuffer recycles the buffer again.
func RecycleBytesBuffer(b *bytes.Buffer) {
	b.Reset()
	BytesBuffer.Put(b)
}
