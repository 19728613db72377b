package pool

import (
	"sync"

	"github.com/csvroll/csvroll/internal/constants"
)

// ScanBufferPool provides buffers for line scanning to reduce allocation
// overhead when many short-lived streams are created.
var ScanBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, constants.ScanBufferSize)
		return &buf
	},
}

// GetScanBuffer gets a scan buffer from the pool.
func GetScanBuffer() *[]byte {
	return ScanBufferPool.Get().(*[]byte)
}

// PutScanBuffer returns a scan buffer to the pool.
func PutScanBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	*buf = (*buf)[:cap(*buf)]
	ScanBufferPool.Put(buf)
}
