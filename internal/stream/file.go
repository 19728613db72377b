package stream

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"

	"github.com/csvroll/csvroll/internal/errors"
	"github.com/csvroll/csvroll/internal/lexer"
)

// FileStream is the file-backed row stream. It opens the file on
// construction, transparently decompresses gzip (.gz) and zstd (.zst)
// inputs, and guarantees the file is released on every exit path: explicit
// Close, exhaustion, and read errors all return the resources.
type FileStream struct {
	*RowStream
	source *ReaderSource
	file   *os.File
	decomp io.Closer
	closed bool
}

// OpenFile opens path as a row stream with the default lexer configuration.
func OpenFile(path string) (*FileStream, error) {
	return OpenFileWith(path, lexer.NewLexer())
}

// OpenFileWith opens path as a row stream tokenizing with the given lexer.
// Callers should defer Close even though exhaustion closes automatically, so
// abandoning the stream early cannot leak the file handle.
func OpenFileWith(path string, lex *lexer.Lexer) (*FileStream, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	var reader io.Reader = file
	var decomp io.Closer
	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "opening gzip stream %s", path)
		}
		reader = gz
		decomp = gz
	case ".zst":
		zr := zstd.NewReader(file)
		reader = zr
		decomp = zr
	}

	source := NewReaderSource(reader)
	return &FileStream{
		RowStream: NewRowStreamWith(source, lex),
		source:    source,
		file:      file,
		decomp:    decomp,
	}, nil
}

// Scan advances to the next row. When the underlying source is exhausted or
// fails, the file resources are released before Scan returns false.
func (fs *FileStream) Scan() bool {
	if fs.closed {
		return false
	}
	if !fs.RowStream.Scan() {
		fs.Close()
		return false
	}
	return true
}

// FilePath returns the path of the file being streamed.
func (fs *FileStream) FilePath() string {
	return fs.file.Name()
}

// Close releases the decompressor, the file handle and the pooled scan
// buffer. It is idempotent; the first error encountered wins.
func (fs *FileStream) Close() error {
	if fs.closed {
		return nil
	}
	fs.closed = true

	err := fs.source.Close()
	if fs.decomp != nil {
		if cerr := fs.decomp.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := fs.file.Close(); err == nil {
		err = cerr
	}
	return err
}
