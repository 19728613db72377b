// Package stream produces typed rows lazily from a line source. It composes
// the lexer and the type coercer over a single-pass producer of text lines,
// pulling exactly one line per row so memory use stays constant no matter how
// large (or infinite) the source is.
//
// The pull contract follows the bufio.Scanner shape:
//
//	rs := stream.NewRowStream(source)
//	for rs.Scan() {
//		row := rs.Row()
//		// ...
//	}
//	if err := rs.Err(); err != nil {
//		// ...
//	}
//
// A RowStream is not restartable: once exhausted or failed, Scan keeps
// returning false.
package stream

import (
	"bufio"
	"io"
	"strings"

	"github.com/csvroll/csvroll/internal/coerce"
	"github.com/csvroll/csvroll/internal/constants"
	"github.com/csvroll/csvroll/internal/errors"
	"github.com/csvroll/csvroll/internal/io/pool"
	"github.com/csvroll/csvroll/internal/lexer"
)

// LineSource is a single-pass, in-order producer of text lines. It is the
// seam to the outside world: files, sockets and in-memory fixtures all plug
// in here.
type LineSource interface {
	// ReadLine returns the next line, or io.EOF once the source is
	// exhausted. Exhaustion is permanent.
	ReadLine() (string, error)
}

// SliceSource serves lines from an in-memory slice. Intended for bounded
// inputs and tests.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource returns a source over the given lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// ReadLine implements LineSource.
func (s *SliceSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// ReaderSource serves lines from an io.Reader using a pooled scan buffer.
// The buffer is returned to the pool when the source is exhausted or closed.
type ReaderSource struct {
	scanner *bufio.Scanner
	buf     *[]byte
	done    bool
	closed  bool
}

// NewReaderSource returns a source reading lines from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	scanner := bufio.NewScanner(r)
	buf := pool.GetScanBuffer()
	scanner.Buffer(*buf, constants.MaxLineLength)
	return &ReaderSource{scanner: scanner, buf: buf}
}

// ReadLine implements LineSource. Reading from an explicitly closed source
// fails with ErrStreamClosed; a naturally exhausted one keeps returning
// io.EOF.
func (r *ReaderSource) ReadLine() (string, error) {
	if r.closed {
		return "", errors.Wrap(errors.ErrStreamClosed, "reading line")
	}
	if r.done {
		return "", io.EOF
	}
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	err := r.scanner.Err()
	r.done = true
	r.release()
	if err == bufio.ErrTooLong {
		return "", errors.Wrap(errors.ErrLineTooLong, "reading line")
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrReadFailed, err.Error())
	}
	return "", io.EOF
}

// Close releases the pooled scan buffer early. Safe to call more than once.
func (r *ReaderSource) Close() error {
	r.closed = true
	r.release()
	return nil
}

func (r *ReaderSource) release() {
	if r.buf == nil {
		return
	}
	pool.PutScanBuffer(r.buf)
	r.buf = nil
}

// RowStream lazily yields one typed row per source line. It owns its
// position in the source exclusively and must not be shared between
// goroutines.
type RowStream struct {
	source LineSource
	lex    *lexer.Lexer
	row    coerce.Row
	err    error
	done   bool
}

// NewRowStream returns a stream with the default lexer configuration.
func NewRowStream(source LineSource) *RowStream {
	return NewRowStreamWith(source, lexer.NewLexer())
}

// NewRowStreamWith returns a stream tokenizing with the given lexer.
func NewRowStreamWith(source LineSource, lex *lexer.Lexer) *RowStream {
	return &RowStream{source: source, lex: lex}
}

// Scan advances to the next row, pulling exactly one line from the source.
// It returns false on exhaustion or error; afterwards Err reports what
// happened (nil for plain exhaustion) and further Scan calls keep returning
// false.
func (rs *RowStream) Scan() bool {
	if rs.done {
		return false
	}
	line, err := rs.source.ReadLine()
	if err != nil {
		rs.done = true
		rs.row = nil
		if err != io.EOF {
			rs.err = err
		}
		return false
	}
	rs.row = coerce.CoerceFields(rs.lex.ParseRow(trimLineEnding(line)))
	return true
}

// Row returns the row produced by the last successful Scan.
func (rs *RowStream) Row() coerce.Row {
	return rs.row
}

// Err returns the first error encountered while pulling lines. It is nil
// when the stream simply ran out of input.
func (rs *RowStream) Err() error {
	return rs.err
}

// trimLineEnding strips one trailing line terminator, LF or CRLF or a lone
// CR, before tokenization.
func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
