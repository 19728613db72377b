package stream

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvroll/csvroll/internal/coerce"
	"github.com/csvroll/csvroll/internal/errors"
	"github.com/csvroll/csvroll/internal/lexer"
)

// countingSource produces "n,2n" lines forever and records how many lines
// were actually pulled.
type countingSource struct {
	produced int
}

func (c *countingSource) ReadLine() (string, error) {
	c.produced++
	return fmt.Sprintf("%d,%d", c.produced, 2*c.produced), nil
}

func TestRowStreamYieldsTypedRows(t *testing.T) {
	rs := NewRowStream(NewSliceSource([]string{
		"10,3.14,hello",
		`"a,b",2`,
	}))

	require.True(t, rs.Scan())
	assert.Equal(t, coerce.Row{
		coerce.NewInt(10),
		coerce.NewFloat(3.14),
		coerce.NewString("hello"),
	}, rs.Row())

	require.True(t, rs.Scan())
	assert.Equal(t, coerce.Row{
		coerce.NewString("a,b"),
		coerce.NewInt(2),
	}, rs.Row())

	assert.False(t, rs.Scan())
	assert.NoError(t, rs.Err())
}

// Pulling N rows must pull exactly N lines from the source, even when the
// source is unbounded.
func TestRowStreamIsLazy(t *testing.T) {
	source := &countingSource{}
	rs := NewRowStream(source)

	const n = 100
	for i := 0; i < n; i++ {
		require.True(t, rs.Scan())
	}
	assert.Equal(t, n, source.produced)
}

func TestRowStreamStripsLineEndings(t *testing.T) {
	rs := NewRowStream(NewSliceSource([]string{"a,b\n", "c,d\r\n", "e,f\r"}))
	expected := []coerce.Row{
		{coerce.NewString("a"), coerce.NewString("b")},
		{coerce.NewString("c"), coerce.NewString("d")},
		{coerce.NewString("e"), coerce.NewString("f")},
	}
	for _, want := range expected {
		require.True(t, rs.Scan())
		assert.Equal(t, want, rs.Row())
	}
	assert.False(t, rs.Scan())
}

func TestRowStreamNoRestart(t *testing.T) {
	rs := NewRowStream(NewSliceSource([]string{"a"}))
	require.True(t, rs.Scan())
	require.False(t, rs.Scan())
	// Exhaustion is permanent.
	assert.False(t, rs.Scan())
	assert.Nil(t, rs.Row())
}

func TestRowStreamCustomLexer(t *testing.T) {
	rs := NewRowStreamWith(
		NewSliceSource([]string{"1;2;three"}),
		lexer.NewLexerWith(';', '"'),
	)
	require.True(t, rs.Scan())
	assert.Equal(t, coerce.Row{
		coerce.NewInt(1),
		coerce.NewInt(2),
		coerce.NewString("three"),
	}, rs.Row())
}

func TestReaderSource(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a,b\nc,d\n"))
	line, err := source.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "a,b", line)

	line, err = source.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "c,d", line)

	_, err = source.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, source.Close())
	assert.NoError(t, source.Close())
}

func TestReaderSourceClosed(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a,b\nc,d\n"))
	require.NoError(t, source.Close())

	_, err := source.ReadLine()
	assert.ErrorIs(t, err, errors.ErrStreamClosed)
}

func TestReaderSourceReadFailure(t *testing.T) {
	source := NewReaderSource(iotest.ErrReader(fmt.Errorf("device gone")))
	rs := NewRowStream(source)

	assert.False(t, rs.Scan())
	assert.ErrorIs(t, rs.Err(), errors.ErrReadFailed)
	assert.Contains(t, rs.Err().Error(), "device gone")
}

func TestReaderSourceLineTooLong(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	rs := NewRowStream(NewReaderSource(strings.NewReader(long)))
	assert.False(t, rs.Scan())
	assert.ErrorIs(t, rs.Err(), errors.ErrLineTooLong)
}

func TestRowStreamEmptyLines(t *testing.T) {
	rs := NewRowStream(NewSliceSource([]string{""}))
	require.True(t, rs.Scan())
	assert.Equal(t, coerce.Row{coerce.NewString("")}, rs.Row())
}
