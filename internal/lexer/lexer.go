// Package lexer tokenizes one delimited text line at a time into raw string
// fields. It implements a character-level state machine that handles quoted
// fields and doubled-quote escaping, the way most CSV dialects expect:
//
//	a,b,c            -> ["a" "b" "c"]
//	"say ""hi""",b   -> [`say "hi"` "b"]
//	a,,b             -> ["a" "" "b"]
//
// Whitespace is never trimmed and no type interpretation happens here; see
// package coerce for that. The lexer deals with single lines only, so
// multi-line quoted fields are out of scope by construction.
package lexer

import (
	"github.com/csvroll/csvroll/internal/constants"
)

// state is the per-row tokenization state. It lives only for the duration of
// one ParseRow call and is never carried across rows.
type state int

const (
	// fieldStart: at the beginning of a row or right after a delimiter.
	fieldStart state = iota
	// unquoted: inside a field that did not start with a quote.
	unquoted
	// quoted: inside a quoted field, opening quote consumed.
	quoted
	// quoteInQuoted: a quote was seen inside a quoted field; it either
	// escapes another quote or terminates the field.
	quoteInQuoted
)

// Lexer splits delimited lines into raw string fields. The zero value is not
// usable, construct via NewLexer. A Lexer reuses an internal buffer between
// ParseRow calls and must not be shared between goroutines.
type Lexer struct {
	// Delimiter is the field separator. Default: ','
	Delimiter byte
	// Quote is the quote character. Default: '"'
	Quote byte

	field []byte
}

// NewLexer returns a lexer with the default comma delimiter and double-quote
// quote character.
func NewLexer() *Lexer {
	return NewLexerWith(constants.DefaultDelimiter, constants.DefaultQuote)
}

// NewLexerWith returns a lexer with a custom delimiter and quote character.
func NewLexerWith(delimiter, quote byte) *Lexer {
	return &Lexer{
		Delimiter: delimiter,
		Quote:     quote,
		field:     make([]byte, 0, constants.InitialFieldBufferSize),
	}
}

// ParseRow tokenizes a single line into its fields. The line must already be
// free of its trailing line terminator.
//
// Malformed input is handled leniently rather than rejected:
//   - A quoted field not terminated before the end of the line is implicitly
//     closed and emitted as-is.
//   - An ordinary character directly after a closing-candidate quote (as in
//     `"a"b`) is appended literally and scanning continues unquoted, so a
//     later delimiter still separates fields.
//
// An empty line yields one empty field, and a trailing delimiter yields a
// trailing empty field, so every row has delimiter-count+1 fields when no
// quoting is involved.
func (l *Lexer) ParseRow(line string) []string {
	fields := make([]string, 0, constants.InitialFieldCapacity)
	l.field = l.field[:0]
	curr := fieldStart

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch curr {
		case fieldStart:
			switch c {
			case l.Quote:
				curr = quoted
			case l.Delimiter:
				fields = l.emit(fields)
			default:
				l.field = append(l.field, c)
				curr = unquoted
			}
		case unquoted:
			switch c {
			case l.Delimiter:
				fields = l.emit(fields)
				curr = fieldStart
			default:
				// A quote inside an unquoted field is a literal character.
				l.field = append(l.field, c)
			}
		case quoted:
			switch c {
			case l.Quote:
				curr = quoteInQuoted
			default:
				// Delimiters lose their meaning inside quotes.
				l.field = append(l.field, c)
			}
		case quoteInQuoted:
			switch c {
			case l.Quote:
				// Doubled quote: one literal quote character.
				l.field = append(l.field, c)
				curr = quoted
			case l.Delimiter:
				fields = l.emit(fields)
				curr = fieldStart
			default:
				// Lone closing quote: the field continues unquoted, so a
				// later delimiter splits as usual.
				l.field = append(l.field, c)
				curr = unquoted
			}
		}
	}

	// End of input always closes the field under construction, including
	// the empty one at the start of an empty row.
	return l.emit(fields)
}

// Parse applies ParseRow to every line, materializing all rows eagerly. Only
// suitable for bounded inputs; use a stream.RowStream for anything large.
func (l *Lexer) Parse(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, l.ParseRow(line))
	}
	return rows
}

// emit closes the field under construction into the output and resets the
// accumulation buffer.
func (l *Lexer) emit(fields []string) []string {
	fields = append(fields, string(l.field))
	l.field = l.field[:0]
	return fields
}
