// Package coerce turns raw string fields into typed scalars and provides the
// promoting arithmetic the window aggregator needs. Coercion tries integer
// first, then float, then falls back to keeping the string, so a field has
// exactly one canonical type.
package coerce

import (
	"strconv"
)

// Kind tags the concrete type held by a Scalar.
type Kind int

const (
	// KindInt holds an int64.
	KindInt Kind = iota
	// KindFloat holds a float64.
	KindFloat
	// KindString holds an uninterpreted string.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Scalar is a tagged value holding exactly one of int64, float64 or string.
// Scalars are immutable values; all operations return new ones.
type Scalar struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Row is one parsed line: an ordered sequence of scalars, one per column.
// Column identity is positional, there are no column names.
type Row []Scalar

// NewInt returns an integer scalar.
func NewInt(v int64) Scalar {
	return Scalar{kind: KindInt, i: v}
}

// NewFloat returns a float scalar.
func NewFloat(v float64) Scalar {
	return Scalar{kind: KindFloat, f: v}
}

// NewString returns a string scalar.
func NewString(v string) Scalar {
	return Scalar{kind: KindString, s: v}
}

// Kind returns the type tag of the scalar.
func (s Scalar) Kind() Kind {
	return s.kind
}

// IsNumeric reports whether the scalar is an integer or a float.
func (s Scalar) IsNumeric() bool {
	return s.kind == KindInt || s.kind == KindFloat
}

// Int returns the integer value. Only meaningful when Kind is KindInt.
func (s Scalar) Int() int64 {
	return s.i
}

// Float returns the float value. Only meaningful when Kind is KindFloat.
func (s Scalar) Float() float64 {
	return s.f
}

// Str returns the string value. Only meaningful when Kind is KindString.
func (s Scalar) Str() string {
	return s.s
}

// Float64 returns the numeric value widened to float64. String scalars
// return 0; callers are expected to check IsNumeric first.
func (s Scalar) Float64() float64 {
	switch s.kind {
	case KindInt:
		return float64(s.i)
	case KindFloat:
		return s.f
	default:
		return 0
	}
}

// String renders the scalar for output. Integers render without a decimal
// point, floats in their shortest round-trip form.
func (s Scalar) String() string {
	switch s.kind {
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	default:
		return s.s
	}
}

// Coerce converts one raw field into a scalar. Priority order, first success
// wins:
//
//  1. Integer: optional single leading '-', then decimal digits only.
//     "+5", "1.0", "1e3" and "" all fail this step; "007" becomes 7.
//     Digit runs too large for int64 fall through to the float attempt.
//  2. Float: optionally signed decimal number with optional fractional part
//     and/or exponent ("3.14", "1e3", "-0.5", ".5").
//  3. Otherwise the field stays a string, unchanged, including the empty
//     string.
//
// No whitespace trimming happens before the numeric attempts; a field with
// surrounding spaces stays a string.
func Coerce(field string) Scalar {
	if intLike(field) {
		if v, err := strconv.ParseInt(field, 10, 64); err == nil {
			return NewInt(v)
		}
	}
	if floatLike(field) {
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			return NewFloat(v)
		}
	}
	return NewString(field)
}

// CoerceFields converts a tokenized line into a row, positionally.
func CoerceFields(fields []string) Row {
	row := make(Row, len(fields))
	for i, field := range fields {
		row[i] = Coerce(field)
	}
	return row
}

// intLike reports whether s consists of an optional leading '-' followed by
// one or more decimal digits and nothing else.
func intLike(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// floatLike reports whether s is a plain decimal number: optional sign, a
// mantissa with at least one digit and an optional decimal point, and an
// optional exponent. Deliberately stricter than strconv.ParseFloat, which
// also accepts "inf", "NaN" and hexadecimal floats.
func floatLike(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	var mantissaDigits bool
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		mantissaDigits = true
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			mantissaDigits = true
			i++
		}
	}
	if !mantissaDigits {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		var exponentDigits bool
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			exponentDigits = true
			i++
		}
		if !exponentDigits {
			return false
		}
	}
	return i == len(s)
}

// Add returns a+b. Two integers yield an integer; any float operand promotes
// the result to float. Both operands must be numeric.
func Add(a, b Scalar) Scalar {
	if a.kind == KindInt && b.kind == KindInt {
		return NewInt(a.i + b.i)
	}
	return NewFloat(a.Float64() + b.Float64())
}

// Min returns the smaller of two numeric scalars, promoting to float when
// either operand is a float.
func Min(a, b Scalar) Scalar {
	if a.kind == KindInt && b.kind == KindInt {
		if b.i < a.i {
			return b
		}
		return a
	}
	if b.Float64() < a.Float64() {
		return NewFloat(b.Float64())
	}
	return NewFloat(a.Float64())
}

// Max returns the larger of two numeric scalars, promoting to float when
// either operand is a float.
func Max(a, b Scalar) Scalar {
	if a.kind == KindInt && b.kind == KindInt {
		if b.i > a.i {
			return b
		}
		return a
	}
	if b.Float64() > a.Float64() {
		return NewFloat(b.Float64())
	}
	return NewFloat(a.Float64())
}
