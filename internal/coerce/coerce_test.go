package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected Scalar
	}{
		{"integer", "10", NewInt(10)},
		{"negative integer", "-3", NewInt(-3)},
		{"leading zeros", "007", NewInt(7)},
		{"zero", "0", NewInt(0)},
		{"float", "3.14", NewFloat(3.14)},
		{"negative float", "-0.5", NewFloat(-0.5)},
		{"exponent", "1e3", NewFloat(1000)},
		{"signed exponent", "2.5E-1", NewFloat(0.25)},
		{"explicit plus is float not int", "+5", NewFloat(5)},
		{"integral float stays float", "1.0", NewFloat(1)},
		{"bare fraction", ".5", NewFloat(0.5)},
		{"trailing point", "5.", NewFloat(5)},
		{"int64 overflow falls through to float", "99999999999999999999", NewFloat(1e20)},
		{"plain string", "hello", NewString("hello")},
		{"empty string", "", NewString("")},
		{"surrounding spaces stay string", " 5 ", NewString(" 5 ")},
		{"lone minus", "-", NewString("-")},
		{"double sign", "--5", NewString("--5")},
		{"dangling exponent", "1e", NewString("1e")},
		{"double point", "1.2.3", NewString("1.2.3")},
		{"point without digits", ".", NewString(".")},
		{"nan is a string", "NaN", NewString("NaN")},
		{"inf is a string", "Inf", NewString("Inf")},
		{"hex float is a string", "0x1p3", NewString("0x1p3")},
		{"thousands separator is a string", "1,000", NewString("1,000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.field))
		})
	}
}

func TestCoerceFields(t *testing.T) {
	row := CoerceFields([]string{"10", "3.14", "hello"})
	assert.Equal(t, Row{NewInt(10), NewFloat(3.14), NewString("hello")}, row)
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "42", NewInt(42).String())
	assert.Equal(t, "3.14", NewFloat(3.14).String())
	assert.Equal(t, "15", NewFloat(15).String())
	assert.Equal(t, "hi", NewString("hi").String())
}

func TestAdd(t *testing.T) {
	assert.Equal(t, NewInt(3), Add(NewInt(1), NewInt(2)))
	assert.Equal(t, NewFloat(3.5), Add(NewInt(1), NewFloat(2.5)))
	assert.Equal(t, NewFloat(3), Add(NewFloat(1), NewInt(2)))
}

func TestMinMax(t *testing.T) {
	// Integer-only comparisons keep integer typing.
	assert.Equal(t, NewInt(1), Min(NewInt(1), NewInt(2)))
	assert.Equal(t, NewInt(2), Max(NewInt(1), NewInt(2)))

	// Any float operand promotes the result to float.
	assert.Equal(t, NewFloat(1), Min(NewInt(1), NewFloat(2.5)))
	assert.Equal(t, NewFloat(2.5), Max(NewInt(1), NewFloat(2.5)))
	assert.Equal(t, KindFloat, Min(NewFloat(3), NewInt(4)).Kind())
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, NewInt(1).IsNumeric())
	assert.True(t, NewFloat(1).IsNumeric())
	assert.False(t, NewString("1").IsNumeric())
}
