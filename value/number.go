package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Number is a JSON number. It keeps the literal text it was parsed from so
// that large integers and exact decimals survive a round trip.
type Number string

func (Number) Kind() Kind                     { return KindNumber }
func (n Number) String() string               { return string(n) }
func (n Number) MarshalJSON() ([]byte, error) { return []byte(n), nil }
func (Number) isValue()                       {}

// Int returns a Number holding i.
func Int(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// Float returns a Number holding f. NaN and infinities have no JSON
// representation and are rejected.
func Float(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported number %v", f)
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// ParseNumber validates s as a JSON number literal.
func ParseNumber(s string) (Number, error) {
	if !validNumber(s) {
		return "", fmt.Errorf("%w: invalid number literal %q", ErrSyntax, s)
	}
	return Number(s), nil
}

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the number as an int64 if it is an integer literal.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// numbersEqual compares the decimal values of a and b exactly, so 1, 1.0
// and 1e0 are the same number while two integers that only share a float64
// approximation are not.
func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	ca, ea, okA := normalize(a)
	cb, eb, okB := normalize(b)
	if !okA || !okB {
		return false
	}
	return ea == eb && ca.Cmp(cb) == 0
}

var bigTen = big.NewInt(10)

// normalize returns n as coefficient * 10^exponent with no trailing zeros
// in the coefficient. Zero is always 0 * 10^0.
func normalize(n Number) (*big.Int, int64, bool) {
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return nil, 0, false
	}
	coef := d.Coefficient()
	exp := int64(d.Exponent())
	if coef.Sign() == 0 {
		return coef, 0, true
	}
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, bigTen, r)
		if r.Sign() != 0 {
			return coef, exp, true
		}
		coef, q = q, coef
		exp++
	}
}

// validNumber implements the number grammar of RFC 8259 section 6.
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	switch {
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
