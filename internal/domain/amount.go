package domain

import "math"

const maxAmount Amount = math.MaxInt64

// Positive reports whether a is strictly greater than zero.
func (a Amount) Positive() bool { return a > 0 }

// CheckedAdd returns a+b, or ErrArithmeticOverflow when the sum leaves the
// representable range.
func (a Amount) CheckedAdd(b Amount) (Amount, error) {
	if b > 0 && a > maxAmount-b {
		return 0, ErrArithmeticOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}
