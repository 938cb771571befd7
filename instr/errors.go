package instr

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("value out of range")

// ErrUnknownInstruction is returned when a word does not decode to any
// instruction kind.
var ErrUnknownInstruction = errors.New("unknown instruction")

// A RangeError reports a parameter that does not fit its field. Enumerated
// fields list their legal values in Allowed instead of a Min/Max bound.
type RangeError struct {
	Op      string
	Field   string
	Value   uint64
	Min     uint64
	Max     uint64
	Allowed []uint64
}

func (e *RangeError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s %d is not one of %v",
			e.Op, e.Field, e.Value, e.Allowed)
	}

	return fmt.Sprintf("%s: %s %d out of range [%d, %d]",
		e.Op, e.Field, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) true for range errors.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func checkRange(op, field string, value, lo, hi uint64) error {
	if value < lo || value > hi {
		return &RangeError{
			Op:    op,
			Field: field,
			Value: value,
			Min:   lo,
			Max:   hi,
		}
	}

	return nil
}

func checkOneOf(op, field string, value uint64, allowed ...uint64) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}

	return &RangeError{
		Op:      op,
		Field:   field,
		Value:   value,
		Allowed: allowed,
	}
}

func checkBank(op string, bank uint) error {
	return checkRange(op, "bank", uint64(bank), 0, MaxBank)
}

func checkColumn(op string, col uint) error {
	return checkRange(op, "column", uint64(col), 0, MaxColumn)
}

func checkAutoPrecharge(op string, ap AutoPrecharge) error {
	return checkOneOf(op, "auto-precharge", uint64(ap),
		uint64(NoAutoPrecharge), uint64(WithAutoPrecharge))
}

func checkBurstLength(op string, bl BurstLength) error {
	return checkOneOf(op, "burst length", uint64(bl),
		uint64(BurstChop), uint64(BurstFixed))
}
