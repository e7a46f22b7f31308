package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"repairdesk/internal/pkg/errs"
)

const orderNumberPrefix = "OS-"

// OrderNumber is the human-facing sequential number of a service order,
// rendered as OS-### (zero padded to three digits, growing past 999).
type OrderNumber struct {
	seq int64
}

// NewOrderNumber wraps a positive sequence value handed out by the order number counter.
func NewOrderNumber(seq int64) (OrderNumber, error) {
	if seq <= 0 {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("orderNumber", seq, 1, int64(math.MaxInt64))
	}
	return OrderNumber{seq: seq}, nil
}

// ParseOrderNumber accepts the OS-### form.
func ParseOrderNumber(s string) (OrderNumber, error) {
	digits, ok := strings.CutPrefix(strings.TrimSpace(s), orderNumberPrefix)
	if !ok {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q has no %s prefix", s, orderNumberPrefix))
	}
	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}
	return NewOrderNumber(seq)
}

// Sequence returns the numeric part.
func (n OrderNumber) Sequence() int64 {
	return n.seq
}

func (n OrderNumber) String() string {
	return fmt.Sprintf("%s%03d", orderNumberPrefix, n.seq)
}

// Validate rejects the zero value.
func (n OrderNumber) Validate() error {
	if n.seq <= 0 {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}
