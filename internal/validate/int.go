package validate

import (
	"fmt"
	"strconv"

	"github.com/opsgate/opsgate/internal/errors"
)

// BoundedInt accepts integer-valued input within optional bounds. Non-integer
// input is a validation failure, never a crash.
type BoundedInt struct {
	min *int64
	max *int64
}

// Bound is a convenience for building optional integer bounds.
func Bound(v int64) *int64 { return &v }

// NewBoundedInt builds an integer validator. A nil bound is unbounded on
// that side.
func NewBoundedInt(min, max *int64) (*BoundedInt, error) {
	if min != nil && max != nil && *min > *max {
		return nil, errors.NewConfigError(errors.CodeBounds,
			fmt.Sprintf("minimum %d must not exceed maximum %d", *min, *max))
	}
	return &BoundedInt{min: min, max: max}, nil
}

// Name implements Validator.
func (i *BoundedInt) Name() string { return "integer" }

// Validate implements Validator. The returned value is an int64.
func (i *BoundedInt) Validate(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError(errors.CodeInvalidInteger, "invalid integer")
	}

	if i.min != nil && v < *i.min {
		return nil, errors.NewValidationError(errors.CodeTooSmall,
			fmt.Sprintf("value too small (must be >= %d)", *i.min))
	}
	if i.max != nil && v > *i.max {
		return nil, errors.NewValidationError(errors.CodeTooBig,
			fmt.Sprintf("value too big (must be <= %d)", *i.max))
	}
	return v, nil
}
