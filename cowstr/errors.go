package cowstr

import (
	"errors"
	"math"
)

// MaxLength is the maximum representable string length in code units.
const MaxLength = math.MaxInt32

var (
	// ErrNilManager indicates construction without a manager.
	ErrNilManager = errors.New("cowstr: nil manager")

	// ErrNilSource indicates a nil source string where one is required.
	ErrNilSource = errors.New("cowstr: nil source string")

	// ErrTooLong indicates a computed length beyond MaxLength.
	ErrTooLong = errors.New("cowstr: length exceeds MaxLength")

	// ErrOutOfRange indicates an index or length outside the string.
	ErrOutOfRange = errors.New("cowstr: index out of range")
)
