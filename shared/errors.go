package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by random access with an index outside
	// [0, Count).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIntegrity is returned when a block's payload is inconsistent with
	// its header. It is always fatal for the failing operation.
	ErrIntegrity = errors.New("block integrity violation")

	// ErrInvalidConfig is returned for construction input that can never
	// produce a valid block.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IntegrityError reports a structural mismatch between a block header and
// the payload that came with it. It matches ErrIntegrity under errors.Is.
type IntegrityError struct {
	Param    string
	Expected string
	Given    string
}

func (err IntegrityError) Error() string {
	return fmt.Sprintf("`%v` integrity violation; expected: %v, given: %v",
		err.Param, err.Expected, err.Given)
}

func (IntegrityError) Is(target error) bool { return target == ErrIntegrity }
